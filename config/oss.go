package config

type OssConfig struct {
	Endpoint         string `json:"endpoint" yaml:"endpoint"`
	InternalEndpoint string `json:"internal_endpoint" yaml:"internal_endpoint"`
	Region           string `json:"region" yaml:"region"`
	Bucket           string `json:"bucket" yaml:"bucket"`
	AccessKeyID      string `json:"ak" yaml:"ak"`
	AccessKeySecret  string `json:"sk" yaml:"sk"`
}

// GcsConfig Google Cloud Storage, 凭证二选一
type GcsConfig struct {
	Bucket          string `json:"bucket" yaml:"bucket"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
	CredentialsJSON string `json:"credentials_json" yaml:"credentials_json"`
}

const (
	BlobDriverOss    = "oss"
	BlobDriverGcs    = "gcs"
	BlobDriverMemory = "memory"

	DefaultBlobPrefix = "Prompts/Final images moodboard"
)

// Blob 图片对象存储
type Blob struct {
	Driver string `json:"driver" yaml:"driver"`
	// Prefix 对象 key 前缀, 图片路径为 <prefix>/image<sno>.<ext>
	Prefix  string `json:"prefix" yaml:"prefix"`
	Timeout int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

func (b *Blob) applyDefaults() {
	if b.Driver == "" {
		b.Driver = BlobDriverOss
	}
	if b.Prefix == "" {
		b.Prefix = DefaultBlobPrefix
	}
	if b.Timeout == 0 {
		b.Timeout = 30
	}
}

func ProvideBlobConfig(cfg *Config) *Blob {
	return cfg.Blob
}
