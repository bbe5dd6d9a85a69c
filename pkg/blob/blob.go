// Package blob 图片二进制的对象存储, 与记录库之间只靠路径约定关联
package blob

import (
	"Moodboard/config"
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

// Store 对象存储协作者
type Store interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	Exists(ctx context.Context, path string) (bool, error)
	// Get 对象不存在时返回 NotFound 的 errs.BlobError
	Get(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// New 按配置选择后端
func New(conf *config.Config) (Store, error) {
	timeout := time.Duration(conf.Blob.Timeout) * time.Second
	switch conf.Blob.Driver {
	case config.BlobDriverOss:
		if conf.Oss == nil {
			return nil, fmt.Errorf("blob driver oss requires an oss section")
		}
		return NewOss(conf.Oss, timeout), nil
	case config.BlobDriverGcs:
		if conf.Gcs == nil {
			return nil, fmt.Errorf("blob driver gcs requires a gcs section")
		}
		return NewGcs(context.Background(), conf.Gcs, timeout)
	case config.BlobDriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported blob driver %q", conf.Blob.Driver)
}

// ImagePath 图片对象路径 <prefix>/image<sno>.<ext>
func ImagePath(prefix string, sno int64, ext string) string {
	name := fmt.Sprintf("image%d.%s", sno, strings.TrimPrefix(ext, "."))
	if prefix == "" {
		return name
	}
	return strings.TrimSuffix(prefix, "/") + "/" + name
}

// ParseImageNumber 从对象路径解析序列号, image12.jpg -> 12
func ParseImageNumber(objectKey string) (int64, bool) {
	name := path.Base(objectKey)
	if !strings.HasPrefix(name, "image") {
		return 0, false
	}
	ext := path.Ext(name)
	if ext == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(name, "image"), ext), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Extension 按 MIME 取扩展名
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	}
	return "bin"
}

// ContentType 按扩展名推断 MIME
func ContentType(objectKey string) string {
	switch strings.ToLower(path.Ext(objectKey)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
