package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
}

// Jwt 审核员登录令牌
type Jwt struct {
	Secret        string `json:"secret" yaml:"secret"`
	ExpireSeconds int64  `json:"expire_seconds" yaml:"expire_seconds"`
}

// ReviewerConfig 审核员账号, 密码为 bcrypt 哈希
type ReviewerConfig struct {
	Passwords map[string]string `json:"passwords" yaml:"passwords"`
}
