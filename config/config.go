package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	Log      *Log            `json:"log" yaml:"log"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	Database *Database       `json:"database" yaml:"database"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt"`
	Blob     *Blob           `json:"blob" yaml:"blob"`
	Oss      *OssConfig      `json:"oss" yaml:"oss"`
	Gcs      *GcsConfig      `json:"gcs" yaml:"gcs"`
	Server   *Server         `json:"server" yaml:"server"`
	Reviewer *ReviewerConfig `json:"reviewer" yaml:"reviewer"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

type Log struct {
	Level string `json:"level" yaml:"level"`
}

// New 读取配置, 启动阶段出错直接 panic
func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load 读取并解析配置文件
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Parse 解析 yaml 内容并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("解析 config.yaml 读取错误: %w", err)
	}
	conf.applyDefaults()
	return &conf, nil
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Log == nil {
		c.Log = &Log{Level: "info"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	c.Database.applyDefaults()
	if c.Blob == nil {
		c.Blob = &Blob{}
	}
	c.Blob.applyDefaults()
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpireSeconds == 0 {
		c.Jwt.ExpireSeconds = int64((12 * time.Hour).Seconds())
	}
	if c.Reviewer == nil {
		c.Reviewer = &ReviewerConfig{}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
