package dao

import (
	"Moodboard/config"

	"github.com/google/wire"
	"gorm.io/gorm"
)

var ProviderSet = wire.NewSet(
	ProvideImage,
	ProvidePrompt,
)

// ProvideImage 按配置设置单次操作超时
func ProvideImage(db *gorm.DB, conf *config.Config) *Image {
	d := NewImage(db)
	d.Timeout = conf.Database.OpTimeout()
	return d
}

func ProvidePrompt(db *gorm.DB, conf *config.Config) *Prompt {
	d := NewPrompt(db)
	d.Timeout = conf.Database.OpTimeout()
	return d
}
