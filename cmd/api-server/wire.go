//go:build wireinject
// +build wireinject

package main

import (
	"Moodboard/config"
	"Moodboard/dao"
	"Moodboard/dao/cache"
	"Moodboard/handler"
	"Moodboard/pkg/blob"
	"Moodboard/pkg/client"
	"Moodboard/pkg/database"
	"Moodboard/pkg/server"
	"Moodboard/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		client.NewRedisClient,
		database.NewDB,
		blob.New,
		config.ProvideBlobConfig,
		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Image), "*"),
		wire.Struct(new(handler.Prompt), "*"),
		wire.Struct(new(handler.Review), "*"),

		wire.Struct(new(server.Handlers), "*"),
		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil
}
