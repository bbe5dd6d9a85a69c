package main

import (
	"Moodboard/config"
	"Moodboard/pkg/database"
	"Moodboard/pkg/log"
	"Moodboard/pkg/server"
	"Moodboard/service"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "moodboard image and prompt review service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file, defaults to configs/config.$APP_ENV.yaml",
				EnvVars: []string{"MOODBOARD_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "auto-migrate", Usage: "create or update tables before serving"},
				},
				Action: func(ctx *cli.Context) error {
					cfg := loadConfig(ctx)
					app, err := InitServer(cfg)
					if err != nil {
						return err
					}
					if ctx.Bool("auto-migrate") {
						if err := database.Migrate(app.DB); err != nil {
							return err
						}
					}
					return server.Run(ctx, app)
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update the images and prompts tables",
				Action: func(ctx *cli.Context) error {
					cfg := loadConfig(ctx)
					db := database.NewDB(cfg)
					defer database.Close(db)

					if err := database.Migrate(db); err != nil {
						return err
					}
					log.L.Info("migrate done", zap.String("driver", cfg.Database.Driver))
					return nil
				},
			},
			{
				Name:      "hash-password",
				Usage:     "print the bcrypt hash for a reviewer password",
				ArgsUsage: "<password>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return errors.New("expected exactly one password argument")
					}
					hash, err := service.HashPassword(ctx.Args().First())
					if err != nil {
						return err
					}
					fmt.Println(hash)
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("api-server exited", zap.Error(err))
	}
}

func loadConfig(ctx *cli.Context) *config.Config {
	path := ctx.String("config")
	if path == "" {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		path = fmt.Sprintf("configs/config.%s.yaml", env)
	}
	cfg := config.New(path)
	log.SetLevel(cfg.Log.Level)
	return cfg
}
