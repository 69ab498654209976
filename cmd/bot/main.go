package main

import (
	"log"

	"github.com/joho/godotenv"

	"funbot/core/bootstrap"
	"funbot/core/cmd"
	coreconfig "funbot/core/config"
	"funbot/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        coreconfig.Load,
		Bootstrap: func(cfg *coreconfig.Config) (cmd.TelegramApp, error) {
			res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return app.New(cfg, res.Questions), nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
