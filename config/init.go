package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/tracing"
)

type Config struct {
	AppConfig            *AppConfig
	Logger               *logger.Config
	Tracing              *tracing.JaegerConfig
	InboxdDatabaseConfig *InboxdDatabaseConfig
	ResendConfig         *ResendConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:            &AppConfig{},
		Logger:               &logger.Config{},
		Tracing:              &tracing.JaegerConfig{},
		InboxdDatabaseConfig: &InboxdDatabaseConfig{},
		ResendConfig:         &ResendConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading inboxd config: %v", err)
	}

	return config, nil
}
