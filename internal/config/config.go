package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string

	AnthropicAPIKey string
	AnthropicModel  string

	UploadDir string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:           os.Getenv("DB_DSN"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		UploadDir:       os.Getenv("UPLOAD_DIR"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.AnthropicModel == "" {
		cfg.AnthropicModel = "claude-3-5-haiku-latest"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	// ANTHROPIC_API_KEY may be empty: suggestions and alerts then fail
	// per-request with a toast instead of blocking startup.

	return cfg
}
