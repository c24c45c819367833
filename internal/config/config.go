package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBURL      string
	HTTPPort   string
	MailFrom   string
	RegretTmpl string
}

func Load() (*Config, error) {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:      os.Getenv("DB_URL"),    // e.g., postgres://user:pass@db:5432/kechita
		HTTPPort:   os.Getenv("HTTP_PORT"), // e.g., :8080
		MailFrom:   os.Getenv("MAIL_FROM"),
		RegretTmpl: os.Getenv("REGRET_TEMPLATE"),
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = ":8080"
	}
	return cfg, nil
}
