package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort          string
	AppEnv           string
	RecordStoreURL   string
	RecordStoreEmail string
	RecordStorePass  string
	TokenSecret      string
	StripeSecretKey  string
	ImageHostKey     string
	MailAPIKey       string
	MailFrom         string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:          os.Getenv("APP_PORT"),
		AppEnv:           os.Getenv("APP_ENV"),
		RecordStoreURL:   os.Getenv("RECORDSTORE_URL"),
		RecordStoreEmail: os.Getenv("RECORDSTORE_EMAIL"),
		RecordStorePass:  os.Getenv("RECORDSTORE_PASSWORD"),
		TokenSecret:      os.Getenv("TOKEN_SECRET"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		ImageHostKey:     os.Getenv("IMAGE_HOST_API_KEY"),
		MailAPIKey:       os.Getenv("MAIL_API_KEY"),
		MailFrom:         os.Getenv("MAIL_FROM"),
	}

	if cfg.RecordStoreURL == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8090"
	}

	return cfg
}
