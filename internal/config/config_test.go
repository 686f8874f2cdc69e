package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv sets the environment variable for the duration of the test
		// and automatically restores it afterwards.
		t.Setenv("APP_PORT", "8090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("RECORDSTORE_URL", "http://localhost:8091")
		t.Setenv("TOKEN_SECRET", "token_secret")
		t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
		t.Setenv("IMAGE_HOST_API_KEY", "img_key")
		t.Setenv("MAIL_API_KEY", "mail_key")
		t.Setenv("MAIL_FROM", "orders@teabloom.example")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "8090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "http://localhost:8091", cfg.RecordStoreURL)
		assert.Equal(t, "token_secret", cfg.TokenSecret)
		assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)
		assert.Equal(t, "img_key", cfg.ImageHostKey)
		assert.Equal(t, "mail_key", cfg.MailAPIKey)
		assert.Equal(t, "orders@teabloom.example", cfg.MailFrom)
	})

	t.Run("Defaults app port", func(t *testing.T) {
		t.Setenv("RECORDSTORE_URL", "http://localhost:8091")
		t.Setenv("APP_PORT", "")

		cfg := LoadConfig()

		assert.Equal(t, "8090", cfg.AppPort)
	})
}
