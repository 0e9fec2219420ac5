package testutil

import (
	"testing"

	"github.com/javajoker/ecommerce-api/internal/config"
)

// NewConfig returns a development config with media stored under a temp dir.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
		Storage: config.StorageConfig{
			LocalPath:     t.TempDir(),
			PublicBaseURL: "http://localhost:8080/media",
			MaxUploadMB:   1,
		},
		OTP:  config.OTPConfig{ExposeCode: true},
		I18n: config.I18nConfig{DefaultLocale: "en"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		Log:  config.LogConfig{Level: "error", Format: "text"},
	}
}
