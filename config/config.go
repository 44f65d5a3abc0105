package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	ResendAPIKey string
	EmailFrom    string
	SchoolName   string

	IdentityBaseURL    string
	IdentityServiceKey string

	CodePrefix  string
	CodeTTL     time.Duration
	ResetWindow time.Duration
}

// Load reads configuration once at startup. A missing provider credential
// is fatal here rather than surfacing per request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		EmailFrom:          os.Getenv("EMAIL_FROM"),
		SchoolName:         envOr("SCHOOL_NAME", "SMCBI"),
		IdentityBaseURL:    os.Getenv("IDENTITY_BASE_URL"),
		IdentityServiceKey: os.Getenv("IDENTITY_SERVICE_KEY"),
		CodePrefix:         envOr("CODE_PREFIX", "SMCBI"),
		CodeTTL:            15 * time.Minute,
		ResetWindow:        30 * time.Minute,
	}

	var missing []string
	for name, value := range map[string]string{
		"DATABASE_URL":         cfg.DatabaseURL,
		"RESEND_API_KEY":       cfg.ResendAPIKey,
		"EMAIL_FROM":           cfg.EmailFrom,
		"IDENTITY_BASE_URL":    cfg.IdentityBaseURL,
		"IDENTITY_SERVICE_KEY": cfg.IdentityServiceKey,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
