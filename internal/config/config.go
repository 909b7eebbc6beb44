// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Log holds logger settings.
type Log struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// OIDC holds the optional SSO provider settings. SSO is enabled only
// when both the issuer and the client ID are set.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether SSO login should be offered.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != ""
}

// Config is the full runtime configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	WebDir      string
	AdminUser   string
	Log         Log
	OIDC        OIDC
}

// Load reads configuration from the environment, after sourcing a .env
// file if one is present. Only DATABASE_URL has no default; when it is
// empty the caller falls back to the in-memory store.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        env("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		WebDir:      env("WEB_DIR", "web"),
		AdminUser:   os.Getenv("ADMIN_USER"),
		Log: Log{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "json"),
		},
		OIDC: OIDC{
			Issuer:       os.Getenv("OIDC_ISSUER"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "console":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", cfg.Log.Format)
	}
	if cfg.OIDC.Enabled() && cfg.OIDC.RedirectURL == "" {
		return Config{}, fmt.Errorf("OIDC_REDIRECT_URL is required when SSO is configured")
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
