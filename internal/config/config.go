package config

import (
	"errors"
	"os"
	"strconv"
)

// Config carries every environment-provided setting, read once at startup.
// Business code never touches os.Getenv directly.
type Config struct {
	DatabaseURL string
	Port        string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	SendGridKey     string
	SendGridBaseURL string
	EmailFrom       string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	ApproveSecret string
}

// Load reads the environment. DATABASE_URL is the only hard requirement;
// everything else degrades (no drafts, no sending) rather than failing boot.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getenvDefault("PORT", "8080"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getenvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getenvDefault("OPENAI_URL", "https://api.openai.com/v1"),

		SendGridKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridBaseURL: getenvDefault("SENDGRID_URL", "https://api.sendgrid.com/v3"),
		EmailFrom:       os.Getenv("EMAIL_FROM"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getenvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		ApproveSecret: os.Getenv("APPROVE_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
