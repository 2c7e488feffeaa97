package config

import (
	"errors"
	"os"
	"path/filepath"
)

// Config holds environment-driven configuration.
type Config struct {
	MySQL struct {
		DSN string // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	}
	Gemini struct {
		APIKey  string
		BaseURL string // default: https://generativelanguage.googleapis.com
		Model   string // default: gemini-pro
	}
	Mailer struct {
		APIKey  string
		BaseURL string
		From    string
	}
	State struct {
		Dir       string // default: ~/.timeos
		DeviceKey string // default: "default"; one running timer per key
	}
	Admin struct {
		AccessCode string // grants the built-in admin session when matched at login
	}
	HTTP struct {
		Addr string // default: :8080
	}
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config

	cfg.MySQL.DSN = os.Getenv("MYSQL_DSN")
	if cfg.MySQL.DSN == "" {
		return cfg, errors.New("MYSQL_DSN is required")
	}

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.BaseURL = os.Getenv("GEMINI_BASE_URL")
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	cfg.Gemini.Model = os.Getenv("GEMINI_MODEL")
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-pro"
	}

	cfg.Mailer.APIKey = os.Getenv("MAILER_API_KEY")
	cfg.Mailer.BaseURL = os.Getenv("MAILER_BASE_URL")
	cfg.Mailer.From = os.Getenv("MAILER_FROM")

	cfg.State.Dir = os.Getenv("TIMEOS_STATE_DIR")
	if cfg.State.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, err
		}
		cfg.State.Dir = filepath.Join(home, ".timeos")
	}
	cfg.State.DeviceKey = os.Getenv("TIMEOS_DEVICE_KEY")
	if cfg.State.DeviceKey == "" {
		cfg.State.DeviceKey = "default"
	}

	cfg.Admin.AccessCode = os.Getenv("ADMIN_ACCESS_CODE")

	cfg.HTTP.Addr = os.Getenv("HTTP_ADDR")
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	return cfg, nil
}
