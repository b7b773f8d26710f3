package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docview/internal/render"
)

type Config struct {
	Port string

	// Auth
	DocviewAPIKey string

	// Upload limits
	MaxUploadBytes int64

	// Rendering
	DefaultFormat string

	// Parsing
	AllowPlain           bool
	PDFFallbackPdftotext bool

	// Metrics
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocviewAPIKey: os.Getenv("DOCVIEW_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultFormat: envOr("DEFAULT_FORMAT", "text"),

		AllowPlain:           envBool("ALLOW_PLAIN", false),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocviewAPIKey == "" {
		return fmt.Errorf("DOCVIEW_API_KEY is required")
	}
	if _, err := render.ParseFormat(c.DefaultFormat); err != nil {
		return fmt.Errorf("DEFAULT_FORMAT: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
