// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port   string
	AppEnv string

	// ImageDir holds uploaded originals, their thumb_ previews, and metadata.json.
	ImageDir string
	// ExportDir holds at most one export zip at a time.
	ExportDir string

	// MaxUploadMB caps a single uploaded file. Requests beyond it are rejected
	// before anything touches the image directory.
	MaxUploadMB int64
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	return &Config{
		Port:   getEnv("PORT", "4173"),
		AppEnv: getEnv("APP_ENV", "development"),

		ImageDir:  getEnv("IMAGE_DIR", "/app/images"),
		ExportDir: getEnv("EXPORT_DIR", "/app/exports"),

		MaxUploadMB: getEnvInt64("MAX_UPLOAD_MB", 50),
	}
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("config: ignoring invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
