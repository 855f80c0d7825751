// Package config loads application settings from the environment.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	AllowedOrigins []string
	GithubToken    string
}

// Load reads .env if present, then the environment. JWT_SECRET is the
// only setting without a default.
func Load() (*Config, error) {
	// .env is optional; deployed environments set real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "5000"),
		MongoURI:       getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:        getenv("MONGODB_DB", "devconnector"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		GithubToken:    os.Getenv("GITHUB_TOKEN"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
