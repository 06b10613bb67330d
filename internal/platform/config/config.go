package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr         string
	JWTSecret    string
	TokenTTL     time.Duration
	FrontendDir  string
	Environment  string
	RunSeed      bool
	MaxBodyBytes int64
}

func Load() Config {
	return Config{
		Addr:         getEnv("APP_ADDR", ":8080"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 12*time.Hour),
		FrontendDir:  getEnv("FRONTEND_DIR", "frontend/dist"),
		Environment:  getEnv("APP_ENV", "development"),
		RunSeed:      getEnvBool("RUN_SEED", true),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "dev-secret" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
