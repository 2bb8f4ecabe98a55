package utils

import (
	"os"
	"strconv"
)

// GetEnv returns the environment variable or the fallback when unset.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt returns the environment variable parsed as an int, or the
// fallback when unset or unparseable.
func GetEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// IsProduction reports whether the service is running in production mode.
func IsProduction() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}
