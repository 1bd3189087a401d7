package config

import (
	"os"
)

type Config struct {
	Environment string
	// DefaultService is the generation service assumed when a chat carries
	// no service of its own.
	DefaultService string
	// Debug flags
	Debug bool // Enables DEBUG features like decoder frame tracing
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment:    env,
		DefaultService: getEnv("DEFAULT_SERVICE", "horde"),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
