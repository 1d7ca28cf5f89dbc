package config

import (
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the trashmap service
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBDriver   string // "sqlite3" or "mysql"
	DBPath     string // sqlite database file
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Photo storage configuration
	UploadDir      string
	MaxUploadBytes int64

	// Rate limiting configuration
	RateLimitRPM   int
	RateLimitBurst int
}

// Load loads configuration from environment variables, reading a .env file
// first if one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		// Database defaults: embedded sqlite file
		DBDriver:   getEnv("DB_DRIVER", "sqlite3"),
		DBPath:     getEnv("DB_PATH", "data/trash.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret"),
		DBName:     getEnv("DB_NAME", "trashmap"),

		// Photo storage defaults
		UploadDir:      getEnv("UPLOAD_DIR", "data/photos"),
		MaxUploadBytes: int64(getIntEnv("MAX_UPLOAD_BYTES", 5*1024*1024)),

		// Rate limiting defaults
		RateLimitRPM:   getIntEnv("RATE_LIMIT_RPM", 10),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 20),
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
