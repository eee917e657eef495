package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	// Auth
	JWTSecret          string
	TokenDuration      time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Progression
	// PassRatio is the fraction of a scenario's maximum score a child must
	// earn for the attempt to count as passed. The clients have shipped with
	// both 0.6 and 0.7 at different times; keep it in one place until
	// product settles on a value.
	PassRatio float64

	// Profiles
	DefaultAvatarURL string

	// Email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// Load reads configuration from a .env file (if present) and environment
// variables with sensible defaults
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DB_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./kulture.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenDuration:      getEnvDuration("TOKEN_DURATION", 7*24*time.Hour),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "postmessage"),

		PassRatio: getEnvFloat("PASS_RATIO", 0.6),

		DefaultAvatarURL: getEnv("DEFAULT_AVATAR_URL", "https://api.dicebear.com/7.x/adventurer/svg?seed=Generic"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "KULTURE"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat reads a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}
