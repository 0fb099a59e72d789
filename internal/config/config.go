package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Seed     SeedConfig
	Database DatabaseConfig
	JWT      JWTConfig
	LogLevel string
	GinMode  string
	Port     string
	DemoMode bool
}

// SeedConfig drives the registration runner. Defaults reproduce the
// original fixed constants.
type SeedConfig struct {
	Endpoint       string
	UserCount      int
	UsernamePrefix string
	Password       string
	OutputPath     string
	FailuresPath   string
	OnError        string
	HTTPTimeout    time.Duration
	LogEvery       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	Expiry string
}

func New() *Config {
	return &Config{
		Seed: SeedConfig{
			Endpoint:       getEnv("SEED_ENDPOINT", "http://localhost:8080/api/auth"),
			UserCount:      getEnvInt("SEED_USER_COUNT", 1000),
			UsernamePrefix: getEnv("SEED_USERNAME_PREFIX", "user_"),
			Password:       getEnv("SEED_PASSWORD", "password"),
			OutputPath:     getEnv("SEED_OUTPUT_PATH", "users.txt"),
			FailuresPath:   getEnv("SEED_FAILURES_PATH", ""),
			OnError:        getEnv("SEED_ON_ERROR", "abort"),
			HTTPTimeout:    getEnvDuration("SEED_HTTP_TIMEOUT", 0),
			LogEvery:       getEnvInt("SEED_LOG_EVERY", 100),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "authstub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
			Expiry: getEnv("JWT_EXPIRY", "24h"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		Port:     getEnv("PORT", "8080"),
		DemoMode: getEnv("DEMO_MODE", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid value for %s: %v", key, err)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid value for %s: %v", key, err)
		return defaultValue
	}
	return parsed
}

// GetJWTExpiry parses JWT.Expiry, falling back to 24h.
func (c *Config) GetJWTExpiry() time.Duration {
	d, err := time.ParseDuration(c.JWT.Expiry)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func (c *Config) GetDatabaseURL() string {
	return c.buildDatabaseURL()
}

func (c *Config) buildDatabaseURL() string {
	var sb strings.Builder

	sb.WriteString("postgres://")
	sb.WriteString(c.Database.User)
	if c.Database.Password != "" {
		sb.WriteString(":")
		sb.WriteString(c.Database.Password)
	}
	sb.WriteString("@")
	sb.WriteString(c.Database.Host)
	sb.WriteString(":")
	sb.WriteString(c.Database.Port)
	sb.WriteString("/")
	sb.WriteString(c.Database.DBName)

	if c.Database.SSLMode != "" {
		sb.WriteString("?sslmode=")
		sb.WriteString(c.Database.SSLMode)
	}

	return sb.String()
}
