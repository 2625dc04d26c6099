// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIBaseURL = "https://abinexis-backend.onrender.com/api"

type Config struct {
	Environment string
	Server      ServerConfig
	API         APIConfig
	Editor      EditorConfig
	Auth        AuthConfig
	Console     ConsoleConfig
	Database    DatabaseConfig
	AWS         AWSConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// APIConfig describes the remote homepage backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables
	RateBurst int
}

type EditorConfig struct {
	PricingConcurrency int
	BannerResyncDelay  time.Duration
	NoticeTTL          time.Duration
	RefreshSchedule    string
}

type AuthConfig struct {
	AdminToken   string
	SessionStore bool
}

type ConsoleConfig struct {
	User           string
	PasswordHash   string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

type LogConfig struct {
	Level     string
	Format    string
	File      string
	MaxSizeMB int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(getEnv("API_BASE_URL", DefaultAPIBaseURL), "/"),
			Timeout:   getEnvAsDuration("API_TIMEOUT", 30*time.Second),
			RateLimit: getEnvAsFloat("API_RATE_LIMIT", 20),
			RateBurst: getEnvAsInt("API_RATE_BURST", 20),
		},
		Editor: EditorConfig{
			PricingConcurrency: getEnvAsInt("PRICING_CONCURRENCY", 8),
			BannerResyncDelay:  time.Duration(getEnvAsInt("BANNER_RESYNC_DELAY_MS", 1000)) * time.Millisecond,
			NoticeTTL:          time.Duration(getEnvAsInt("NOTICE_TTL_SECONDS", 5)) * time.Second,
			RefreshSchedule:    getEnv("REFRESH_SCHEDULE", ""),
		},
		Auth: AuthConfig{
			AdminToken:   getEnv("ADMIN_TOKEN", ""),
			SessionStore: getEnvAsBool("AUTH_SESSION_STORE", false),
		},
		Console: ConsoleConfig{
			User:           getEnv("CONSOLE_USER", "admin"),
			PasswordHash:   getEnv("CONSOLE_PASSWORD_HASH", ""),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Enabled:      getEnvAsBool("DB_ENABLED", false),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "homepage_admin"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		},
		Log: LogConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", ""),
			File:      getEnv("LOG_FILE", ""),
			MaxSizeMB: getEnvAsInt("LOG_MAX_SIZE_MB", 50),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if c.Editor.PricingConcurrency < 1 {
		return fmt.Errorf("pricing concurrency must be at least 1")
	}

	if c.Console.PasswordHash == "" && c.Environment == "production" {
		return fmt.Errorf("console password hash is required in production")
	}

	if len(c.Console.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed CORS origin is required")
	}

	if c.Auth.SessionStore && !c.Database.Enabled {
		return fmt.Errorf("session store requires the database to be enabled")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
