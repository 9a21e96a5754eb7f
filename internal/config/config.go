package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Metron  MetronConfig
	Barcode BarcodeConfig
	MinIO   MinIOConfig
	Scan    ScanConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// MetronConfig carries the metadata provider credentials.
// Missing credentials is a startup error, not a per-request failure.
type MetronConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// BarcodeConfig points at the Python barcode-detection service
type BarcodeConfig struct {
	ServiceURL string
	Timeout    time.Duration
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Archived scan images older than this are purged by the worker
	ArchiveRetentionDays int
}

type ScanConfig struct {
	// Idle sessions (desktop connected, no phone) are reaped after this
	SessionTTL time.Duration
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Comic Vault API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Metron: MetronConfig{
			BaseURL:  getEnv("METRON_BASE_URL", "https://metron.cloud"),
			Username: getEnv("METRON_USERNAME", ""),
			Password: getEnv("METRON_PASSWORD", ""),
			Timeout:  time.Duration(getEnvInt("METRON_TIMEOUT_SECONDS", 8)) * time.Second,
		},
		Barcode: BarcodeConfig{
			ServiceURL: getEnv("BARCODE_SERVICE_URL", "http://localhost:8000"),
			Timeout:    time.Duration(getEnvInt("BARCODE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:             getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:            getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:            getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:               getEnv("MINIO_BUCKET", "comicvault"),
			UseSSL:               false,
			ArchiveRetentionDays: getEnvInt("SCAN_ARCHIVE_RETENTION_DAYS", 30),
		},
		Scan: ScanConfig{
			SessionTTL: time.Duration(getEnvInt("SCAN_SESSION_TTL_MINUTES", 30)) * time.Minute,
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	// Metron credentials là fatal config error - fail fast trước khi nhận request
	if c.Metron.Username == "" || c.Metron.Password == "" {
		return fmt.Errorf("METRON_USERNAME and METRON_PASSWORD must be set")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
