package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Upload   UploadConfig
	CORS     CORSConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	Port        string `mapstructure:"port"`
	LogsPath    string `mapstructure:"logs_path"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	ExpirationTime time.Duration `mapstructure:"expiration_time"`
}

type UploadConfig struct {
	Backend     string `mapstructure:"backend"`
	Root        string `mapstructure:"root"`
	MaxSize     int64  `mapstructure:"max_size"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
}

type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// AdminConfig holds the credentials of the admin account seeded on first run.
type AdminConfig struct {
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
}

const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "accounts-service"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8000"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			LogsPath:    getEnv("LOGS_PATH", ""),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", "sqlite://app.db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET_KEY", "jwt-secret-change-in-production"),
			ExpirationTime: getEnvAsDuration("JWT_EXPIRATION", 7*24*time.Hour),
		},
		Upload: UploadConfig{
			Backend:     strings.ToLower(getEnv("UPLOAD_BACKEND", UploadBackendLocal)),
			Root:        getEnv("UPLOAD_FOLDER", "uploads"),
			MaxSize:     getEnvAsInt64("MAX_CONTENT_LENGTH", 16*1024*1024),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Region:    getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
			S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		},
		Admin: AdminConfig{
			Email:     getEnv("ADMIN_EMAIL", "admin@example.com"),
			Password:  getEnv("ADMIN_PASSWORD", "admin123"),
			FirstName: getEnv("ADMIN_FIRST_NAME", "Admin"),
			LastName:  getEnv("ADMIN_LAST_NAME", "User"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY must not be empty")
	}
	if c.JWT.ExpirationTime <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWT.ExpirationTime)
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("MAX_CONTENT_LENGTH must be positive, got %d", c.Upload.MaxSize)
	}
	switch c.Upload.Backend {
	case UploadBackendLocal:
		if c.Upload.Root == "" {
			return fmt.Errorf("UPLOAD_FOLDER must not be empty")
		}
	case UploadBackendS3:
		if c.Upload.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when UPLOAD_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.Upload.Backend)
	}
	if _, _, err := c.DatabaseDriver(); err != nil {
		return err
	}
	return nil
}

// DatabaseDriver resolves DATABASE_URL into a gorm driver name and its DSN.
func (c *Config) DatabaseDriver() (string, string, error) {
	url := strings.TrimSpace(c.Database.URL)
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"), strings.HasPrefix(url, "host="):
		return DriverPostgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("DATABASE_URL %q has no sqlite path", url)
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported DATABASE_URL %q", url)
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
