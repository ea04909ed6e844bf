package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Delivery backend names accepted in DELIVERY_BACKEND.
const (
	BackendMongo    = "mongo"
	BackendDatabase = "database"
	BackendSMTP     = "smtp"
	BackendSES      = "ses"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	CORS     CORSConfig
	Log      LogConfig
	Delivery DeliveryConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	SES      SESConfig
	Auth     AuthConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
	Debug   bool
	Port    string
	Host    string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string
}

// DeliveryConfig selects the delivery backend
type DeliveryConfig struct {
	Backend        string
	ConnectTimeout time.Duration
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// DatabaseConfig holds SQL store configuration
type DatabaseConfig struct {
	URL string
}

// SMTPConfig holds the SMTP relay account
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Recipient string
}

// SESConfig holds the SES relay account
type SESConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	FromEmail string
	Recipient string
}

// AuthConfig holds admin API configuration
type AuthConfig struct {
	SecretKey          string
	TokenExpiryMinutes int
	AdminUsername      string
	AdminPasswordHash  string
}

// Load loads configuration from environment variables. envFiles are read
// with godotenv first; a missing file is not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	smtpUser := getEnv("EMAIL_USER", "")

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Portfolio Contact API"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Debug:   getEnvAsBool("DEBUG", false),
			Port:    getEnv("PORT", "8000"),
			Host:    getEnv("HOST", "0.0.0.0"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			MaxAge:         86400,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Delivery: DeliveryConfig{
			Backend:        strings.ToLower(getEnv("DELIVERY_BACKEND", BackendMongo)),
			ConnectTimeout: getEnvAsDuration("STORE_CONNECT_TIMEOUT", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", ""),
			Database:   getEnv("MONGO_DATABASE", "portfolio"),
			Collection: getEnv("MONGO_COLLECTION", "contacts"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      getEnvAsInt("SMTP_PORT", 587),
			Username:  smtpUser,
			Password:  getEnv("EMAIL_PASS", ""),
			Recipient: getEnv("CONTACT_RECIPIENT", smtpUser),
		},
		SES: SESConfig{
			Region:    getEnv("AWS_REGION", "us-east-1"),
			AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			FromEmail: getEnv("SES_FROM_EMAIL", ""),
			Recipient: getEnv("CONTACT_RECIPIENT", ""),
		},
		Auth: AuthConfig{
			SecretKey:          getEnv("SECRET_KEY", ""),
			TokenExpiryMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
			AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// validateConfig validates the configuration. Store connection strings are
// required up front; relay credentials are checked per request.
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	switch cfg.Delivery.Backend {
	case BackendMongo:
		if cfg.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI must be set for the %s backend", BackendMongo)
		}
	case BackendDatabase:
		if cfg.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the %s backend", BackendDatabase)
		}
	case BackendSMTP, BackendSES:
	default:
		return fmt.Errorf("unknown DELIVERY_BACKEND %q", cfg.Delivery.Backend)
	}
	if cfg.Delivery.ConnectTimeout <= 0 {
		return fmt.Errorf("STORE_CONNECT_TIMEOUT must be greater than 0")
	}
	if cfg.Auth.AdminPasswordHash != "" {
		if len(cfg.Auth.SecretKey) < 32 {
			return fmt.Errorf("SECRET_KEY must be at least 32 characters when the admin API is enabled")
		}
		if cfg.Auth.TokenExpiryMinutes <= 0 {
			return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be greater than 0")
		}
	}
	return nil
}

// AdminEnabled reports whether the admin API should be mounted
func (c *Config) AdminEnabled() bool {
	return c.Auth.AdminPasswordHash != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://") ||
		strings.Contains(c.URL, "host=")
}

// GetPostgresDSN converts a postgres:// URL to key=value DSN form.
// DSNs already in key=value form are returned unchanged.
func (c *DatabaseConfig) GetPostgresDSN() string {
	if strings.Contains(c.URL, "=") && !strings.Contains(c.URL, "://") {
		return c.URL
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return c.URL
	}

	host := u.Hostname()
	if host == "" {
		host = "localhost"
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	dbname := strings.TrimPrefix(u.Path, "/")
	if dbname == "" {
		dbname = "postgres"
	}
	sslmode := u.Query().Get("sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s", host, port, u.User.Username(), dbname, sslmode)
	if password, ok := u.User.Password(); ok && password != "" {
		dsn += " password=" + password
	}
	return dsn
}

// GetSQLitePath extracts SQLite database path from URL
func (c *DatabaseConfig) GetSQLitePath() string {
	return strings.TrimPrefix(c.URL, "sqlite:///")
}
