package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// SupplierConfig holds credentials for one upstream hotel-inventory supplier.
type SupplierConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Secret  string
}

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Shared key guarding the token-issuing endpoint. Empty disables issuance.
	AdminAPIKey string `mapstructure:"ADMIN_API_KEY"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisHoldsDB  int    `mapstructure:"REDIS_HOLDS_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Mongo configuration (booking archive).
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Upstream suppliers.
	PrimarySupplierName      string `mapstructure:"PRIMARY_SUPPLIER_NAME"`
	PrimarySupplierBaseURL   string `mapstructure:"PRIMARY_SUPPLIER_BASE_URL"`
	PrimarySupplierAPIKey    string `mapstructure:"PRIMARY_SUPPLIER_API_KEY"`
	PrimarySupplierSecret    string `mapstructure:"PRIMARY_SUPPLIER_SECRET"`
	SecondarySupplierName    string `mapstructure:"SECONDARY_SUPPLIER_NAME"`
	SecondarySupplierBaseURL string `mapstructure:"SECONDARY_SUPPLIER_BASE_URL"`
	SecondarySupplierAPIKey  string `mapstructure:"SECONDARY_SUPPLIER_API_KEY"`
	SecondarySupplierSecret  string `mapstructure:"SECONDARY_SUPPLIER_SECRET"`

	// Per-call timeout for upstream requests, applied per attempt.
	SupplierTimeoutSeconds int `mapstructure:"SUPPLIER_TIMEOUT_SECONDS"`

	// Statuses on which a primary failure falls over to the secondary.
	// The upstream whitelist deliberately excludes 502/504; kept configurable
	// rather than hardcoded.
	FailoverStatuses []int `mapstructure:"FAILOVER_STATUSES"`

	// Retry tuning.
	SearchMaxAttempts   int `mapstructure:"SEARCH_MAX_ATTEMPTS"`
	PreBookMaxAttempts  int `mapstructure:"PREBOOK_MAX_ATTEMPTS"`
	BookMaxAttempts     int `mapstructure:"BOOK_MAX_ATTEMPTS"`
	RetryInitialDelayMs int `mapstructure:"RETRY_INITIAL_DELAY_MS"`
	BookInitialDelayMs  int `mapstructure:"BOOK_INITIAL_DELAY_MS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_HOLDS_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("PRIMARY_SUPPLIER_NAME", "primary")
	viper.SetDefault("SECONDARY_SUPPLIER_NAME", "secondary")
	viper.SetDefault("SUPPLIER_TIMEOUT_SECONDS", 12)
	viper.SetDefault("FAILOVER_STATUSES", []int{401, 403, 500, 501, 503})
	viper.SetDefault("SEARCH_MAX_ATTEMPTS", 3)
	viper.SetDefault("PREBOOK_MAX_ATTEMPTS", 3)
	viper.SetDefault("BOOK_MAX_ATTEMPTS", 2)
	viper.SetDefault("RETRY_INITIAL_DELAY_MS", 1000)
	viper.SetDefault("BOOK_INITIAL_DELAY_MS", 2000)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// Primary returns the primary supplier credentials.
func Primary() SupplierConfig {
	return SupplierConfig{
		Name:    AppConfig.PrimarySupplierName,
		BaseURL: AppConfig.PrimarySupplierBaseURL,
		APIKey:  AppConfig.PrimarySupplierAPIKey,
		Secret:  AppConfig.PrimarySupplierSecret,
	}
}

// Secondary returns the secondary supplier credentials.
func Secondary() SupplierConfig {
	return SupplierConfig{
		Name:    AppConfig.SecondarySupplierName,
		BaseURL: AppConfig.SecondarySupplierBaseURL,
		APIKey:  AppConfig.SecondarySupplierAPIKey,
		Secret:  AppConfig.SecondarySupplierSecret,
	}
}

// SupplierTimeout returns the per-attempt upstream call timeout.
func SupplierTimeout() time.Duration {
	secs := AppConfig.SupplierTimeoutSeconds
	if secs <= 0 {
		secs = 12
	}
	return time.Duration(secs) * time.Second
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
