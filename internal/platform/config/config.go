package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CurrencyStorePostgres = "postgres"
	CurrencyStoreRedis    = "redis"
	CurrencyStoreMemory   = "memory"
)

type Config struct {
	Addr                    string
	Environment             string
	DatabaseURL             string
	MigrationsDir           string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	JWTSecret               string
	TokenTTL                time.Duration
	CurrencyStore           string
	CurrencySettingsKey     string
	CurrencyCatalogFile     string
	PayrollHealthInsurance  decimal.Decimal
	GratuityApplyCap        bool
	GratuityAccrualInterval time.Duration
	CORSAllowedOrigins      []string
	RunMigrations           bool
	RunSeed                 bool
	MaxBodyBytes            int64
	RateLimitPerMinute      int
	MetricsEnabled          bool
}

func Load() Config {
	return Config{
		Addr:                    getEnv("APP_ADDR", ":8080"),
		Environment:             getEnv("APP_ENV", "development"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		MigrationsDir:           getEnv("MIGRATIONS_DIR", "migrations"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RedisDB:                 getEnvInt("REDIS_DB", 0),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		TokenTTL:                getEnvDuration("TOKEN_TTL", 12*time.Hour),
		CurrencyStore:           strings.ToLower(getEnv("CURRENCY_STORE", CurrencyStoreMemory)),
		CurrencySettingsKey:     getEnv("CURRENCY_SETTINGS_KEY", "hrms_currency"),
		CurrencyCatalogFile:     getEnv("CURRENCY_CATALOG_FILE", ""),
		PayrollHealthInsurance:  getEnvDecimal("PAYROLL_HEALTH_INSURANCE", decimal.NewFromInt(500)),
		GratuityApplyCap:        getEnvBool("GRATUITY_APPLY_CAP", false),
		GratuityAccrualInterval: getEnvDuration("GRATUITY_ACCRUAL_INTERVAL", 24*time.Hour),
		CORSAllowedOrigins:      getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		RunMigrations:           getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                 getEnvBool("RUN_SEED", true),
		MaxBodyBytes:            int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:          getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c Config) Validate() error {
	switch c.CurrencyStore {
	case CurrencyStorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when CURRENCY_STORE is postgres")
		}
	case CurrencyStoreRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR is required when CURRENCY_STORE is redis")
		}
	case CurrencyStoreMemory:
	default:
		return fmt.Errorf("CURRENCY_STORE must be one of postgres, redis, memory")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required in production")
		}
	}
	if strings.TrimSpace(c.CurrencySettingsKey) == "" {
		return fmt.Errorf("CURRENCY_SETTINGS_KEY must not be empty")
	}
	if c.PayrollHealthInsurance.IsNegative() {
		return fmt.Errorf("PAYROLL_HEALTH_INSURANCE must not be negative")
	}
	if c.GratuityAccrualInterval < time.Minute {
		return fmt.Errorf("GRATUITY_ACCRUAL_INTERVAL must be at least 1m")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
