package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Logging.
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Auth.
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB    int    `mapstructure:"REDIS_QUEUE_DB"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`

	// Revenue forecasting microservice.
	ForecastURL            string `mapstructure:"FORECAST_URL"`
	ForecastTimeoutSeconds int    `mapstructure:"FORECAST_TIMEOUT_SECONDS"`

	// Path to the Firebase service account; push notifications are logged only when empty.
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`

	// Background jobs.
	PayrollCron         string `mapstructure:"PAYROLL_CRON"`
	GiftCardSweepCron   string `mapstructure:"GIFT_CARD_SWEEP_CRON"`
	ReminderLeadMinutes int    `mapstructure:"REMINDER_LEAD_MINUTES"`

	// Payroll statutory deductions.
	PFRatePercent   float64 `mapstructure:"PF_RATE_PERCENT"`
	ProfessionalTax float64 `mapstructure:"PROFESSIONAL_TAX"`
}

var AppConfig Config

var defaults = map[string]any{
	"APP_PORT":                 "8080",
	"ENV":                      "development",
	"MAX_REQUESTS_PER_MIN":     100,
	"CORS_ORIGINS":             "*",
	"LOG_LEVEL":                "info",
	"LOG_FILE":                 "",
	"LOG_MAX_SIZE_MB":          50,
	"LOG_MAX_BACKUPS":          5,
	"LOG_MAX_AGE_DAYS":         28,
	"DATABASE_URL":             "mongodb://localhost:27017",
	"DATABASE_NAME":            "auracare",
	"JWT_SECRET":               "",
	"JWT_TTL_HOURS":            24,
	"REDIS_ADDR":               "localhost:6379",
	"REDIS_PASSWORD":           "",
	"REDIS_CACHE_DB":           0,
	"REDIS_QUEUE_DB":           1,
	"CACHE_TTL_SECONDS":        300,
	"FORECAST_URL":             "http://localhost:5001",
	"FORECAST_TIMEOUT_SECONDS": 10,
	"FIREBASE_CREDENTIALS":     "",
	"PAYROLL_CRON":             "0 2 1 * *",
	"GIFT_CARD_SWEEP_CRON":     "30 0 * * *",
	"REMINDER_LEAD_MINUTES":    120,
	"PF_RATE_PERCENT":          12.0,
	"PROFESSIONAL_TAX":         200.0,
}

// Load reads defaults, then config.yaml (from "." or "./config"), then the
// environment. Environment variables take precedence.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and exits the process when configuration is unusable.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func (c Config) validate() error {
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWTTTLHours)
	}
	if c.PFRatePercent < 0 || c.PFRatePercent > 100 {
		return fmt.Errorf("PF_RATE_PERCENT must be within [0,100], got %v", c.PFRatePercent)
	}
	return nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func IsProduction() bool {
	return AppConfig.IsProduction()
}
