package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/phenixmation/payables/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	API        APIConfig        `validate:"required"`
	Session    SessionConfig    `validate:"required"`
	Cache      CacheConfig
	Invoice    InvoiceConfig `validate:"required"`
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

// APIConfig describes the remote invoice API
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url" validate:"required,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"required"`
	RetryMax int           `mapstructure:"retry_max" validate:"gte=0"`
	// RateLimit caps outgoing requests per second, 0 disables the limiter
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

type SessionConfig struct {
	TokenFile string `mapstructure:"token_file" validate:"required"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	DraftTTL time.Duration `mapstructure:"draft_ttl"`
	UsersTTL time.Duration `mapstructure:"users_ttl"`
}

// InvoiceConfig holds the defaults used to seed new invoices and new lines
type InvoiceConfig struct {
	Currency       string  `mapstructure:"currency" validate:"required,len=3"`
	TaxRatePercent float64 `mapstructure:"tax_rate_percent" validate:"gte=0"`
	DueInDays      int     `mapstructure:"due_in_days" validate:"gte=0"`
	PaymentMethod  string  `mapstructure:"payment_method" validate:"required"`
	SupplierID     string  `mapstructure:"supplier_id"`
	UserID         string  `mapstructure:"user_id"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PAYABLES")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.retry_max", d.API.RetryMax)
	v.SetDefault("api.rate_limit", d.API.RateLimit)
	v.SetDefault("session.token_file", d.Session.TokenFile)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.draft_ttl", d.Cache.DraftTTL)
	v.SetDefault("cache.users_ttl", d.Cache.UsersTTL)
	v.SetDefault("invoice.currency", d.Invoice.Currency)
	v.SetDefault("invoice.tax_rate_percent", d.Invoice.TaxRatePercent)
	v.SetDefault("invoice.due_in_days", d.Invoice.DueInDays)
	v.SetDefault("invoice.payment_method", d.Invoice.PaymentMethod)
	v.SetDefault("invoice.supplier_id", d.Invoice.SupplierID)
	v.SetDefault("invoice.user_id", d.Invoice.UserID)
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.sample_rate", 1.0)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return types.PaymentMethod(c.Invoice.PaymentMethod).Validate()
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for tests and for running without a config file
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		API: APIConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{TokenFile: defaultTokenFile()},
		Cache: CacheConfig{
			Enabled:  true,
			DraftTTL: 2 * time.Hour,
			UsersTTL: time.Minute,
		},
		Invoice: InvoiceConfig{
			Currency:       types.InvoiceDefaultCurrency,
			TaxRatePercent: 5,
			DueInDays:      types.InvoiceDefaultDueDays,
			PaymentMethod:  string(types.PaymentMethodTransfer),
			SupplierID:     "60c72b2f9f1b2e0015b6d9e0",
			UserID:         "60c72b2f9f1b2e0015b6d9e1",
		},
	}
}

// DefaultTaxRate returns the tax rate seeded on new invoice lines
func (c InvoiceConfig) DefaultTaxRate() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxRatePercent)
}

func defaultTokenFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "payables", "auth-token")
	}
	return ".payables-token"
}
