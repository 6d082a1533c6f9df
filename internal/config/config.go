// Package config loads service configuration from an optional yaml
// file and the environment, environment winning.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort          string        `mapstructure:"http_port"`
	ListingServiceURL string        `mapstructure:"listing_service_url"`
	OrderServiceURL   string        `mapstructure:"order_service_url"`
	SQLitePath        string        `mapstructure:"sqlite_path"`
	MigrationsPath    string        `mapstructure:"migrations_path"`
	RedisAddr         string        `mapstructure:"redis_addr"`
	RedisPassword     string        `mapstructure:"redis_password"`
	KafkaBrokers      []string      `mapstructure:"kafka_brokers"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads config.yaml from the working directory if present, then
// applies SHOP_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("http_port", "8080")
	v.SetDefault("listing_service_url", "http://localhost:9090/listings")
	v.SetDefault("order_service_url", "http://localhost:9091/orders")
	v.SetDefault("sqlite_path", "shop.db")
	v.SetDefault("migrations_path", "internal/cart/migrations")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("kafka_brokers", []string{})
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
