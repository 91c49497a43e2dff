package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"

	"rug-quote/internal/calculator"
)

type Config struct {
	TelegramToken string        `env:"TELEGRAM_TOKEN,required"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	Redis         Redis         `envPrefix:"REDIS_"`
	Database      Database      `envPrefix:"DB_"`
	Cart          Cart          `envPrefix:"CART_"`
	Pricing       Pricing       `envPrefix:"PRICING_"`
	Admin         Admin         `envPrefix:"ADMIN_"`
	RateLimit     RateLimit     `envPrefix:"RATE_LIMIT_"`
	StateTTL      time.Duration `env:"STATE_TTL" envDefault:"24h"`
}

type Redis struct {
	Addr     string `env:"ADDR,required"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Database struct {
	Host            string        `env:"HOST,required"`
	Port            int           `env:"PORT,required"`
	User            string        `env:"USER,required"`
	Password        string        `env:"PASSWORD,required"`
	Name            string        `env:"NAME,required"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

type Cart struct {
	StoreURL   string        `env:"STORE_URL,required"`
	ProductID  int64         `env:"PRODUCT_ID,required"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxRetries uint64        `env:"MAX_RETRIES" envDefault:"4"`
}

type Pricing struct {
	BasePricePerSqFt float64 `env:"BASE_PRICE_PER_SQFT" envDefault:"23"`
	File             string  `env:"FILE"`
	Strict           bool    `env:"STRICT" envDefault:"false"`
}

type Admin struct {
	IDs       []int64 `env:"IDS" envSeparator:","`
	ChannelID int64   `env:"CHANNEL_ID"`
}

type RateLimit struct {
	CartAdds int64         `env:"CART_ADDS" envDefault:"5"`
	Window   time.Duration `env:"WINDOW" envDefault:"10m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate required fields
	if len(cfg.Admin.IDs) == 0 {
		return nil, errors.New("at least one admin ID is required")
	}
	if !calculator.ValidFactor(cfg.Pricing.BasePricePerSqFt) {
		return nil, fmt.Errorf("base price must be positive, got %.2f", cfg.Pricing.BasePricePerSqFt)
	}

	return &cfg, nil
}
