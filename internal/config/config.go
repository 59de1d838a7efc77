package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "SHELTER_"

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Gateway   GatewayConfig   `koanf:"gateway"`
	Auth      AuthConfig      `koanf:"auth"`
	Logger    LoggerConfig    `koanf:"logger"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development staging production test"`
}

// IsDevelopment gates everything that must never run in production.
func (p Primary) IsDevelopment() bool {
	return p.Env == "development"
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"required"`
	// RequestTimeout bounds handler run time and must outlast gateway.timeout.
	RequestTimeout     time.Duration `koanf:"request_timeout" validate:"required"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// GatewayConfig holds the SSLCommerz store credentials and the URLs the gateway calls back on.
type GatewayConfig struct {
	StoreID       string        `koanf:"store_id" validate:"required"`
	StorePassword string        `koanf:"store_password" validate:"required"`
	IsLive        bool          `koanf:"is_live"`
	BaseURL       string        `koanf:"base_url" validate:"required,url"`
	FrontendURL   string        `koanf:"frontend_url" validate:"omitempty,url"`
	Timeout       time.Duration `koanf:"timeout" validate:"required"`
	// APIURL overrides the sandbox/live host, e.g. for a local stub.
	APIURL        string        `koanf:"api_url" validate:"omitempty,url"`
}

// RedirectBaseURL is where payer browsers are sent after a callback.
func (g GatewayConfig) RedirectBaseURL() string {
	if g.FrontendURL != "" {
		return strings.TrimRight(g.FrontendURL, "/")
	}
	return strings.TrimRight(g.BaseURL, "/")
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"required"`
	DevBypass bool          `koanf:"dev_bypass"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"required"`
	Window   time.Duration `koanf:"window" validate:"required"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                 "production",
		"server.port":                 "5000",
		"server.read_timeout":         "15s",
		"server.write_timeout":        "30s",
		"server.idle_timeout":         "60s",
		"server.request_timeout":      "25s",
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"gateway.timeout":             "20s",
		"auth.token_ttl":              "720h",
		"logger.level":                "info",
		"logger.format":               "json",
		"rate_limit.requests":         20,
		"rate_limit.window":           "1m",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	// The default decoder turns "15s" into durations and "a,b" into slices.
	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if err := mainConfig.checkTimeouts(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// checkTimeouts rejects a gateway timeout that the request timeout would cut short.
func (c *Config) checkTimeouts() error {
	if c.Gateway.Timeout >= c.Server.RequestTimeout {
		return fmt.Errorf("gateway.timeout (%s) must be shorter than server.request_timeout (%s)",
			c.Gateway.Timeout, c.Server.RequestTimeout)
	}
	return nil
}
