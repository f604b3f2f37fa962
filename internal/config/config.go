package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// StoreMemory keeps users in process memory.
	StoreMemory = "memory"
	// StoreMySQL persists users through GORM.
	StoreMySQL = "mysql"

	// AuthJWT verifies signed tokens.
	AuthJWT = "jwt"
	// AuthStatic compares against a shared secret.
	AuthStatic = "static"
)

var (
	ErrUnknownStoreDriver = errors.New("unknown store driver")
	ErrUnknownAuthMode    = errors.New("unknown auth mode")
	ErrMissingStaticToken = errors.New("STATIC_TOKEN is required when AUTH_MODE=static")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required when AUTH_MODE=jwt")
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	// clientFoundRows makes UPDATE report matched rather than changed rows.
	MySQLDSN string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"`

	// Empty RedisAddr disables the cache and the revocation list.
	RedisAddr string `env:"REDIS_ADDR"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	AuthMode    string        `env:"AUTH_MODE" envDefault:"jwt"`
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"change-me"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"UserManagementAPI"`
	JWTAudience string        `env:"JWT_AUDIENCE" envDefault:"UserManagementAPIUsers"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	StaticToken string        `env:"STATIC_TOKEN"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreMySQL:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.StoreDriver)
	}

	switch c.AuthMode {
	case AuthJWT:
		if c.JWTSecret == "" {
			return ErrMissingJWTSecret
		}
	case AuthStatic:
		if c.StaticToken == "" {
			return ErrMissingStaticToken
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAuthMode, c.AuthMode)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
