package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers
const (
	DriverSurrealDB = "surrealdb"
	DriverSQLite    = "sqlite"
)

// Apply modes for balancing decisions
const (
	ApplyAtomic     = "atomic"
	ApplyBestEffort = "best_effort"
)

// defaultDBPassword matches the DB_PASSWORD envDefault
const defaultDBPassword = "root"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	SQLite   SQLiteConfig
	Balance  BalanceConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string        `env:"SERVER_PORT" envDefault:"8080"`
	Env            string        `env:"SERVER_ENV" envDefault:"development"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"surrealdb"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string `env:"DB_HOST" envDefault:"localhost"`
	Port      string `env:"DB_PORT" envDefault:"8000"`
	Namespace string `env:"DB_NAMESPACE" envDefault:"guildhall"`
	Database  string `env:"DB_DATABASE" envDefault:"main"`
	User      string `env:"DB_USER" envDefault:"root"`
	Password  string `env:"DB_PASSWORD" envDefault:"root"`
}

// SQLiteConfig holds embedded store settings
type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"guildhall.db"`
}

// BalanceConfig holds balancing settings
type BalanceConfig struct {
	MinCapacity int    `env:"BALANCE_MIN_CAPACITY" envDefault:"3"`
	ApplyMode   string `env:"BALANCE_APPLY_MODE" envDefault:"atomic"`
	// RebalanceInterval of zero disables the background job
	RebalanceInterval time.Duration `env:"REBALANCE_INTERVAL" envDefault:"0s"`
	RebalanceCapacity int           `env:"REBALANCE_CAPACITY" envDefault:"5"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Store validation
	switch c.Store.Driver {
	case DriverSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
		if c.IsProduction() && c.Database.Password == defaultDBPassword {
			errs = append(errs, errors.New("DB_PASSWORD must be changed from the default in production"))
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when STORE_DRIVER is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be '%s' or '%s', got '%s'", DriverSurrealDB, DriverSQLite, c.Store.Driver))
	}

	// Balance validation
	if c.Balance.MinCapacity < 1 {
		errs = append(errs, errors.New("BALANCE_MIN_CAPACITY must be positive"))
	}
	if c.Balance.ApplyMode != ApplyAtomic && c.Balance.ApplyMode != ApplyBestEffort {
		errs = append(errs, fmt.Errorf("BALANCE_APPLY_MODE must be '%s' or '%s', got '%s'", ApplyAtomic, ApplyBestEffort, c.Balance.ApplyMode))
	}
	if c.Balance.RebalanceInterval < 0 {
		errs = append(errs, errors.New("REBALANCE_INTERVAL cannot be negative"))
	}
	if c.Balance.RebalanceInterval > 0 && c.Balance.RebalanceCapacity < c.Balance.MinCapacity {
		errs = append(errs, fmt.Errorf("REBALANCE_CAPACITY must be at least BALANCE_MIN_CAPACITY (%d)", c.Balance.MinCapacity))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
