// Package config loads the catalog configuration from environment variables.
//
// Variables carry the CATALOG_ prefix; a double underscore separates nesting
// levels, so CATALOG_DATABASE__SSL_MODE sets database.ssl_mode. A .env file
// in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every configuration variable.
const EnvPrefix = "CATALOG_"

// Engine names.
const (
	EngineMemory   = "memory"
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
	EngineSpanner  = "spanner"
)

// Config is the root configuration object.
type Config struct {
	Env      string         `koanf:"env" validate:"required"`
	Engine   string         `koanf:"engine" validate:"required,oneof=memory postgres mysql spanner"`
	Log      LogConfig      `koanf:"log" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"-"`
	Spanner  SpannerConfig  `koanf:"spanner" validate:"-"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

// DatabaseConfig holds the SQL connection settings shared by the postgres
// and mysql engines. It is validated only when one of them is selected.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required,min=1,max=65535"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns        int32  `koanf:"max_conns" validate:"min=0"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
	SlowThresholdMS int    `koanf:"slow_threshold_ms" validate:"min=0"`
}

// SpannerConfig selects the Spanner database. It is validated only when the
// spanner engine is selected.
type SpannerConfig struct {
	// Database is the full resource name:
	// projects/<project>/instances/<instance>/databases/<database>.
	Database    string `koanf:"database" validate:"required,startswith=projects/"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// Default returns the configuration used for every key the environment
// leaves unset.
func Default() *Config {
	return &Config{
		Env:    "local",
		Engine: EngineMemory,
		Log: LogConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Name:            "catalog",
			SSLMode:         "disable",
			MaxConns:        4,
			AutoMigrate:     true,
			SlowThresholdMS: 200,
		},
	}
}

var validate = validator.New()

// Load reads the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Engine = strings.ToLower(cfg.Engine)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, including the block of the selected
// engine. It fills the database port from the engine when unset.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Engine {
	case EnginePostgres, EngineMySQL:
		if c.Database.Port == 0 {
			c.Database.Port = DefaultPort(c.Engine)
		}
		if err := validate.Struct(c.Database); err != nil {
			return fmt.Errorf("invalid database config: %w", err)
		}
	case EngineSpanner:
		if err := validate.Struct(c.Spanner); err != nil {
			return fmt.Errorf("invalid spanner config: %w", err)
		}
	}
	return nil
}

// DefaultPort returns the conventional port of a SQL engine.
func DefaultPort(engine string) int {
	if engine == EngineMySQL {
		return 3306
	}
	return 5432
}

// ErrNotPostgres is returned by PostgresDSN for other engines.
var ErrNotPostgres = errors.New("engine is not postgres")

// PostgresDSN builds a postgres:// connection URL.
func (c *Config) PostgresDSN() (string, error) {
	if c.Engine != EnginePostgres {
		return "", ErrNotPostgres
	}
	db := c.Database
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:   "/" + db.Name,
	}
	if db.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{db.SSLMode}}.Encode()
	}
	return u.String(), nil
}

// Addr returns host:port of the SQL database.
func (d DatabaseConfig) Addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}
