// Package config loads the settings of the transport tools: a YAML file,
// overridden by TRANSPORT_ environment variables (".env" is read too).
// Nested keys use a double underscore, so TRANSPORT_DATABASE__HOST sets
// database.host.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gartstein/transport/internal/transport/db"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

const envPrefix = "TRANSPORT_"

type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver" validate:"oneof=postgres sqlite"`
	Host         string `koanf:"host" validate:"required_if=Driver postgres"`
	Port         int    `koanf:"port" validate:"required_if=Driver postgres,gte=0,lte=65535"`
	User         string `koanf:"user" validate:"required_if=Driver postgres"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode      string `koanf:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path         string `koanf:"path"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=0"`
	SlowQueryMS  int    `koanf:"slow_query_ms" validate:"gte=0"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	// Mode is "production" (JSON) or "development" (console).
	Mode string `koanf:"mode" validate:"oneof=production development"`
}

// Default is a local SQLite setup.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       db.DriverSQLite,
			Port:         5432,
			SSLMode:      "disable",
			Path:         "transport.db",
			MaxOpenConns: 10,
			SlowQueryMS:  200,
		},
		Log: LogConfig{
			Level: "info",
			Mode:  "production",
		},
	}
}

// Load reads path, if not empty, on top of Default, applies the
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(yamlBytes(data), nil); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DB converts the database section for db.Open.
func (c *DatabaseConfig) DB() *db.Config {
	return &db.Config{
		Driver:       c.Driver,
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		Password:     c.Password,
		DBName:       c.Name,
		SSLMode:      c.SSLMode,
		Path:         c.Path,
		MaxOpenConns: c.MaxOpenConns,
		SlowQuery:    time.Duration(c.SlowQueryMS) * time.Millisecond,
	}
}

// yamlBytes is a koanf provider over an in-memory YAML document.
type yamlBytes []byte

func (y yamlBytes) ReadBytes() ([]byte, error) {
	return y, nil
}

func (y yamlBytes) Read() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(y, &out); err != nil {
		return nil, err
	}
	return out, nil
}
