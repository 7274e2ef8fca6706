// Package config loads relgraph settings from defaults, an optional YAML
// file and the environment, and builds the zap logger.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/snapshot"
)

// Config holds the application's configuration.
type Config struct {
	DataDir          string `mapstructure:"DATA_DIR" validate:"required"`
	StoreBackend     string `mapstructure:"STORE_BACKEND" validate:"oneof=file badger sqlite memory"`
	SQLitePath       string `mapstructure:"SQLITE_PATH" validate:"required_if=StoreBackend sqlite"`
	BadgerSyncWrites bool   `mapstructure:"BADGER_SYNC_WRITES"`
	HTTPAddr         string `mapstructure:"HTTP_ADDR" validate:"required"`
	LogLevel         string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	SaveTimeoutSec   int    `mapstructure:"SAVE_TIMEOUT_SECONDS" validate:"gte=1"`
	ShutdownSec      int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"gte=1"`
	MetricsNamespace string `mapstructure:"METRICS_NAMESPACE" validate:"required"`
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("STORE_BACKEND", snapshot.BackendFile)
	v.SetDefault("SQLITE_PATH", "data/relgraph.db")
	v.SetDefault("BADGER_SYNC_WRITES", true)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SAVE_TIMEOUT_SECONDS", 30)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("METRICS_NAMESPACE", "relgraph")
}

// Load reads the configuration. With path empty, relgraph.yaml is looked
// up in the working directory and ./config and may be absent; an explicit
// path must exist. Environment variables override both.
func Load(path string, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("relgraph")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read relgraph.yaml: %w", err)
			}
			logger.Debug("no config file, using defaults and environment")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(cfg.StoreBackend)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// SaveTimeout bounds each write-through snapshot save.
func (c *Config) SaveTimeout() time.Duration {
	return time.Duration(c.SaveTimeoutSec) * time.Second
}

// ShutdownTimeout bounds graceful HTTP shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownSec) * time.Second
}

// Snapshot maps the configuration onto snapshot.Open's input.
func (c *Config) Snapshot(logger *zap.Logger) snapshot.Config {
	return snapshot.Config{
		Backend:    c.StoreBackend,
		Dir:        c.DataDir,
		SQLitePath: c.SQLitePath,
		SyncWrites: c.BadgerSyncWrites,
		Logger:     logger,
	}
}
