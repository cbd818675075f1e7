package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/auricle/auricle/internal/logger"
	"github.com/spf13/viper"
)

// FileConfig represents the top-level TOML structure.
type FileConfig struct {
	RetryInterval time.Duration  `toml:"retry_interval" mapstructure:"retry_interval"`
	CreateTimeout time.Duration  `toml:"create_timeout" mapstructure:"create_timeout"`
	EventBuffer   int            `toml:"event_buffer" mapstructure:"event_buffer"`
	Log           *LogConfig     `toml:"log" mapstructure:"log"`
	Store         *StoreConfig   `toml:"store" mapstructure:"store"`
	History       *HistoryConfig `toml:"history" mapstructure:"history"`
	Server        *ServerConfig  `toml:"server" mapstructure:"server"`
	X11           *X11Config     `toml:"x11" mapstructure:"x11"`
}

type LogConfig struct {
	Path       string `toml:"path" mapstructure:"path"`
	Level      string `toml:"level" mapstructure:"level"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

// StoreConfig selects the local session store. An empty path disables it.
type StoreConfig struct {
	Path string `toml:"path" mapstructure:"path"`
}

// HistoryConfig enables the optional remote history sinks. An empty DSN or
// address leaves the corresponding sink unconfigured.
type HistoryConfig struct {
	PostgresDSN     string `toml:"postgres_dsn" mapstructure:"postgres_dsn"`
	ClickHouseAddr  string `toml:"clickhouse_addr" mapstructure:"clickhouse_addr"`
	ClickHouseTable string `toml:"clickhouse_table" mapstructure:"clickhouse_table"`
}

// ServerConfig configures the HTTP introspection surface. An empty listen
// address disables the server entirely.
type ServerConfig struct {
	Listen   string `toml:"listen" mapstructure:"listen"`
	BasePath string `toml:"base_path" mapstructure:"base_path"`
}

type X11Config struct {
	Display string `toml:"display" mapstructure:"display"`
}

const (
	defaultRetryInterval = 500 * time.Millisecond
	defaultCreateTimeout = 2 * time.Second
	defaultEventBuffer   = 64
	defaultBasePath      = "/auricle"
	defaultHistoryTable  = "focus_history"
)

// Load reads a TOML config file and applies defaults. A missing file is an
// error; callers that want a pure-default config pass an empty path.
func Load(path string) (*FileConfig, error) {
	fc := Defaults()
	if strings.TrimSpace(path) == "" {
		return fc, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	fc.applyDefaults()
	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return fc, nil
}

// Defaults returns a config with every knob at its built-in default.
func Defaults() *FileConfig {
	fc := &FileConfig{}
	fc.applyDefaults()
	return fc
}

func (fc *FileConfig) applyDefaults() {
	if fc.RetryInterval <= 0 {
		fc.RetryInterval = defaultRetryInterval
	}
	if fc.CreateTimeout <= 0 {
		fc.CreateTimeout = defaultCreateTimeout
	}
	if fc.EventBuffer <= 0 {
		fc.EventBuffer = defaultEventBuffer
	}
	if fc.Server != nil && fc.Server.BasePath == "" {
		fc.Server.BasePath = defaultBasePath
	}
	if fc.History != nil && fc.History.ClickHouseTable == "" {
		fc.History.ClickHouseTable = defaultHistoryTable
	}
}

func (fc *FileConfig) validate() error {
	if fc.Server != nil && fc.Server.Listen != "" && !strings.HasPrefix(fc.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with '/': %q", fc.Server.BasePath)
	}
	return nil
}

// LoggerConfig maps the [log] section onto the logger package's config.
func (fc *FileConfig) LoggerConfig() logger.Config {
	if fc.Log == nil {
		return logger.Config{}
	}
	return logger.Config{
		Path:       fc.Log.Path,
		Level:      fc.Log.Level,
		MaxSizeMB:  fc.Log.MaxSizeMB,
		MaxBackups: fc.Log.MaxBackups,
		MaxAgeDays: fc.Log.MaxAgeDays,
		Compress:   fc.Log.Compress,
	}
}
