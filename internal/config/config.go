package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all cogwatt configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Snapshot SnapshotConfig `toml:"snapshot"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type SnapshotConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron spec, local time
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37780,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Snapshot: SnapshotConfig{
			Enabled:  true,
			Schedule: "50 23 * * *",
		},
	}
}

// FromEnv returns Default() with COGWATT_* environment overrides applied.
func FromEnv() Config {
	cfg := Default()
	if v := os.Getenv("COGWATT_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("COGWATT_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("COGWATT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	return cfg
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
