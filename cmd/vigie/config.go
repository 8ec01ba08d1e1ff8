package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the full vigie server configuration. Values from the
// YAML file are overridden by environment variables in main.
type ServerConfig struct {
	Listen       string `yaml:"listen"`
	DBPath       string `yaml:"db_path"`
	ObsDBPath    string `yaml:"obs_db_path"`
	JWTSecret    string `yaml:"jwt_secret"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"` // "json" | "text"
	MCPTransport string `yaml:"mcp_transport"`

	DefaultWindowDays     int `yaml:"default_window_days"`
	MaxWindowDays         int `yaml:"max_window_days"`
	MaxPressureWindowDays int `yaml:"max_pressure_window_days"`
	DefaultLimit          int `yaml:"default_limit"`
	MaxLimit              int `yaml:"max_limit"`
}

// DefaultServerConfig returns sane defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Listen:    ":8086",
		DBPath:    "db/vigie.db",
		ObsDBPath: "db/observability.db",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// LoadServerConfig reads and parses a YAML config file, merged over
// DefaultServerConfig.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
