package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dukerupert/calboard/internal/calendar"
)

// Config is the runtime configuration. Values come from defaults, then an
// optional YAML file, then CALBOARD_* environment variables.
type Config struct {
	Port       string               `yaml:"port"`
	DBPath     string               `yaml:"db_path"`
	LogLevel   string               `yaml:"log_level"`
	Mode       calendar.Mode        `yaml:"mode"`
	Persist    bool                 `yaml:"persist"`
	StorageKey string               `yaml:"storage_key"`
	Grid       calendar.GridOptions `yaml:"grid"`
}

func Default() *Config {
	return &Config{
		Port:       "8080",
		DBPath:     "calboard.db",
		LogLevel:   "info",
		Mode:       calendar.ModePrompt,
		Persist:    true,
		StorageKey: calendar.StorageKey,
		Grid:       calendar.DefaultGridOptions(),
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply. getenv is usually os.Getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("CALBOARD_PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("CALBOARD_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := getenv("CALBOARD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("CALBOARD_MODE"); v != "" {
		c.Mode = calendar.Mode(v)
	}
	if v := getenv("CALBOARD_PERSIST"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CALBOARD_PERSIST: %w", err)
		}
		c.Persist = b
	}
	if v := getenv("CALBOARD_STORAGE_KEY"); v != "" {
		c.StorageKey = v
	}
	return nil
}

// Normalize fills blanks with defaults and rejects values the server cannot
// run with.
func (c *Config) Normalize() error {
	def := Default()

	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if c.Port == "" {
		c.Port = def.Port
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}

	if c.Mode == "" {
		c.Mode = def.Mode
	}
	mode, err := calendar.ParseMode(string(c.Mode))
	if err != nil {
		return err
	}
	c.Mode = mode

	if c.Grid.InitialView == "" {
		c.Grid.InitialView = def.Grid.InitialView
	}
	if len(c.Grid.Plugins) == 0 {
		c.Grid.Plugins = def.Grid.Plugins
	}
	if !c.Grid.Selectable {
		return errors.New("grid.selectable must be true: selection drives event creation")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
