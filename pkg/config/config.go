// Package config loads flowstep settings from a TOML file.
//
// The file lives at ~/.config/flowstep/config.toml (or under
// XDG_CONFIG_HOME when set) and every field is optional: absent values
// fall back to the defaults, and a missing file means all defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowstep/pkg/scene"
)

// appName names the per-user config and cache directories.
const appName = "flowstep"

// Cache backend selectors for [CacheConfig].
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendTiered = "tiered"
	BackendNone   = "none"
)

// Duration wraps time.Duration so TOML files can write "24h" or "10m".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds all flowstep settings.
type Config struct {
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig sets the default visualization options.
type RenderConfig struct {
	// VizType selects the renderer: "canvas" or "graphviz".
	VizType string `toml:"viz_type"`

	// Style selects the canvas style: "classic" or "blueprint".
	Style string `toml:"style"`

	// Scale multiplies PNG output resolution.
	Scale float64 `toml:"scale"`

	// Legend and Details toggle the canvas panels.
	Legend  bool `toml:"legend"`
	Details bool `toml:"details"`
}

// ServerConfig sets the HTTP API defaults.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// SessionTTL bounds how long an idle session keeps its view.
	SessionTTL Duration `toml:"session_ttl"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of file, redis, mongo, tiered, none.
	Backend string `toml:"backend"`

	// Dir overrides the file cache location. Empty means the XDG cache dir.
	Dir string `toml:"dir"`

	// KeyPrefix namespaces cache keys when deployments share a backend.
	KeyPrefix string `toml:"key_prefix"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig holds Mongo connection settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LogConfig sets logging behavior.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Render: RenderConfig{
			VizType: scene.VizTypeCanvas,
			Style:   scene.StyleClassic,
			Scale:   2.0,
			Legend:  true,
			Details: true,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: Duration{24 * time.Hour},
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path, or the default path when empty.
// A missing file is not an error: the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enum-valued fields.
func (c Config) Validate() error {
	switch c.Render.VizType {
	case scene.VizTypeCanvas, scene.VizTypeGraphviz:
	default:
		return fmt.Errorf("unknown render.viz_type %q", c.Render.VizType)
	}

	switch c.Render.Style {
	case scene.StyleClassic, scene.StyleBlueprint:
	default:
		return fmt.Errorf("unknown render.style %q", c.Render.Style)
	}

	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendTiered, BackendNone:
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}

	return nil
}

// DefaultPath returns the standard config file location:
// $XDG_CONFIG_HOME/flowstep/config.toml, or ~/.config/flowstep/config.toml.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigDir returns the per-user flowstep config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the per-user flowstep cache directory:
// $XDG_CACHE_HOME/flowstep, or ~/.cache/flowstep.
func CacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
