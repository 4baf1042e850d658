// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/tidetable/pkg/almanac"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	Prefix    string `envconfig:"PREFIX" default:"/"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	BuildID   string `envconfig:"BUILD_ID" default:"dev"`

	// ProfilesPath is a YAML file of station profiles. Without it only
	// Ilhéus is served.
	ProfilesPath string `envconfig:"PROFILES_PATH"`
	// DocumentURL and DocumentPath are used by profiles that name neither.
	DocumentURL  string `envconfig:"DOCUMENT_URL"`
	DocumentPath string `envconfig:"DOCUMENT_PATH"`

	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"6h"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// LowTideThreshold is in metres.
	LowTideThreshold float64 `envconfig:"LOW_TIDE_THRESHOLD" default:"0.5"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if !strings.HasPrefix(c.Prefix, "/") {
		return fmt.Errorf("PREFIX must start with /, got %q", c.Prefix)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Addr is the address the server listens on.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// NewLogger builds the logger described by LOG_LEVEL and LOG_FORMAT.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

// Profiles returns the station profiles to serve. Profiles without a
// document location get DOCUMENT_URL or DOCUMENT_PATH.
func (c *Config) Profiles() ([]almanac.Profile, error) {
	profiles := []almanac.Profile{almanac.Ilheus}
	if c.ProfilesPath != "" {
		f, err := os.Open(c.ProfilesPath)
		if err != nil {
			return nil, fmt.Errorf("PROFILES_PATH: %w", err)
		}
		defer f.Close()

		loaded, err := almanac.LoadProfiles(f)
		if err != nil {
			return nil, fmt.Errorf("PROFILES_PATH %s: %w", c.ProfilesPath, err)
		}
		if len(loaded) == 0 {
			return nil, fmt.Errorf("PROFILES_PATH %s: no profiles", c.ProfilesPath)
		}
		profiles = loaded
	}

	for i := range profiles {
		if profiles[i].DocumentURL == "" && profiles[i].DocumentPath == "" {
			profiles[i].DocumentURL = c.DocumentURL
			profiles[i].DocumentPath = c.DocumentPath
		}
	}
	return profiles, nil
}
