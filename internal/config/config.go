// Package config loads server configuration from a .env file, an optional
// YAML file, and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/venue-finder/internal/geocode"
	"github.com/evcraddock/venue-finder/internal/venue"
)

// CacheDisabled as the geocode cache path turns the sqlite cache off.
const CacheDisabled = "off"

// Config holds server configuration.
type Config struct {
	Port    string `yaml:"port"`
	DevMode bool   `yaml:"dev_mode"`

	SheetsAPIKey string `yaml:"sheets_api_key"`
	SheetsID     string `yaml:"sheets_id"`
	SheetsRange  string `yaml:"sheets_range"`

	MapboxToken    string        `yaml:"mapbox_token"`
	GeocodeTimeout time.Duration `yaml:"geocode_timeout"`
	GeocodeCache   string        `yaml:"geocode_cache"` // sqlite path, "" for default, "off" to disable

	RefreshTTL time.Duration `yaml:"refresh_ttl"` // 0 loads once and never refreshes on read
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:           "8080",
		GeocodeTimeout: geocode.DefaultTimeout,
		RefreshTTL:     venue.DefaultTTL,
	}
}

// DefaultPath returns the default YAML config location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vf", "server.yaml"), nil
}

// Load builds the configuration. An empty path reads the default location,
// where a missing file is not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if err := cfg.readFile(path, explicit); err != nil {
		return Config{}, err
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv populates the environment from dotenv files without overriding
// variables that are already set. Missing files are ignored.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "VF_PORT")
	setString(&c.SheetsAPIKey, "GOOGLE_SHEETS_API_KEY")
	setString(&c.SheetsID, "GOOGLE_SHEETS_ID")
	setString(&c.SheetsRange, "GOOGLE_SHEETS_RANGE")
	setString(&c.MapboxToken, "NEXT_PUBLIC_MAPBOX_ACCESS_TOKEN")
	setString(&c.MapboxToken, "MAPBOX_ACCESS_TOKEN")
	setString(&c.GeocodeCache, "VF_GEOCODE_CACHE")

	if v := os.Getenv("VF_DEV_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("VF_DEV_MODE: %w", err)
		}
		c.DevMode = b
	}
	if err := setDuration(&c.RefreshTTL, "VF_REFRESH_TTL"); err != nil {
		return err
	}
	return setDuration(&c.GeocodeTimeout, "VF_GEOCODE_TIMEOUT")
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.RefreshTTL < 0 {
		return fmt.Errorf("refresh ttl must not be negative, got %s", c.RefreshTTL)
	}
	if c.GeocodeTimeout <= 0 {
		return fmt.Errorf("geocode timeout must be positive, got %s", c.GeocodeTimeout)
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
