package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/misterclayt0n/gymweek/internal/utils"
)

const (
	appDir           = "gymweek"
	DefaultLocale    = "en"
	DefaultExpiry    = 24 * time.Hour
	devConnection    = "file:./local.db"
	defaultDBFile    = "gymweek.db"
	envDatabaseURL   = "TURSO_DATABASE_URL"
	envStateDir      = "GYMWEEK_STATE_DIR"
	envLocale        = "GYMWEEK_LOCALE"
	envDefaultPlan   = "GYMWEEK_DEFAULT_PLAN"
	envSessionExpiry = "GYMWEEK_SESSION_EXPIRY"
	envDevMode       = "DEV_MODE"
)

type Config struct {
	DB       DBConfig       `toml:"database"`
	State    StateConfig    `toml:"state"`
	Schedule ScheduleConfig `toml:"schedule"`
	Session  SessionConfig  `toml:"session"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

type StateConfig struct {
	Dir string `toml:"dir"` // Where the schedule and active session blobs live.
}

type ScheduleConfig struct {
	Locale        string `toml:"locale"`
	DefaultPlanID string `toml:"default_plan_id"`
}

type SessionConfig struct {
	Expiry Duration `toml:"expiry"`
}

// Duration decodes TOML strings such as "24h" or "90m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Returns the directory holding config.toml and, by default, all state.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDir), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file from its default location.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads the configuration at path. A missing file is not an error, defaults
// are used instead. A .env file in the working directory is honoured when present,
// and environment variables override anything read from disk.
func Load(path string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := applyDefaults(cfg, filepath.Dir(path)); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(envDatabaseURL); v != "" {
		cfg.DB.ConnectionString = v
	}
	if v := os.Getenv(envStateDir); v != "" {
		cfg.State.Dir = v
	}
	if v := os.Getenv(envLocale); v != "" {
		cfg.Schedule.Locale = v
	}
	if v := os.Getenv(envDefaultPlan); v != "" {
		cfg.Schedule.DefaultPlanID = v
	}
	if v := os.Getenv(envSessionExpiry); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envSessionExpiry, err)
		}
		cfg.Session.Expiry.Duration = d
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv(envDevMode) == "true" {
		cfg.DB.ConnectionString = devConnection
	}
	return nil
}

func applyDefaults(cfg *Config, configDir string) error {
	if cfg.State.Dir == "" {
		cfg.State.Dir = configDir
	}
	if cfg.DB.ConnectionString == "" {
		cfg.DB.ConnectionString = "file:" + filepath.Join(cfg.State.Dir, defaultDBFile)
	}
	if cfg.Schedule.Locale == "" {
		cfg.Schedule.Locale = DefaultLocale
	}
	if cfg.Session.Expiry.Duration == 0 {
		cfg.Session.Expiry.Duration = DefaultExpiry
	}
	return nil
}

func (c *Config) validate() error {
	if !utils.KnownLocale(c.Schedule.Locale) {
		return fmt.Errorf("schedule.locale %q is not supported", c.Schedule.Locale)
	}
	if c.Session.Expiry.Duration <= 0 {
		return fmt.Errorf("session.expiry must be positive")
	}
	return nil
}

// WriteDefault writes a default config to path unless one already exists.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	f, err := os.Create(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	cfg := Config{
		Schedule: ScheduleConfig{Locale: DefaultLocale},
		Session:  SessionConfig{Expiry: Duration{DefaultExpiry}},
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return false, err
	}
	return true, nil
}
