package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const FileName = "config.yaml"

type Config struct {
	// Content is the snapshot path or URL.
	Content   string          `yaml:"content,omitempty"`
	Timezone  string          `yaml:"timezone,omitempty"`
	LogLevel  string          `yaml:"log_level,omitempty"`
	LogFormat string          `yaml:"log_format,omitempty"`
	Watchlist WatchlistConfig `yaml:"watchlist,omitempty"`
	BGG       BGGConfig       `yaml:"bgg,omitempty"`
}

type WatchlistConfig struct {
	Backend    string `yaml:"backend,omitempty"` // file, sqlite or redis
	Key        string `yaml:"key,omitempty"`
	RedisAddr  string `yaml:"redis_addr,omitempty"`
	RedisDB    int    `yaml:"redis_db,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

type BGGConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	DelayMS int    `yaml:"delay_ms,omitempty"`
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads KEY=value pairs from a dotenv file and overlays them with
// the process environment, which wins. A missing file yields the process
// environment alone.
func LoadEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	if path != "" {
		vals, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range vals {
			env[k] = v
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

var envKeys = []string{
	"LAUNCHPAD_CONTENT",
	"LAUNCHPAD_TIMEZONE",
	"LAUNCHPAD_WATCHLIST_BACKEND",
	"LAUNCHPAD_REDIS_ADDR",
	"LAUNCHPAD_REDIS_DB",
	"LAUNCHPAD_SQLITE_PATH",
	"LAUNCHPAD_BGG_DELAY_MS",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// ApplyEnv overrides file settings with LAUNCHPAD_* variables.
func (c *Config) ApplyEnv(env map[string]string) error {
	set := func(key string, dst *string) {
		if v, ok := env[key]; ok && v != "" {
			*dst = v
		}
	}
	set("LAUNCHPAD_CONTENT", &c.Content)
	set("LAUNCHPAD_TIMEZONE", &c.Timezone)
	set("LAUNCHPAD_WATCHLIST_BACKEND", &c.Watchlist.Backend)
	set("LAUNCHPAD_REDIS_ADDR", &c.Watchlist.RedisAddr)
	set("LAUNCHPAD_SQLITE_PATH", &c.Watchlist.SQLitePath)
	set("LOG_LEVEL", &c.LogLevel)
	set("LOG_FORMAT", &c.LogFormat)

	for key, dst := range map[string]*int{
		"LAUNCHPAD_REDIS_DB":     &c.Watchlist.RedisDB,
		"LAUNCHPAD_BGG_DELAY_MS": &c.BGG.DelayMS,
	} {
		v, ok := env[key]
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

// Location returns the configured timezone, or the system zone when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate rejects unknown watchlist backends.
func (c *Config) Validate() error {
	switch c.Watchlist.Backend {
	case "", BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown watchlist backend %q: must be one of file, sqlite, redis", c.Watchlist.Backend)
	}
	if c.Watchlist.Backend == BackendRedis && c.Watchlist.RedisAddr == "" {
		return fmt.Errorf("watchlist backend redis requires redis_addr")
	}
	return nil
}
