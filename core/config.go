package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete runtime configuration of the API and the refresher.
type Config struct {
	Environment string                    `yaml:"environment"`
	LogLevel    string                    `yaml:"log_level"`
	Server      ServerConfig              `yaml:"server"`
	Database    DatabaseConfig            `yaml:"database"`
	Redis       RedisConfig               `yaml:"redis"`
	Cache       CacheConfig               `yaml:"cache"`
	Providers   map[string]ProviderConfig `yaml:"providers"`
}

type ServerConfig struct {
	Port     string `yaml:"port"`
	UIDomain string `yaml:"ui_domain"`
}

// DatabaseConfig selects Postgres when Host is set and a SQLite file at Path
// otherwise.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Path     string `yaml:"path"`
}

// RedisConfig is optional. Without an address the refresh lock is process
// local. LockTTL must cover a whole refresh, so it is at least twice the
// longest provider timeout.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

type CacheConfig struct {
	// Timeout is how long a company profile and its statements are served
	// from the store before a refetch.
	Timeout time.Duration `yaml:"timeout"`
	// SearchTimeout is the same for raw search results.
	SearchTimeout time.Duration `yaml:"search_timeout"`
}

// ProviderConfig configures the upstream data source of one country.
type ProviderConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
	// RetryMax is the number of transport level retries per request.
	RetryMax int `yaml:"retry_max"`
	// RateLimit is the maximum number of requests per minute, 0 means no
	// limit.
	RateLimit int `yaml:"rate_limit"`
}

func defaultConfig() *Config {
	return &Config{
		Environment: "production",
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Port:    "5432",
			SSLMode: "disable",
			Path:    "app.db",
		},
		Redis: RedisConfig{
			LockTTL: 30 * time.Second,
		},
		Cache: CacheConfig{
			Timeout:       24 * time.Hour,
			SearchTimeout: time.Hour,
		},
		Providers: map[string]ProviderConfig{
			"us": {
				BaseURL:  "https://financialmodelingprep.com/api/v3",
				Timeout:  10 * time.Second,
				RetryMax: 2,
			},
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at path
// and the environment (including a .env file in the working directory, if
// there is one). Environment variables win over the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyProviderDefaults(cfg)

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyProviderDefaults fills in what a YAML provider entry left out, since
// decoding a map entry replaces the default value instead of merging it.
func applyProviderDefaults(cfg *Config) {
	defaults := defaultConfig().Providers

	for country, pc := range cfg.Providers {
		if def, ok := defaults[country]; ok && pc.BaseURL == "" {
			pc.BaseURL = def.BaseURL
		}
		if pc.Timeout == 0 {
			pc.Timeout = 10 * time.Second
		}
		cfg.Providers[country] = pc
	}
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Environment, "ENVIRONMENT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.UIDomain, "UI_DOMAIN")

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Database.Path, "DATABASE_PATH")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if err := setSeconds(&cfg.Redis.LockTTL, "REDIS_LOCK_TTL"); err != nil {
		return err
	}

	if err := setSeconds(&cfg.Cache.Timeout, "CACHE_TIMEOUT"); err != nil {
		return err
	}
	if err := setSeconds(&cfg.Cache.SearchTimeout, "SEARCH_CACHE_TIMEOUT"); err != nil {
		return err
	}

	// Per country upstream settings follow the API_BASE_URL_<CC> and
	// API_KEY_<CC> naming.
	for country, pc := range cfg.Providers {
		suffix := strings.ToUpper(country)
		setString(&pc.BaseURL, "API_BASE_URL_"+suffix)
		setString(&pc.APIKey, "API_KEY_"+suffix)
		cfg.Providers[country] = pc
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setSeconds(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}

	seconds, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be a number of seconds: %w", key, err)
	}

	*dst = time.Duration(seconds) * time.Second
	return nil
}

func (c *Config) validate() error {
	if c.Cache.Timeout <= 0 {
		return errors.New("cache timeout must be positive")
	}

	if c.Cache.SearchTimeout <= 0 {
		return errors.New("search cache timeout must be positive")
	}

	if len(c.Providers) == 0 {
		return errors.New("at least one provider is required")
	}

	for country, pc := range c.Providers {
		if country != strings.ToLower(country) {
			return fmt.Errorf("provider country code %q must be lowercase", country)
		}
		if pc.BaseURL == "" {
			return fmt.Errorf("provider %q has no base url", country)
		}
		if pc.Timeout <= 0 {
			return fmt.Errorf("provider %q timeout must be positive", country)
		}
	}

	if c.Redis.Addr != "" {
		for country, pc := range c.Providers {
			if c.Redis.LockTTL < 2*pc.Timeout {
				return fmt.Errorf("redis lock ttl %v is shorter than twice the %q provider timeout %v", c.Redis.LockTTL, country, pc.Timeout)
			}
		}
	}

	if c.Database.Host == "" && c.Database.Path == "" {
		return errors.New("either a database host or a database path is required")
	}

	return nil
}
