// Package config loads gateway settings: built-in defaults, then an optional
// YAML file, then environment overrides, in that order.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendLocal    = "local"
)

type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	LogLevel    string `yaml:"log_level"`
	CountryCode string `yaml:"country_code"`

	Upstream UpstreamConfig `yaml:"upstream"`
	Storage  StorageConfig  `yaml:"storage"`
	Cart     CartConfig     `yaml:"cart"`
}

type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type StorageConfig struct {
	// Backend is one of memory, file, redis, postgres.
	Backend string `yaml:"backend"`
	FileDir string `yaml:"file_dir"`
}

type CartConfig struct {
	// Backend is local or redis.
	Backend string `yaml:"backend"`
}

func defaults() Config {
	return Config{
		ListenAddr:  ":8080",
		LogLevel:    "info",
		CountryCode: "55",
		Upstream: UpstreamConfig{
			TimeoutSeconds: 15,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			FileDir: "data",
		},
		Cart: CartConfig{
			Backend: BackendLocal,
		},
	}
}

// Load reads the config file at path when it exists. A missing file is fine;
// everything can come from defaults and environment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrap(err, "read config file")
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.ListenAddr, "SEVENMENU_LISTEN_ADDR")
	setString(&cfg.LogLevel, "SEVENMENU_LOG_LEVEL")
	setString(&cfg.CountryCode, "SEVENMENU_COUNTRY_CODE")
	setString(&cfg.Upstream.BaseURL, "SEVENMENU_UPSTREAM_URL")
	setInt(&cfg.Upstream.TimeoutSeconds, "SEVENMENU_UPSTREAM_TIMEOUT")
	setString(&cfg.Storage.Backend, "SEVENMENU_STORAGE_BACKEND")
	setString(&cfg.Storage.FileDir, "SEVENMENU_STORAGE_DIR")
	setString(&cfg.Cart.Backend, "SEVENMENU_CART_BACKEND")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	if c.Upstream.BaseURL == "" {
		return errors.New("config: upstream base_url is required")
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres:
	default:
		return errors.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Cart.Backend {
	case BackendLocal, BackendRedis:
	default:
		return errors.Errorf("config: unknown cart backend %q", c.Cart.Backend)
	}
	return nil
}
