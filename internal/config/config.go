package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/prompt"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

// DefaultFileName is looked up in the working directory when no file is given.
const DefaultFileName = "lumina.yaml"

// EnvPrefix prefixes every environment override, e.g. LUMINA_API_URL.
const EnvPrefix = "lumina"

// Config holds the runtime settings shared by the CLI, the server and the MCP adapter.
type Config struct {
	APIURL         string `mapstructure:"api_url"`
	APIToken       string `mapstructure:"api_token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	LogLevel       string `mapstructure:"log_level"`
	RedisURL       string `mapstructure:"redis_url"`
	Public         bool   `mapstructure:"public"`
	Locale         string `mapstructure:"locale"`
	MaxPromptSize  int    `mapstructure:"max_prompt_size"`
	Addr           string `mapstructure:"addr"`
}

// Timeout returns the per-request timeout, zero when unbounded.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	var errs []error
	if c.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds))
	}
	if c.MaxPromptSize < 0 {
		errs = append(errs, fmt.Errorf("max_prompt_size must not be negative, got %d", c.MaxPromptSize))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !c.Public && c.APIURL != "" && !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		errs = append(errs, fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL))
	}
	return errors.Join(errs...)
}

func defaults() map[string]any {
	return map[string]any{
		"api_url":         "",
		"api_token":       "",
		"timeout_seconds": 60,
		"log_level":       "info",
		"redis_url":       "",
		"public":          false,
		"locale":          "en",
		"max_prompt_size": prompt.DefaultMaxSize,
		"addr":            ":8080",
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"api-url":   "api_url",
	"api-token": "api_token",
	"timeout":   "timeout_seconds",
	"log-level": "log_level",
	"redis-url": "redis_url",
	"public":    "public",
	"locale":    "locale",
	"addr":      "addr",
}

// Load resolves the configuration from, in increasing precedence: defaults,
// the YAML file at path (or ./lumina.yaml when path is empty and it exists),
// LUMINA_* environment variables and changed flags of fs.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	vip := v.New()
	for k, val := range defaults() {
		vip.SetDefault(k, val)
	}
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()

	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		vip.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		vip.SetConfigType("yaml")
		vip.AddConfigPath(".")
		if err := vip.ReadInConfig(); err != nil {
			var notFound v.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := vip.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
