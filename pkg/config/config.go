// Package config wraps viper with functional options and a few typed
// helpers. Sources are layered defaults < file < env < flags.
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the wrapper around viper used across the console.
type Config struct {
	*viper.Viper

	onChange func()
}

// Option is a functional option for New.
type Option func(*Config) error

// New creates a Config instance.
// Example:
//
//	cfg := config.New(
//	  config.WithDefaults(map[string]any{"service.port": "8080"}),
//	  config.WithFile("config.yaml"),
//	  config.WithEnv("CONSOLE"),
//	)
func New(opts ...Option) *Config {
	cfg := &Config{Viper: viper.New()}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			log.Fatalf("config: applying option failed: %v", err)
		}
	}

	if cfg.ConfigFileUsed() != "" {
		if err := cfg.ReadInConfig(); err != nil {
			// non-fatal; env/flags/defaults may be all the caller wants
			log.Printf("config: read config warning: %v", err)
		}
	}

	return cfg
}

// WithDefaults sets default values (applied first).
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) error {
		for k, v := range defaults {
			c.SetDefault(k, v)
		}
		return nil
	}
}

// WithFile sets an exact config file; the extension determines the format.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		c.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			c.SetConfigType(ext)
		}
		return nil
	}
}

// WithEnv enables environment variable overrides. prefix "CONSOLE" means
// CONSOLE_SERVICE_PORT overrides service.port.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		if prefix != "" {
			c.SetEnvPrefix(prefix)
		}
		c.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		c.AutomaticEnv()
		return nil
	}
}

// WithPFlags binds a pflag.FlagSet. Nil binds the default command line.
func WithPFlags(flags *pflag.FlagSet) Option {
	return func(c *Config) error {
		if flags == nil {
			flags = pflag.CommandLine
		}
		return c.BindPFlags(flags)
	}
}

// WithWatch enables hot-reload; onChange runs after a successful reload.
func WithWatch(onChange func()) Option {
	return func(c *Config) error {
		c.WatchConfig()
		c.onChange = onChange
		c.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("config: file changed: %s", e.Name)
			if c.onChange != nil {
				c.onChange()
			}
		})
		return nil
	}
}

// GetStringD returns the string at key or def when unset/empty.
func (c *Config) GetStringD(key, def string) string {
	if val := c.GetString(key); val != "" {
		return val
	}
	return def
}

// GetIntD returns the int at key or def when unset.
func (c *Config) GetIntD(key string, def int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}
	return def
}

// GetBoolD returns the bool at key or def when unset.
func (c *Config) GetBoolD(key string, def bool) bool {
	if c.IsSet(key) {
		return c.GetBool(key)
	}
	return def
}

// GetDurationD returns the duration at key or def when unset.
func (c *Config) GetDurationD(key string, def time.Duration) time.Duration {
	if c.IsSet(key) {
		return c.GetDuration(key)
	}
	return def
}

// ValidateRequired ensures keys exist and are non-empty.
func (c *Config) ValidateRequired(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !c.IsSet(k) || c.GetString(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}
	return nil
}
