// Package config holds the settings shared by the shell and the command
// line tools. Values come from defaults, an optional config file and
// SOLVITAIRE_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ConfigTimeout        = "timeout"
	ConfigCacheCapacity  = "cache-capacity"
	ConfigMemoryFraction = "memory-fraction"
	ConfigCores          = "cores"
	ConfigStreamliner    = "streamliner"
	ConfigLogLevel       = "log-level"
	ConfigConfidence     = "confidence"
	ConfigDefaultPreset  = "default-preset"
)

type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigTimeout, time.Hour)
	// zero sizes the cache from the memory limit
	v.SetDefault(ConfigCacheCapacity, 0)
	v.SetDefault(ConfigMemoryFraction, 0.5)
	v.SetDefault(ConfigCores, max(1, runtime.NumCPU()-1))
	v.SetDefault(ConfigStreamliner, "none")
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigConfidence, 95.0)
	v.SetDefault(ConfigDefaultPreset, "klondike")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("solvitaire")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// DefaultConfig returns the defaults, with any environment overrides.
func DefaultConfig() *Config {
	return &Config{newViper()}
}

// Load reads the given config file (YAML, JSON or TOML, by extension) on top
// of the defaults. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	c.SetConfigFile(path)
	if err := c.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values that have a restricted range.
func (c *Config) Validate() error {
	if f := c.MemoryFraction(); f <= 0 || f > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", ConfigMemoryFraction, f)
	}
	if c.Cores() < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigCores)
	}
	if cf := c.Confidence(); cf <= 0 || cf >= 100 {
		return fmt.Errorf("%s must be a percentage strictly between 0 and 100", ConfigConfidence)
	}
	return nil
}

func (c *Config) Timeout() time.Duration  { return c.GetDuration(ConfigTimeout) }
func (c *Config) CacheCapacity() int      { return c.GetInt(ConfigCacheCapacity) }
func (c *Config) MemoryFraction() float64 { return c.GetFloat64(ConfigMemoryFraction) }
func (c *Config) Cores() int              { return c.GetInt(ConfigCores) }
func (c *Config) Streamliner() string     { return c.GetString(ConfigStreamliner) }
func (c *Config) LogLevel() string        { return c.GetString(ConfigLogLevel) }
func (c *Config) Confidence() float64     { return c.GetFloat64(ConfigConfidence) }
func (c *Config) DefaultPreset() string   { return c.GetString(ConfigDefaultPreset) }
