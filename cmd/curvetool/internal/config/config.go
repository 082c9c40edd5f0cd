// Package config loads curvetool configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/meenmo/curvelib/cmd/curvetool/internal/logging"
)

// Config is the root configuration for the curvetool binary.
type Config struct {
	Logging  logging.Config `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Curve    CurveConfig    `mapstructure:"curve"`
	Plot     PlotConfig     `mapstructure:"plot"`
}

// DatabaseConfig points at the Postgres quote store.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig controls the optional quote cache in front of the store.
type RedisConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// CurveConfig carries the construction conventions applied to loaded quotes.
// Values use the constant spellings of the curve, daycount and interp packages.
type CurveConfig struct {
	Frequency     string `mapstructure:"frequency"`
	DayCount      string `mapstructure:"day_count"`
	Interpolation string `mapstructure:"interpolation"`
	Calendar      string `mapstructure:"calendar"`
}

// PlotConfig sizes rendered charts and the sampling grid behind them.
type PlotConfig struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	SampleStep float64 `mapstructure:"sample_step"`
}

// Load reads configuration from path, or from ./config.yaml when path is
// empty, then applies CURVETOOL_* environment overrides on top. A missing
// default file is not an error; the defaults below apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CURVETOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.caller", false)

	v.SetDefault("database.dsn", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", "15m")

	v.SetDefault("curve.frequency", "ANNUAL")
	v.SetDefault("curve.day_count", "ACT/ACT")
	v.SetDefault("curve.interpolation", "FLAT_FORWARD")
	v.SetDefault("curve.calendar", "TARGET")

	v.SetDefault("plot.width", 1280)
	v.SetDefault("plot.height", 720)
	v.SetDefault("plot.sample_step", 0.1)
}

// Validate checks the structural settings. Curve conventions are validated
// by their own packages when the first curve is built.
func (c *Config) Validate() error {
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("plot dimensions must be positive, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	if c.Plot.SampleStep <= 0 {
		return fmt.Errorf("plot.sample_step must be positive, got %v", c.Plot.SampleStep)
	}
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required when redis.enabled is true")
		}
		if c.Redis.TTL <= 0 {
			return fmt.Errorf("redis.ttl must be positive, got %v", c.Redis.TTL)
		}
	}
	return nil
}
