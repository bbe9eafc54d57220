// Package config loads runtime configuration from defaults, .ls-zodiac.yaml,
// an optional .env file and LSZODIAC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/logging"
	"github.com/litescript/ls-zodiac/internal/numerology"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "LSZODIAC"

// Refresh interval bounds for watch mode.
const (
	MinRefresh = time.Minute
	MaxRefresh = 24 * time.Hour
)

// EphemConfig selects and tunes the position source.
type EphemConfig struct {
	Mode        string        `mapstructure:"mode"`
	HorizonsURL string        `mapstructure:"horizons_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	Bodies      []string      `mapstructure:"bodies"` // empty queries every known body

	bodies []ephem.BodyInfo
}

// ObserverConfig is the default place charts are cast for.
type ObserverConfig struct {
	Lat  float64 `mapstructure:"lat"`
	Lon  float64 `mapstructure:"lon"`
	Name string  `mapstructure:"name"`
}

// NumerologyConfig holds numerology defaults.
type NumerologyConfig struct {
	System string `mapstructure:"system"`
}

// WatchConfig tunes the live dashboard.
type WatchConfig struct {
	Refresh   time.Duration `mapstructure:"refresh"`
	MaxEvents int           `mapstructure:"max_events"`
}

// Config holds all runtime configuration.
// Values are populated from .ls-zodiac.yaml, LSZODIAC_* env vars, and CLI flags.
type Config struct {
	Log        logging.Config   `mapstructure:"log"`
	Ephem      EphemConfig      `mapstructure:"ephem"`
	Observer   ObserverConfig   `mapstructure:"observer"`
	Numerology NumerologyConfig `mapstructure:"numerology"`
	Watch      WatchConfig      `mapstructure:"watch"`
}

// Options locates the optional config and env files.
type Options struct {
	ConfigFile string // explicit path; empty searches cwd then $HOME
	EnvFile    string // empty means ".env" in cwd
}

// SetDefaults registers built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	def := logging.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.output", def.Output)
	v.SetDefault("log.development", false)
	v.SetDefault("ephem.mode", ephem.ModeAuto.String())
	v.SetDefault("ephem.horizons_url", ephem.HorizonsAPIURL)
	v.SetDefault("ephem.timeout", ephem.RequestTimeout)
	v.SetDefault("ephem.cache_ttl", ephem.DefaultCacheTTL)
	v.SetDefault("ephem.bodies", []string{})
	v.SetDefault("observer.lat", 51.4769) // Greenwich
	v.SetDefault("observer.lon", 0.0)
	v.SetDefault("observer.name", "Greenwich")
	v.SetDefault("numerology.system", string(numerology.Pythagorean))
	v.SetDefault("watch.refresh", 15*time.Minute)
	v.SetDefault("watch.max_events", 50)
}

// Init prepares v: defaults, env binding, .env and the config file.
// A missing config or .env file is not an error.
func Init(v *viper.Viper, opts Options) error {
	SetDefaults(v)

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(".ls-zodiac")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", filepath.Base(v.ConfigFileUsed()), err)
	}
	return nil
}

// Load unmarshals v into a Config, clamping and validating values.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Observer.Lat < -90 || cfg.Observer.Lat > 90 {
		return Config{}, fmt.Errorf("observer.lat %v out of range [-90, 90]", cfg.Observer.Lat)
	}
	cfg.Observer.Lon = astro.NormalizeDegrees(cfg.Observer.Lon+180) - 180

	if len(cfg.Ephem.Bodies) > 0 {
		bodies, err := ephem.ResolveBodies(cfg.Ephem.Bodies)
		if err != nil {
			return Config{}, fmt.Errorf("ephem.bodies: %w", err)
		}
		cfg.Ephem.bodies = bodies
	}

	cfg.Watch.Refresh = ClampRefresh(cfg.Watch.Refresh)
	if cfg.Watch.MaxEvents <= 0 {
		cfg.Watch.MaxEvents = 50
	}
	return cfg, nil
}

// ClampRefresh bounds a refresh interval to [MinRefresh, MaxRefresh].
func ClampRefresh(d time.Duration) time.Duration {
	if d < MinRefresh {
		return MinRefresh
	}
	if d > MaxRefresh {
		return MaxRefresh
	}
	return d
}

// ObserverLocation returns the configured observer.
func (c Config) ObserverLocation() astro.Observer {
	return astro.Observer{LatDeg: c.Observer.Lat, LonDeg: c.Observer.Lon, Name: c.Observer.Name}
}

// EphemMode returns the parsed provider mode.
func (c Config) EphemMode() ephem.Mode {
	return ephem.ParseMode(c.Ephem.Mode)
}

// HorizonsOptions returns provider options for the Horizons client.
func (c Config) HorizonsOptions() []ephem.HorizonsOption {
	ttl := c.Ephem.CacheTTL
	if ttl < 0 {
		ttl = 0
	}
	opts := []ephem.HorizonsOption{ephem.WithCacheTTL(ttl)}
	if c.Ephem.HorizonsURL != "" {
		opts = append(opts, ephem.WithBaseURL(c.Ephem.HorizonsURL))
	}
	if c.Ephem.Timeout > 0 {
		opts = append(opts, ephem.WithTimeout(c.Ephem.Timeout))
	}
	if len(c.Ephem.bodies) > 0 {
		opts = append(opts, ephem.WithBodies(c.Ephem.bodies))
	}
	return opts
}

// NumerologySystem returns the parsed letter system.
func (c Config) NumerologySystem() numerology.System {
	return numerology.ParseSystem(c.Numerology.System)
}
