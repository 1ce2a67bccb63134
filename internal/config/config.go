// ABOUTME: Application configuration backed by viper
// ABOUTME: Layers defaults, an optional config file, SOUNDEXAMPLE_* env vars and flags
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/justinhj/soundexample/pkg/audio"
	"github.com/justinhj/soundexample/pkg/audio/output"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g. SOUNDEXAMPLE_LOG_LEVEL
const EnvPrefix = "SOUNDEXAMPLE"

// Config holds every tunable of the sine and playback programs
type Config struct {
	Frequency  float64   `mapstructure:"frequency"`
	Duration   float64   `mapstructure:"duration"`
	SampleRate int       `mapstructure:"sample_rate"`
	Backend    string    `mapstructure:"backend"`
	Volume     float64   `mapstructure:"volume"`
	TUI        bool      `mapstructure:"tui"`
	Log        LogConfig `mapstructure:"log"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("frequency", 130.0)
	v.SetDefault("duration", 3.0)
	v.SetDefault("sample_rate", audio.DefaultSampleRate)
	v.SetDefault("backend", "oto")
	v.SetDefault("volume", 1.0)
	v.SetDefault("tui", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each flag to the config key of the same name, with
// dashes mapped to underscores (sample-rate -> sample_rate)
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if strings.HasPrefix(key, "log_") {
			key = "log." + strings.TrimPrefix(key, "log_")
		}
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("failed to bind flag %s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// Load reads the optional config file and decodes the merged settings
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that don't depend on the command being run
func (c Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 || math.IsNaN(c.Volume) {
		return fmt.Errorf("%w: volume must be in [0, 1], got %v", audio.ErrInvalidArgument, c.Volume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", audio.ErrInvalidArgument, c.SampleRate)
	}

	known := false
	for _, b := range output.Backends {
		if c.Backend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown backend %q (supported: %s)", audio.ErrInvalidArgument, c.Backend, strings.Join(output.Backends, ", "))
	}
	return nil
}

// Format returns the PCM format used for synthesized audio
func (c Config) Format() audio.Format {
	f := audio.DefaultFormat()
	f.SampleRate = c.SampleRate
	return f
}
