// Package config resolves ecocart settings from flags, ECOCART_* environment
// variables, an optional .env file, and an optional ecocart.yaml.
package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/route"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/verify"
	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix           = "ECOCART"
	ConfigName          = "ecocart"
	DefaultLearnMoreURL = "https://ecocart.cybermonkey.net.au/carbon-footprint"
)

// Keys, shared by flags, env vars and the config file.
const (
	KeySeed         = "seed"
	KeySwapDelay    = "swap_delay"
	KeyRouteTick    = "route_tick"
	KeyLearnMoreURL = "learn_more_url"
	KeyDebug        = "debug"
	KeyLogLevel     = "log_level"
	KeyLogPath      = "log_path"
	KeyTelemetry    = "telemetry"
)

type Config struct {
	Seed         string        `mapstructure:"seed"`
	SwapDelay    time.Duration `mapstructure:"swap_delay" validate:"gte=0"`
	RouteTick    time.Duration `mapstructure:"route_tick" validate:"gt=0"`
	LearnMoreURL string        `mapstructure:"learn_more_url" validate:"required,url"`
	Debug        bool          `mapstructure:"debug"`
	LogLevel     string        `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn warning error dpanic fatal TRACE DEBUG INFO WARN WARNING ERROR DPANIC FATAL"`
	LogPath      string        `mapstructure:"log_path"`
	Telemetry    bool          `mapstructure:"telemetry"`
}

// Default is the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		SwapDelay:    cart.DefaultSwapDelay,
		RouteTick:    route.DefaultTick,
		LearnMoreURL: DefaultLearnMoreURL,
		LogLevel:     "info",
	}
}

// New returns a viper instance with defaults, env binding and config file
// search paths set.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeySwapDelay, d.SwapDelay)
	v.SetDefault(KeyRouteTick, d.RouteTick)
	v.SetDefault(KeyLearnMoreURL, d.LearnMoreURL)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogPath, d.LogPath)
	v.SetDefault(KeyTelemetry, d.Telemetry)

	SetViperEnvPrefix(v, EnvPrefix)

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "."+ConfigName))
	}
	return v
}

// SetViperEnvPrefix makes v read PREFIX_KEY environment variables.
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return cart_err.NewValidationError("could not parse "+path, err,
				"Each line of a .env file must be KEY=VALUE")
		}
	}
	return nil
}

// Load reads the optional config file and decodes and validates the result.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, cart_err.NewValidationError("could not read config file", err,
				"Check the YAML syntax of "+ConfigName+".yaml")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, cart_err.NewValidationError("invalid configuration", cerr.Wrap(err, "decode config"))
	}
	if err := verify.Struct(cfg); err != nil {
		return Config{}, cart_err.NewValidationError("invalid configuration", err,
			"Check flags, "+EnvPrefix+"_* environment variables and "+ConfigName+".yaml")
	}
	return cfg, nil
}

type ctxKey struct{}

// WithContext stores cfg on ctx.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config stored on ctx, or Default.
func FromContext(ctx context.Context) Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ctxKey{}).(Config); ok {
			return cfg
		}
	}
	return Default()
}
