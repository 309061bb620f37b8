// Package config resolves runtime settings from defaults, an optional .env
// file, an optional YAML config file, RATP_* environment variables and bound
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AijingLI-KCLLP/find-path-ratp/preprocessing"
	"github.com/AijingLI-KCLLP/find-path-ratp/routing"
)

const ENV_PREFIX = "RATP"

const (
	KeyListenAddr      = "listen_addr"
	KeyNetworkSource   = "network_source"
	KeySpeedKmh        = "speed_kmh"
	KeyMaxIterations   = "max_iterations"
	KeyLogLevel        = "log_level"
	KeyCORSAllowAll    = "cors_allow_all"
	KeyAccentColor     = "accent_color"
	KeyShutdownTimeout = "shutdown_timeout"
)

type Config struct {
	ListenAddr      string        `mapstructure:"listen_addr" validate:"required"`
	NetworkSource   string        `mapstructure:"network_source" validate:"required"`
	SpeedKmh        float64       `mapstructure:"speed_kmh" validate:"gt=0"`
	MaxIterations   int           `mapstructure:"max_iterations" validate:"gt=0"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	CORSAllowAll    bool          `mapstructure:"cors_allow_all"`
	AccentColor     string        `mapstructure:"accent_color"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// New returns a viper instance carrying the defaults and the RATP_ env binding.
// Callers bind their flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyListenAddr, ":8080")
	v.SetDefault(KeyNetworkSource, preprocessing.EMBEDDED_SOURCE)
	v.SetDefault(KeySpeedKmh, routing.DEFAULT_SPEED_KMH)
	v.SetDefault(KeyMaxIterations, routing.DEFAULT_MAX_ITERATIONS)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyCORSAllowAll, true)
	v.SetDefault(KeyAccentColor, "99")
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)

	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()
	return v
}

// Load reads dotenv (missing file is fine), then configFile when set, and
// returns the validated settings.
func Load(v *viper.Viper, dotenv, configFile string) (*Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// NewLogger builds a production zap logger writing to stderr at level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
