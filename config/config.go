package config

import (
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// BreakerConfig carries the circuit knobs as they appear in config.yaml.
// Durations are strings so they can come from environment variables.
type BreakerConfig struct {
	OpenTimeout           string `mapstructure:"open_timeout"`
	HalfOpenTimeout       string `mapstructure:"half_open_timeout"`
	MinFailures           int    `mapstructure:"min_failures"`
	FailureRatioThreshold int    `mapstructure:"failure_ratio_threshold"`
}

// DemoConfig controls the simulated flaky operation and the polling loop.
type DemoConfig struct {
	Interval    string  `mapstructure:"interval"`
	FailureRate float64 `mapstructure:"failure_rate"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Environment string        `mapstructure:"environment"`
	Breaker     BreakerConfig `mapstructure:"breaker"`
	Demo        DemoConfig    `mapstructure:"demo"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

func Load() (*Config, error) {
	viper.SetDefault("environment", EnvDev)
	viper.SetDefault("breaker.open_timeout", "5s")
	viper.SetDefault("breaker.half_open_timeout", "10s")
	viper.SetDefault("breaker.min_failures", 15)
	viper.SetDefault("breaker.failure_ratio_threshold", 50)
	viper.SetDefault("demo.interval", "500ms")
	viper.SetDefault("demo.failure_rate", 0.7)
	viper.SetDefault("logging.level", LogLevelInfo)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment,
			validation.Required,
			validation.In(EnvDev, EnvStaging, EnvProd),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Breaker,
			validation.Required,
			validation.By(func(value interface{}) error {
				bc, ok := value.(BreakerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a BreakerConfig")
				}
				return validation.ValidateStruct(&bc,
					validation.Field(&bc.OpenTimeout,
						validation.Required,
						validation.By(validatePositiveDuration),
					),
					validation.Field(&bc.HalfOpenTimeout,
						validation.Required,
						validation.By(validatePositiveDuration),
					),
					validation.Field(&bc.MinFailures,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&bc.FailureRatioThreshold,
						validation.Required,
						validation.Min(1),
						validation.Max(100),
					),
				)
			}),
		),
		validation.Field(&c.Demo,
			validation.Required,
			validation.By(func(value interface{}) error {
				dc, ok := value.(DemoConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a DemoConfig")
				}
				return validation.ValidateStruct(&dc,
					validation.Field(&dc.Interval,
						validation.Required,
						validation.By(validatePositiveDuration),
					),
					validation.Field(&dc.FailureRate,
						validation.Min(0.0),
						validation.Max(1.0),
					),
				)
			}),
		),
	)
}

func validatePositiveDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 500ms, 5s)")
	}
	if d <= 0 {
		return validation.NewError("validation_nonpositive_duration", "duration must be positive")
	}

	return nil
}
