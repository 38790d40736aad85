// Package config holds the service configuration: defaults come from
// struct tags, values from FLOW_MANAGER_* environment variables, and
// the result is validated before use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Addr is the listen address of the HTTP API.
	Addr string `default:":8080" validate:"required,hostname_port"`

	// MaxSteps is the cycle-guard limit for a single execution.
	MaxSteps int `default:"100" validate:"gte=1,lte=100000"`

	// StepTimeoutMS is the per-task-invocation deadline in milliseconds.
	StepTimeoutMS int `default:"30000" validate:"gte=100"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `default:"text" validate:"oneof=text json"`

	// FetchSourceURL, when set, makes the sample fetch task read its
	// records from this endpoint instead of the built-in dataset.
	FetchSourceURL string `validate:"omitempty,url"`

	// FetchFailureRate injects random fetch failures, 0..1. Zero keeps
	// the sample tasks deterministic.
	FetchFailureRate float64 `default:"0" validate:"gte=0,lte=1"`
}

// StepTimeout returns the per-step deadline as a duration.
func (c *Config) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutMS) * time.Millisecond
}

var validate = validator.New()

// Load builds the configuration: defaults, then environment overrides,
// then validation. It fails rather than run with an invalid value.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if v, ok := os.LookupEnv("FLOW_MANAGER_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("FLOW_MANAGER_MAX_STEPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FLOW_MANAGER_MAX_STEPS %q: %w", v, err)
		}
		cfg.MaxSteps = n
	}
	if v, ok := os.LookupEnv("FLOW_MANAGER_STEP_TIMEOUT_MS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FLOW_MANAGER_STEP_TIMEOUT_MS %q: %w", v, err)
		}
		cfg.StepTimeoutMS = n
	}
	if v, ok := os.LookupEnv("FLOW_MANAGER_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("FLOW_MANAGER_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv("FLOW_MANAGER_FETCH_SOURCE_URL"); ok {
		cfg.FetchSourceURL = v
	}
	if v, ok := os.LookupEnv("FLOW_MANAGER_FETCH_FAILURE_RATE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FLOW_MANAGER_FETCH_FAILURE_RATE %q: %w", v, err)
		}
		cfg.FetchFailureRate = f
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
