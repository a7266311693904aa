// Package config defines service configuration structures and loading hooks.
//
// Values are layered defaults -> optional YAML file -> environment, see Load.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// Default weight triple used when a request carries no overrides or
	// when the overrides sum to zero.
	DefaultWeightGWP         float64 `koanf:"default_weight_gwp"`
	DefaultWeightCircularity float64 `koanf:"default_weight_circularity"`
	DefaultWeightCost        float64 `koanf:"default_weight_cost"`

	// SuggestProvider is openai, anthropic or none. Empty auto-detects from
	// the configured API keys.
	SuggestProvider    string  `koanf:"suggest_provider"`
	SuggestModel       string  `koanf:"suggest_model"`
	SuggestTemperature float64 `koanf:"suggest_temperature"`
	SuggestMaxTokens   int     `koanf:"suggest_max_tokens"`
	SuggestTimeoutMS   int     `koanf:"suggest_timeout_ms"`

	OpenAIAPIKey     string `koanf:"openai_api_key"`
	OpenAIBaseURL    string `koanf:"openai_base_url"`
	AnthropicAPIKey  string `koanf:"anthropic_api_key"`
	AnthropicBaseURL string `koanf:"anthropic_base_url"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "text",
		Addr:                     ":5000",
		CORSAllowedOrigins:       []string{"*"},
		DefaultWeightGWP:         0.4,
		DefaultWeightCircularity: 0.4,
		DefaultWeightCost:        0.2,
		SuggestProvider:          "",
		SuggestModel:             "",
		SuggestTemperature:       0.7,
		SuggestMaxTokens:         150,
		SuggestTimeoutMS:         15_000,
	}
}
