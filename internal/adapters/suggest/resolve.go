package suggest

import (
	"fmt"
	"net/http"
	"strings"
)

// ProviderConfig selects and configures a provider.
type ProviderConfig struct {
	// Name is openai, anthropic or none. Empty picks the first provider with
	// a key, preferring OpenAI.
	Name             string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	AnthropicAPIKey  string
	AnthropicBaseURL string
	Client           *http.Client
}

// Resolve builds the provider described by cfg. With no explicit name and
// no key it returns Disabled.
func Resolve(cfg ProviderConfig) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Client)
	case "anthropic":
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.Client)
	case "none":
		return Disabled{}, nil
	case "":
		// auto-detect below
	default:
		return nil, fmt.Errorf("unknown suggestion provider %q", cfg.Name)
	}

	if cfg.OpenAIAPIKey != "" {
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Client)
	}
	if cfg.AnthropicAPIKey != "" {
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.Client)
	}
	return Disabled{}, nil
}
