// Package suggest generates free-text sustainability suggestions through an
// external text-generation service.
package suggest

import (
	"context"
	"errors"
)

// Sentinel kinds for suggestion errors.
var (
	ErrExternalService = errors.New("suggestion service failed")
	ErrNotConfigured   = errors.New("suggestion provider not configured")
	ErrEmptyResponse   = errors.New("suggestion service returned no content")
)

// Settings configures one generation request.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider generates text from a system and user prompt.
type Provider interface {
	Generate(ctx context.Context, system, user string, settings Settings) (string, error)
	Name() string
}

// Disabled is the provider used when no API key is configured. Every call
// fails with ErrNotConfigured.
type Disabled struct{}

func (Disabled) Name() string { return "none" }

func (Disabled) Generate(context.Context, string, string, Settings) (string, error) {
	return "", ErrNotConfigured
}
