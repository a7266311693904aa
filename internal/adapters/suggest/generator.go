package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/ecoscore/internal/domain/model"
)

// Placeholder is returned to clients whenever suggestions are unavailable.
const Placeholder = "Unable to generate suggestions at this time."

const systemPrompt = "You are a sustainability expert. Given product attributes such as materials used, " +
	"transport method, packaging, global warming potential (GWP), cost, and circularity, " +
	"give 2-3 actionable suggestions to make the product more environmentally sustainable. " +
	"Avoid repeating general phrases. Base suggestions on concrete facts like material impact, " +
	"transport emissions, etc."

// bulletChars are trimmed from both ends of every output line.
const bulletChars = "-• "

// Result is the outcome of one suggestion call: either a list of
// suggestions (Err == nil) or the reason it failed.
type Result struct {
	Suggestions []string
	Err         error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Generator renders the product prompt and asks a Provider for suggestions.
type Generator struct {
	provider Provider
	settings Settings
	timeout  time.Duration
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSettings sets model, temperature and token limit.
func WithSettings(s Settings) GeneratorOption {
	return func(g *Generator) { g.settings = s }
}

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d >= 0 {
			g.timeout = d
		}
	}
}

// NewGenerator creates a Generator over p. A nil provider behaves as Disabled.
func NewGenerator(p Provider, opts ...GeneratorOption) *Generator {
	if p == nil {
		p = Disabled{}
	}
	g := &Generator{
		provider: p,
		settings: Settings{Temperature: 0.7, MaxTokens: 150},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProviderName returns the name of the underlying provider.
func (g *Generator) ProviderName() string { return g.provider.Name() }

// Suggest asks the provider for suggestions about p. It never panics or
// returns a bare error; failures are carried in Result.Err.
func (g *Generator) Suggest(ctx context.Context, p model.Product) Result {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.provider.Generate(ctx, systemPrompt, Describe(p), g.settings)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Suggestions: ParseLines(out)}
}

// Describe renders the user prompt for p.
func Describe(p model.Product) string {
	name := p.Name
	if name == "" {
		name = "Unknown"
	}
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "Product: %s\n", name)
	fmt.Fprintf(&b, "Materials: %s\n", strings.Join(p.Materials, ", "))
	fmt.Fprintf(&b, "Weight (g): %s\n", valueOr(p.WeightGrams, "0"))
	fmt.Fprintf(&b, "Transport: %s\n", textOr(p.Transport, "unknown"))
	fmt.Fprintf(&b, "Packaging: %s\n", textOr(p.Packaging, "unknown"))
	fmt.Fprintf(&b, "GWP: %s\n", valueOr(p.GWP, "unknown"))
	fmt.Fprintf(&b, "Cost: %s\n", valueOr(p.Cost, "unknown"))
	fmt.Fprintf(&b, "Circularity: %s\n", valueOr(p.Circularity, "unknown"))
	return b.String()
}

// ParseLines splits model output into suggestions: one per non-blank line,
// with leading and trailing bullet characters removed.
func ParseLines(out string) []string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	suggestions := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s := strings.TrimSpace(strings.Trim(line, bulletChars))
		if s == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

func valueOr(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	return fmt.Sprint(v)
}

func textOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
