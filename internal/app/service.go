// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/okian/ecoscore/internal/adapters/repository"
	"github.com/okian/ecoscore/internal/adapters/suggest"
	"github.com/okian/ecoscore/internal/domain/issues"
	"github.com/okian/ecoscore/internal/domain/model"
	"github.com/okian/ecoscore/internal/domain/scoring"
	"github.com/okian/ecoscore/internal/domain/summary"
	"github.com/okian/ecoscore/pkg/logger"
	"github.com/okian/ecoscore/pkg/metrics"
)

// Suggester produces free-text suggestions for a product.
type Suggester interface {
	Suggest(ctx context.Context, p model.Product) suggest.Result
	ProviderName() string
}

// Service scores products, records submissions and serves aggregate views.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	scorer    *scoring.Scorer
	suggester Suggester

	// Configuration
	defaultWeights scoring.Weights
	now            func() time.Time
	newID          func() string

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory submission store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSuggester sets the suggestion generator.
func WithSuggester(sg Suggester) Option {
	return func(s *Service) {
		if sg != nil {
			s.suggester = sg
		}
	}
}

// WithDefaultWeights sets the weight triple used without request overrides.
func WithDefaultWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.defaultWeights = w
	}
}

// WithClock overrides the time source used for submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultWeights: scoring.DefaultWeights(),
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components that were not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scoring service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx, repository.WithOnAppend(metrics.UpdateStoreSize))
		s.logger.Info(ctx, "using in-memory submission store")
	}
	if s.suggester == nil {
		s.suggester = suggest.NewGenerator(suggest.Disabled{})
	}
	s.scorer = scoring.NewScorer(scoring.WithDefaultWeights(s.defaultWeights))

	s.started = true
	s.startedAt = s.now()
	d := s.scorer.Defaults()
	s.logger.Info(ctx, "scoring service started",
		logger.String("suggestionProvider", s.suggester.ProviderName()),
		logger.Float64("weightGWP", d.GWP),
		logger.Float64("weightCircularity", d.Circularity),
		logger.Float64("weightCost", d.Cost),
	)
	return nil
}

// Stop marks the service stopped and closes the store when it supports it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping scoring service...")

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// components returns the running components, or ErrNotStarted.
func (s *Service) components() (repository.Store, *scoring.Scorer, Suggester, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.store, s.scorer, s.suggester, nil
}

// Score evaluates p, records the submission and returns the evaluation.
// Invalid numeric input returns scoring.ErrInvalidNumericFormat and records
// nothing. Suggestion failures never fail the request.
func (s *Service) Score(ctx context.Context, p model.Product) (model.Evaluation, error) {
	store, scorer, suggester, err := s.components()
	if err != nil {
		return model.Evaluation{}, err
	}

	b, err := scorer.Score(p)
	if err != nil {
		metrics.RecordValidationFailure("invalid_numeric_format")
		s.logger.Debug(ctx, "rejected product", logger.String("product", p.Name), logger.Error(err))
		return model.Evaluation{}, err
	}
	rating := scoring.AssignRating(b.Score)
	tags := issues.Tag(p)

	// Runs before the append so the store lock is never held across the call.
	suggestions := s.suggestions(ctx, suggester, p)

	sub := model.Submission{
		ID:          s.newID(),
		ProductName: p.Name,
		Score:       b.Score,
		Rating:      rating,
		Issues:      tags,
		CreatedAt:   s.now(),
	}
	// A client that disconnects during the suggestion call still gets its
	// submission recorded.
	if err := store.Append(context.WithoutCancel(ctx), sub); err != nil {
		return model.Evaluation{}, fmt.Errorf("record submission: %w", err)
	}
	metrics.RecordSubmission(string(rating), b.Score, tags)

	s.logger.Debug(ctx, "recorded submission",
		logger.String("id", sub.ID),
		logger.String("product", sub.ProductName),
		logger.Float64("score", sub.Score),
		logger.String("rating", string(sub.Rating)),
		logger.Any("issues", sub.Issues),
	)

	return model.Evaluation{
		ProductName: p.Name,
		Score:       b.Score,
		Rating:      rating,
		Issues:      tags,
		Suggestions: suggestions,
	}, nil
}

// suggestions calls the generator and substitutes the placeholder on failure.
func (s *Service) suggestions(ctx context.Context, sg Suggester, p model.Product) []string {
	start := time.Now()
	res := sg.Suggest(ctx, p)
	metrics.RecordSuggestion(sg.ProviderName(), time.Since(start).Seconds(), res.OK())

	if !res.OK() {
		s.logger.Warn(ctx, "suggestion generation failed; using placeholder",
			logger.String("provider", sg.ProviderName()),
			logger.String("product", p.Name),
			logger.Error(res.Err),
		)
		return []string{suggest.Placeholder}
	}
	if res.Suggestions == nil {
		return []string{}
	}
	return res.Suggestions
}

// History returns every recorded submission, oldest first.
func (s *Service) History(ctx context.Context) ([]model.Submission, error) {
	store, _, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.All(ctx)
}

// Summary aggregates the recorded submissions. The boolean is false when
// nothing has been recorded yet.
func (s *Service) Summary(ctx context.Context) (summary.Summary, bool, error) {
	subs, err := s.History(ctx)
	if err != nil {
		return summary.Summary{}, false, err
	}
	sum, ok := summary.Summarize(subs)
	return sum, ok, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		count := s.store.Count(context.Background())
		stats["submissions"] = count
		stats["suggestionProvider"] = s.suggester.ProviderName()
		stats["uptimeSeconds"] = int(s.now().Sub(s.startedAt).Seconds())
		metrics.UpdateStoreSize(count)
	}
	return stats
}
