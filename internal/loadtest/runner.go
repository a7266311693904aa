package loadtest

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/ecoscore/pkg/logger"
)

const percentageMultiplier = 100

// Run executes the complete load test.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	logger.Get().Info(ctx, "starting ecoscore load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("products", cfg.NumProducts),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.String("fixtures", cfg.FixturesFile))

	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Prepare products
	products, err := prepareProducts(cfg)
	if err != nil {
		return stats, err
	}
	stats.ProductsPrepared = len(products)

	// Step 3: Record the history baseline
	before, err := historyCount(ctx, client)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch history baseline: %w", err)
	}
	stats.HistoryBefore = before

	// Step 4: Submit products concurrently
	submitProducts(ctx, cfg, client, products, stats)

	// Step 5: Verify results
	if err := verifyResults(ctx, client, stats); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "test completed successfully")
	return stats, nil
}

// prepareProducts loads fixtures when configured, otherwise generates products.
func prepareProducts(cfg *Config) ([]Product, error) {
	if cfg.FixturesFile != "" {
		return LoadFixtures(cfg.FixturesFile)
	}
	if cfg.NumProducts < 1 {
		return nil, ErrNoProducts
	}
	return GenerateProducts(cfg.NumProducts), nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	var health struct {
		Status string `json:"status"`
	}
	if err := client.GetJSON(ctx, "/healthz", &health); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, health.Status)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final test statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("prepared", stats.ProductsPrepared),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Any("ratings", stats.Ratings),
		logger.Int("historyBefore", stats.HistoryBefore),
		logger.Int("historyAfter", stats.HistoryAfter),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", perSecond))
}
