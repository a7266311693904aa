package loadtest

import (
	"context"
	"fmt"

	"github.com/okian/ecoscore/pkg/logger"
)

// historyCount returns the number of submissions the service reports.
func historyCount(ctx context.Context, client *HTTPClient) (int, error) {
	var items []HistoryItem
	if err := client.GetJSON(ctx, "/history", &items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// verifyResults checks that history grew by exactly the successful
// submissions and that the summary agrees with history.
func verifyResults(ctx context.Context, client *HTTPClient, stats *Stats) error {
	logger.Get().Info(ctx, "verifying results")

	after, err := historyCount(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}
	stats.HistoryAfter = after

	if grown := after - stats.HistoryBefore; grown != stats.Successful {
		return fmt.Errorf("%w: history grew by %d, expected %d", ErrVerification, grown, stats.Successful)
	}

	var sum Summary
	if err := client.GetJSON(ctx, "/score-summary", &sum); err != nil {
		return fmt.Errorf("failed to fetch summary: %w", err)
	}
	if after == 0 {
		if sum.Message == "" {
			return fmt.Errorf("%w: empty history but summary has data", ErrVerification)
		}
		return nil
	}
	if sum.TotalProducts != after {
		return fmt.Errorf("%w: summary total_products %d, history has %d", ErrVerification, sum.TotalProducts, after)
	}
	if len(sum.IssueLabels) != len(sum.IssueCounts) {
		return fmt.Errorf("%w: issue_labels and issue_counts differ in length", ErrVerification)
	}
	if sum.AverageScore < 0 || sum.AverageScore > 100 {
		return fmt.Errorf("%w: average_score %.2f out of range", ErrVerification, sum.AverageScore)
	}

	logger.Get().Info(ctx, "verification passed",
		logger.Int("historyAfter", after),
		logger.Float64("averageScore", sum.AverageScore),
		logger.Any("ratings", sum.Ratings))
	return nil
}
