package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/ecoscore/pkg/logger"
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
	progressInterval        = time.Second
)

// submission outcomes
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a new HTTP client with timeout
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// GetJSON performs a GET request and decodes a 200 response into v.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// PostJSON performs a POST request with a JSON body and returns the status
// and raw response body.
func (c *HTTPClient) PostJSON(ctx context.Context, path string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("POST %s: read body: %w", path, err)
	}
	return resp.StatusCode, data, nil
}

// submitProducts posts products concurrently using a worker pool.
func submitProducts(ctx context.Context, cfg *Config, client *HTTPClient, products []Product, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting products", logger.Int("products", len(products)), logger.Int("workers", cfg.Workers))

	var (
		submitted  int64
		successful int64
		rejected   int64
		failed     int64
		ratingsMu  sync.Mutex
		lastReport atomic.Int64
	)
	ratings := make(map[string]int)

	productChan := make(chan Product, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range productChan {
				outcome, rating := submitSingleProduct(ctx, cfg, client, p)

				atomic.AddInt64(&submitted, 1)
				switch outcome {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
					ratingsMu.Lock()
					ratings[rating]++
					ratingsMu.Unlock()
				case outcomeRejected:
					atomic.AddInt64(&rejected, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}

				now := time.Now().UnixNano()
				last := lastReport.Load()
				if now-last >= int64(progressInterval) && lastReport.CompareAndSwap(last, now) {
					log.Info(ctx, "progress",
						logger.Int("submitted", int(atomic.LoadInt64(&submitted))),
						logger.Int("total", len(products)),
						logger.Int("successful", int(atomic.LoadInt64(&successful))),
						logger.Int("failed", int(atomic.LoadInt64(&failed))))
				}
			}
		}()
	}

	go func() {
		defer close(productChan)
		for _, p := range products {
			select {
			case <-ctx.Done():
				return
			case productChan <- p:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Rejected = int(atomic.LoadInt64(&rejected))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Ratings = ratings

	log.Info(ctx, "submission completed",
		logger.Int("successful", stats.Successful),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed))
}

// submitSingleProduct posts one product and classifies the response.
func submitSingleProduct(ctx context.Context, cfg *Config, client *HTTPClient, p Product) (string, string) {
	status, body, err := client.PostJSON(ctx, "/score", p)
	if err != nil {
		if cfg.Verbose {
			logger.Get().Warn(ctx, "submission failed", logger.String("product", p.ProductName), logger.Error(err))
		}
		return outcomeFailed, ""
	}

	switch {
	case status == http.StatusOK:
		var resp ScoreResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return outcomeFailed, ""
		}
		return outcomeSuccess, resp.Rating
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		if cfg.Verbose {
			logger.Get().Warn(ctx, "submission rejected",
				logger.String("product", p.ProductName),
				logger.Int("status", status),
				logger.String("body", string(body)))
		}
		return outcomeRejected, ""
	default:
		return outcomeFailed, ""
	}
}
