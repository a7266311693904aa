// Package loadtest drives a running scoring service with concurrent
// submissions and verifies the history and summary views afterwards.
package loadtest

import "time"

// Config holds configuration for a load test run
type Config struct {
	BaseURL      string        // Base URL of the service
	NumProducts  int           // Number of products to generate when no fixtures are given
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	FixturesFile string        // Optional YAML file with products to submit
	Verbose      bool          // Log every failed submission
}

// Product is the POST /score request body.
type Product struct {
	ProductName       string   `json:"product_name" yaml:"product_name"`
	Materials         []string `json:"materials" yaml:"materials"`
	WeightGrams       float64  `json:"weight_grams" yaml:"weight_grams"`
	Transport         string   `json:"transport" yaml:"transport"`
	Packaging         string   `json:"packaging" yaml:"packaging"`
	GWP               float64  `json:"gwp" yaml:"gwp"`
	Cost              float64  `json:"cost" yaml:"cost"`
	Circularity       float64  `json:"circularity" yaml:"circularity"`
	WeightGWP         *float64 `json:"weight_gwp,omitempty" yaml:"weight_gwp,omitempty"`
	WeightCircularity *float64 `json:"weight_circularity,omitempty" yaml:"weight_circularity,omitempty"`
	WeightCost        *float64 `json:"weight_cost,omitempty" yaml:"weight_cost,omitempty"`
}

// ScoreResponse is the POST /score success body.
type ScoreResponse struct {
	ProductName         string   `json:"product_name"`
	SustainabilityScore float64  `json:"sustainability_score"`
	Rating              string   `json:"rating"`
	Suggestions         []string `json:"suggestions"`
}

// HistoryItem is one GET /history entry.
type HistoryItem struct {
	ProductName string   `json:"product_name"`
	Score       float64  `json:"score"`
	Rating      string   `json:"rating"`
	Issues      []string `json:"issues"`
}

// Summary is the GET /score-summary body. Message is set when the service
// has no data yet.
type Summary struct {
	Message       string         `json:"message"`
	TotalProducts int            `json:"total_products"`
	AverageScore  float64        `json:"average_score"`
	Ratings       map[string]int `json:"ratings"`
	IssueLabels   []string       `json:"issue_labels"`
	IssueCounts   []int          `json:"issue_counts"`
}

// Stats holds test statistics
type Stats struct {
	ProductsPrepared int
	Submitted        int
	Successful       int
	Rejected         int // 4xx responses
	Failed           int // transport errors and 5xx responses
	Ratings          map[string]int
	HistoryBefore    int
	HistoryAfter     int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
