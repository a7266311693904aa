package api

import (
	"context"
	"net/http"

	"github.com/okian/ecoscore/internal/domain/summary"
	"github.com/okian/ecoscore/pkg/logger"
)

// SummaryDependencies defines what the summary handler needs.
type SummaryDependencies interface {
	Summary(ctx context.Context) (summary.Summary, bool, error)
}

// SummaryHandler handles aggregate statistics requests.
type SummaryHandler struct {
	deps   SummaryDependencies
	logger logger.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies, log logger.Logger) *SummaryHandler {
	return &SummaryHandler{deps: deps, logger: log}
}

type summaryResponse struct {
	TotalProducts int            `json:"total_products"`
	AverageScore  float64        `json:"average_score"`
	Ratings       map[string]int `json:"ratings"`
	IssueLabels   []string       `json:"issue_labels"`
	IssueCounts   []int          `json:"issue_counts"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleSummary handles GET /score-summary requests.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_summary"

	sum, ok, err := h.deps.Summary(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, messageResponse{Message: "No data yet"})
		return
	}

	ratings := make(map[string]int, len(sum.Ratings))
	for k, v := range sum.Ratings {
		ratings[string(k)] = v
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		TotalProducts: sum.TotalProducts,
		AverageScore:  sum.AverageScore,
		Ratings:       ratings,
		IssueLabels:   sum.IssueLabels,
		IssueCounts:   sum.IssueCounts,
	})
}
