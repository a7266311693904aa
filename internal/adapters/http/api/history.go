package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/ecoscore/internal/domain/model"
	"github.com/okian/ecoscore/pkg/logger"
)

// HistoryDependencies defines what the history handler needs.
type HistoryDependencies interface {
	History(ctx context.Context) ([]model.Submission, error)
}

// HistoryHandler handles history requests.
type HistoryHandler struct {
	deps   HistoryDependencies
	logger logger.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies, log logger.Logger) *HistoryHandler {
	return &HistoryHandler{deps: deps, logger: log}
}

type historyItem struct {
	ID          string     `json:"id,omitempty"`
	ProductName string     `json:"product_name"`
	Score       float64    `json:"score"`
	Rating      string     `json:"rating"`
	Issues      []string   `json:"issues"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// HandleHistory handles GET /history requests. ?verbose=true adds the
// submission id and timestamp.
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.history"

	verbose, _ := strconv.ParseBool(r.URL.Query().Get("verbose"))

	subs, err := h.deps.History(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}

	items := make([]historyItem, 0, len(subs))
	for i := range subs {
		s := &subs[i]
		item := historyItem{
			ProductName: s.ProductName,
			Score:       s.Score,
			Rating:      string(s.Rating),
			Issues:      s.Issues,
		}
		if item.Issues == nil {
			item.Issues = []string{}
		}
		if verbose {
			created := s.CreatedAt
			item.ID = s.ID
			item.CreatedAt = &created
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}
