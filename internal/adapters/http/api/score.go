package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/ecoscore/internal/domain/model"
	"github.com/okian/ecoscore/pkg/logger"
	"github.com/okian/ecoscore/pkg/metrics"
)

// ScoreDependencies defines what the score handler needs.
type ScoreDependencies interface {
	Score(ctx context.Context, p model.Product) (model.Evaluation, error)
}

// ScoreHandler handles scoring requests.
type ScoreHandler struct {
	deps   ScoreDependencies
	logger logger.Logger
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies, log logger.Logger) *ScoreHandler {
	return &ScoreHandler{deps: deps, logger: log}
}

type scoreResponse struct {
	ProductName         string   `json:"product_name"`
	SustainabilityScore float64  `json:"sustainability_score"`
	Rating              string   `json:"rating"`
	Suggestions         []string `json:"suggestions"`
}

// HandleScore handles POST /score requests.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"

	p, err := decodeProduct(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var missing *missingFieldError
		if errors.As(err, &missing) {
			metrics.RecordValidationFailure("missing_field")
			writeError(w, http.StatusBadRequest, missing.Error())
			return
		}
		metrics.RecordValidationFailure("invalid_body")
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ev, err := h.deps.Score(r.Context(), p)
	if err != nil {
		if isValidation(err) {
			writeError(w, http.StatusBadRequest, msgInvalidFormat)
			return
		}
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}

	suggestions := ev.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		ProductName:         ev.ProductName,
		SustainabilityScore: ev.Score,
		Rating:              string(ev.Rating),
		Suggestions:         suggestions,
	})
}
