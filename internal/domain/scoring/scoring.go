// Package scoring computes sustainability scores and letter ratings from
// a product's normalized impact figures.
package scoring

import (
	"math"
	"strconv"

	"github.com/okian/ecoscore/internal/domain/model"
)

// Sub-score and range constants.
const (
	maxScoreValue     = 100
	gwpPenaltyFactor  = 10 // points lost per unit of GWP
	costPenaltyFactor = 5  // points lost per unit of cost
	scoreDecimals     = 2
)

// Rating thresholds (inclusive lower bounds).
const (
	thresholdA = 85
	thresholdB = 70
	thresholdC = 50
)

// Weights is the relative importance of the three sub-scores.
type Weights struct {
	GWP         float64
	Circularity float64
	Cost        float64
}

// DefaultWeights returns the built-in weight triple {0.4, 0.4, 0.2}.
func DefaultWeights() Weights {
	return Weights{GWP: 0.4, Circularity: 0.4, Cost: 0.2}
}

// Sum returns the total of the three weights.
func (w Weights) Sum() float64 {
	return w.GWP + w.Circularity + w.Cost
}

// Normalize scales the weights so they sum to 1. A triple summing to zero
// is replaced by fallback first.
func (w Weights) Normalize(fallback Weights) Weights {
	total := w.Sum()
	if total == 0 {
		w = fallback
		total = w.Sum()
	}
	return Weights{
		GWP:         w.GWP / total,
		Circularity: w.Circularity / total,
		Cost:        w.Cost / total,
	}
}

// Breakdown holds the intermediate values of a score computation.
type Breakdown struct {
	Weights          Weights // normalized
	GWPScore         float64
	CircularityScore float64
	CostScore        float64
	Score            float64 // clamped to [0, 100], two decimals
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithDefaultWeights replaces the default weight triple. Triples with a
// negative member or a zero sum are ignored.
func WithDefaultWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.GWP < 0 || w.Circularity < 0 || w.Cost < 0 || w.Sum() == 0 {
			return
		}
		s.defaults = w
	}
}

// Scorer maps a product to a 0-100 sustainability score. It is stateless
// after construction and safe for concurrent use.
type Scorer struct {
	defaults Weights
}

// NewScorer creates a Scorer with the built-in defaults unless overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{defaults: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the weight triple used when a request carries no overrides.
func (s *Scorer) Defaults() Weights {
	return s.defaults
}

// ResolveWeights picks each weight from the product's override when present,
// otherwise from the defaults. The result is not normalized.
func (s *Scorer) ResolveWeights(p model.Product) (Weights, error) {
	w := s.defaults
	var err error
	if p.WeightGWP != nil {
		if w.GWP, err = ToFloat(p.WeightGWP); err != nil {
			return Weights{}, err
		}
	}
	if p.WeightCircularity != nil {
		if w.Circularity, err = ToFloat(p.WeightCircularity); err != nil {
			return Weights{}, err
		}
	}
	if p.WeightCost != nil {
		if w.Cost, err = ToFloat(p.WeightCost); err != nil {
			return Weights{}, err
		}
	}
	return w, nil
}

// Score computes the weighted sustainability score for p.
// It returns ErrInvalidNumericFormat when gwp, circularity, cost or a weight
// override cannot be read as a number.
func (s *Scorer) Score(p model.Product) (Breakdown, error) {
	gwp, err := ToFloat(p.GWP)
	if err != nil {
		return Breakdown{}, err
	}
	circularity, err := ToFloat(p.Circularity)
	if err != nil {
		return Breakdown{}, err
	}
	cost, err := ToFloat(p.Cost)
	if err != nil {
		return Breakdown{}, err
	}

	raw, err := s.ResolveWeights(p)
	if err != nil {
		return Breakdown{}, err
	}
	w := raw.Normalize(s.defaults)

	b := Breakdown{
		Weights:          w,
		GWPScore:         math.Max(0, maxScoreValue-gwp*gwpPenaltyFactor),
		CircularityScore: circularity, // caller supplies it on a 0-100 scale
		CostScore:        math.Max(0, maxScoreValue-cost*costPenaltyFactor),
	}
	final := w.GWP*b.GWPScore + w.Circularity*b.CircularityScore + w.Cost*b.CostScore
	b.Score = Round2(math.Max(0, math.Min(final, maxScoreValue)))
	return b, nil
}

// ComputeScore scores p with the built-in default weights.
func ComputeScore(p model.Product) (float64, error) {
	b, err := defaultScorer.Score(p)
	if err != nil {
		return 0, err
	}
	return b.Score, nil
}

var defaultScorer = NewScorer()

// AssignRating maps a score to its letter grade.
func AssignRating(score float64) model.Rating {
	switch {
	case score >= thresholdA:
		return model.RatingA
	case score >= thresholdB:
		return model.RatingB
	case score >= thresholdC:
		return model.RatingC
	default:
		return model.RatingD
	}
}

// Round2 rounds x to two decimal places. Ties go to the even digit and are
// judged on the exact binary value, so 2.675 (stored as 2.67499...) gives 2.67.
func Round2(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', scoreDecimals, 64), 64)
	if err != nil {
		return x
	}
	return v
}
