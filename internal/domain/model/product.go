// Package model contains domain models passed between layers.
package model

import "time"

// Rating is an ordinal letter grade; A is best, D is worst.
type Rating string

// Ratings in descending order of quality.
const (
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
)

// Issue tags emitted by the heuristic tagger.
const (
	IssueAirTransport           = "Air transport"
	IssuePlastic                = "Use of plastic"
	IssueNonRecyclablePackaging = "Non-recyclable packaging"
)

// Product is a validated scoring request. Numeric fields are kept as the raw
// values the client sent; coercion happens in the scorer.
type Product struct {
	Name        string
	Materials   []string
	WeightGrams any
	Transport   string
	Packaging   string

	GWP         any
	Cost        any
	Circularity any

	// Optional weight overrides; nil means "use the default".
	WeightGWP         any
	WeightCircularity any
	WeightCost        any
}

// Submission is one recorded scoring result. It is immutable once appended
// to the store.
type Submission struct {
	ID          string
	ProductName string
	Score       float64
	Rating      Rating
	Issues      []string
	CreatedAt   time.Time
}

// Evaluation is the outcome of one scoring request as returned to the caller.
type Evaluation struct {
	ProductName string
	Score       float64
	Rating      Rating
	Issues      []string
	Suggestions []string
}
