// Package repository holds the process-lifetime submission store.
package repository

import (
	"context"

	"github.com/okian/ecoscore/internal/domain/model"
)

// Store is an append-only, ordered record of submissions.
type Store interface {
	// Append adds s to the end of the sequence.
	Append(ctx context.Context, s model.Submission) error

	// All returns a snapshot of every submission, oldest first. The caller
	// owns the returned slice.
	All(ctx context.Context) ([]model.Submission, error)

	// Count returns the number of recorded submissions.
	Count(ctx context.Context) int
}
