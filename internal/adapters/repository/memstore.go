package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/ecoscore/internal/domain/model"
)

// MemoryStore is a mutex-guarded slice of submissions. Writes are serialized;
// reads copy the slice under a read lock so callers see a consistent snapshot.
type MemoryStore struct {
	mu       sync.RWMutex
	items    []model.Submission
	closed   bool
	onAppend func(size int)
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(_ context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append records s. The issue slice is copied so later edits by the caller
// cannot reach stored data.
func (s *MemoryStore) Append(ctx context.Context, sub model.Submission) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("append: %w", err)
	}
	if strings.TrimSpace(string(sub.Rating)) == "" {
		return fmt.Errorf("%w: missing rating", ErrInvalidSubmission)
	}
	sub.Issues = append(make([]string, 0, len(sub.Issues)), sub.Issues...)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.items = append(s.items, sub)
	size := len(s.items)
	s.mu.Unlock()

	if s.onAppend != nil {
		s.onAppend(size)
	}
	return nil
}

// All returns a deep copy of the recorded submissions in insertion order.
func (s *MemoryStore) All(_ context.Context) ([]model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Submission, len(s.items))
	for i, sub := range s.items {
		sub.Issues = append(make([]string, 0, len(sub.Issues)), sub.Issues...)
		out[i] = sub
	}
	return out, nil
}

// Count returns the number of recorded submissions.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close rejects further appends. Recorded data stays readable.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
