package repository

import "github.com/okian/ecoscore/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacity preallocates room for n submissions.
func WithCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.items = make([]model.Submission, 0, n)
		}
	}
}

// WithOnAppend registers a hook called with the new size after each append,
// outside the store lock.
func WithOnAppend(fn func(size int)) Option {
	return func(s *MemoryStore) {
		s.onAppend = fn
	}
}
