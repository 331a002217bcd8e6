package county

import (
	"context"
	"sync"
)

// Store caches a loaded Set behind a load-once gate. The first Get triggers
// the load; later calls return the cached set. A failed load is returned to
// the caller but never cached, so the next Get retries from scratch.
type Store struct {
	load func(ctx context.Context) (*Set, error)

	mu  sync.Mutex
	set *Set
}

// NewStore builds a Store around a load function, typically a Loader.Load
// closure over the configured file paths.
func NewStore(load func(ctx context.Context) (*Set, error)) *Store {
	return &Store{load: load}
}

// Get returns the county set, loading it on first use.
func (s *Store) Get(ctx context.Context) (*Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set != nil {
		return s.set, nil
	}
	set, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.set = set
	return set, nil
}

// CheckReadiness reports whether the county dataset is available, loading it
// if necessary. Satisfies the HTTP server's readiness interface.
func (s *Store) CheckReadiness(ctx context.Context) error {
	_, err := s.Get(ctx)
	return err
}
