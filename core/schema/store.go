package schema

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadFunc builds a fresh catalog from the configured source.
type LoadFunc func(ctx context.Context) (*Catalog, error)

// Store is a reloadable Schema. Lookups read the most recently loaded catalog and
// never block on a reload in progress.
type Store struct {
	load LoadFunc
	ttl  time.Duration

	mu      sync.RWMutex
	catalog *Catalog
	built   time.Time

	sf singleflight.Group
}

// NewStore creates a store around a load function. A zero ttl means the catalog
// never expires on its own.
func NewStore(load LoadFunc, ttl time.Duration) *Store {
	return &Store{load: load, ttl: ttl}
}

// GetItemByDefindex implements Schema using the current catalog.
func (s *Store) GetItemByDefindex(defindex int) (*ItemMetadata, bool) {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()
	return catalog.GetItemByDefindex(defindex)
}

// Loaded reports whether a catalog is available.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog != nil
}

// Len returns the number of items in the current catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Len()
}

// IsExpired returns true if the catalog is missing or older than the TTL.
func (s *Store) IsExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return true
	}
	if s.ttl == 0 {
		return false
	}
	return time.Since(s.built) > s.ttl
}

// Ensure loads the catalog only when it is missing or expired.
func (s *Store) Ensure(ctx context.Context) (*Catalog, error) {
	if !s.IsExpired() {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.catalog, nil
	}
	return s.Reload(ctx)
}

// Reload rebuilds the catalog. Concurrent callers share a single load.
// On failure the previous catalog stays in place.
func (s *Store) Reload(ctx context.Context) (*Catalog, error) {
	result, err, _ := s.sf.Do("catalog", func() (interface{}, error) {
		catalog, err := s.load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.catalog = catalog
		s.built = time.Now()
		s.mu.Unlock()

		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Catalog), nil
}
