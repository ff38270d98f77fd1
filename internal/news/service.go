// Package news implements the hierarchical news board's path resolution,
// listing, and article read/post operations against the persistence
// layer, producing dispatch.Handler-shaped results.
package news

import (
	"github.com/mxdserver/mxd/internal/store"
)

// Service resolves news paths and serves listing/article operations
// against a Store, with a process-local cache for resolved path
// segments.
type Service struct {
	store store.Store
	cache *pathCache
}

// NewService builds a Service backed by st. It opens an in-memory path
// cache; callers should call Close when done, typically at process
// shutdown.
func NewService(st store.Store) (*Service, error) {
	cache, err := newPathCache()
	if err != nil {
		return nil, err
	}
	return &Service{store: st, cache: cache}, nil
}

// Close releases the path cache's resources.
func (s *Service) Close() error {
	return s.cache.close()
}
