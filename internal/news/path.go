package news

import (
	"context"
	"errors"
	"strings"

	"github.com/mxdserver/mxd/internal/dispatch"
	"github.com/mxdserver/mxd/internal/store"
)

// splitPath splits a news path on "/", ignoring leading/trailing
// slashes. An empty or all-slash path splits to no segments, meaning
// root.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// resolveBundlePath walks segments left to right, each one a bundle name
// under the previous segment's bundle id, starting at root (nil). It
// returns the id of the last segment's bundle, or nil if segments is
// empty.
func (s *Service) resolveBundlePath(ctx context.Context, segments []string) (*uint32, error) {
	var parent *uint32
	key := strings.Builder{}
	key.WriteString(bundleCacheKeyPrefix)

	for _, seg := range segments {
		key.WriteByte('/')
		key.WriteString(seg)

		if id, ok := s.cache.get(key.String()); ok {
			parent = &id
			continue
		}

		b, err := s.store.FindBundleByName(ctx, parent, seg)
		if errors.Is(err, store.ErrNotFound) {
			return nil, dispatch.ErrInvalidNewsPath
		}
		if err != nil {
			return nil, err
		}
		id := b.ID
		s.cache.set(key.String(), id)
		parent = &id
	}
	return parent, nil
}

// resolveCategoryPath resolves path's final segment as a category under
// the bundle resolved from every segment before it. An empty path is
// invalid: a category must be named.
func (s *Service) resolveCategoryPath(ctx context.Context, path string) (uint32, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return 0, dispatch.ErrInvalidNewsPath
	}

	bundleSegments, categoryName := segments[:len(segments)-1], segments[len(segments)-1]

	cacheKey := categoryCacheKeyPrefix + path
	if id, ok := s.cache.get(cacheKey); ok {
		return id, nil
	}

	bundleID, err := s.resolveBundlePath(ctx, bundleSegments)
	if err != nil {
		return 0, err
	}

	cat, err := s.store.FindCategoryByName(ctx, bundleID, categoryName)
	if errors.Is(err, store.ErrNotFound) {
		return 0, dispatch.ErrInvalidNewsPath
	}
	if err != nil {
		return 0, err
	}

	s.cache.set(cacheKey, cat.ID)
	return cat.ID, nil
}
