package cache

import (
	"context"

	"github.com/dyluth/dexteam/pkg/dex"
	"go.uber.org/zap"
)

// Upstream is the uncached data source, normally a *pokedb.Client.
type Upstream interface {
	FetchCatalog(ctx context.Context) ([]dex.Entity, error)
	RelatedIDs(ctx context.Context, e dex.Entity) (map[int]struct{}, error)
}

// Source serves catalog and relation data from Redis, falling back to the
// upstream on a miss and storing what it fetched. Redis failures are logged
// and bypassed; upstream failures are returned.
type Source struct {
	upstream Upstream
	cache    *Client
	logger   *zap.Logger
}

// NewSource wraps upstream with cache.
func NewSource(upstream Upstream, cache *Client, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{upstream: upstream, cache: cache, logger: logger}
}

// FetchCatalog returns the cached catalog or fetches and caches it.
func (s *Source) FetchCatalog(ctx context.Context) ([]dex.Entity, error) {
	entities, err := s.cache.GetCatalog(ctx)
	switch {
	case err == nil:
		s.logger.Debug("Catalog cache hit", zap.Int("entities", len(entities)))
		return entities, nil
	case !IsNotFound(err):
		s.logger.Warn("Catalog cache unavailable", zap.Error(err))
	}

	entities, err = s.upstream.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.PutCatalog(ctx, entities); err != nil {
		s.logger.Warn("Failed to cache catalog", zap.Error(err))
	}
	return entities, nil
}

// RelatedIDs returns the cached relation set or fetches and caches it.
func (s *Source) RelatedIDs(ctx context.Context, e dex.Entity) (map[int]struct{}, error) {
	related, err := s.cache.GetRelated(ctx, e.Number)
	switch {
	case err == nil:
		return related, nil
	case !IsNotFound(err):
		s.logger.Warn("Relation cache unavailable", zap.Int("number", e.Number), zap.Error(err))
	}

	related, err = s.upstream.RelatedIDs(ctx, e)
	if err != nil {
		return nil, err
	}

	if err := s.cache.PutRelated(ctx, e.Number, related); err != nil {
		s.logger.Warn("Failed to cache relations", zap.Int("number", e.Number), zap.Error(err))
	}
	return related, nil
}
