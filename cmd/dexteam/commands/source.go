package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/dexteam/internal/cache"
	"github.com/dyluth/dexteam/internal/config"
	"github.com/dyluth/dexteam/internal/draft"
	"github.com/dyluth/dexteam/internal/pokedb"
	"github.com/dyluth/dexteam/internal/printer"
	"github.com/dyluth/dexteam/pkg/dex"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// catalogSource provides the catalog listing and the evolution oracle,
// either straight from the site or through the Redis cache.
type catalogSource interface {
	FetchCatalog(ctx context.Context) ([]dex.Entity, error)
	draft.RelationOracle
}

// openSource builds the catalog client and, when configured and reachable,
// wraps it in the Redis cache. The returned close function is never nil.
func openSource(ctx context.Context, cfg *config.DexteamConfig, log *zap.Logger) (catalogSource, func(), error) {
	client, err := pokedb.NewClient(cfg.Source.ClientOptions(), log)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.Cache.Enabled() {
		return client, func() {}, nil
	}

	rc, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := rc.Ping(ctx); err != nil {
		log.Warn("Redis cache unreachable, fetching directly", zap.String("redis_url", cfg.Cache.RedisURL), zap.Error(err))
		printer.Warning("Redis cache at %s is unreachable, fetching directly\n", cfg.Cache.RedisURL)
		rc.Close()
		return client, func() {}, nil
	}

	log.Debug("Using Redis cache", zap.String("namespace", rc.Namespace()))
	return cache.NewSource(client, rc, log), func() { rc.Close() }, nil
}

// openCache connects to the configured Redis cache without checking it.
func openCache(cfg *config.DexteamConfig) (*cache.Client, error) {
	opts, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache.redis_url: %w", err)
	}
	return cache.NewClient(opts, cfg.Cache.Namespace, cfg.Cache.TTLDuration())
}
