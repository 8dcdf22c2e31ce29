// Package cache keeps fetched catalog data in Redis so repeated drafts do
// not hit the catalog site for pages that rarely change.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dyluth/dexteam/pkg/dex"
	"github.com/redis/go-redis/v9"
)

// noRelations marks a cached, empty relation set. Catalog numbers start at 1.
const noRelations = "0"

// Client provides namespaced Redis operations for cached catalog data.
// The client is safe for concurrent use.
type Client struct {
	rdb       *redis.Client
	namespace string
	ttl       time.Duration
}

// NewClient creates a cache client. A zero ttl keeps entries forever.
// Returns an error if namespace is empty or ttl is negative.
func NewClient(redisOpts *redis.Options, namespace string, ttl time.Duration) (*Client, error) {
	if namespace == "" {
		return nil, fmt.Errorf("cache namespace cannot be empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("cache ttl must be >= 0, got %s", ttl)
	}

	return &Client{
		rdb:       redis.NewClient(redisOpts),
		namespace: namespace,
		ttl:       ttl,
	}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Namespace returns the key namespace of this client.
func (c *Client) Namespace() string {
	return c.namespace
}

// GetCatalog returns the cached catalog.
// Returns (nil, redis.Nil) if nothing is cached; use IsNotFound to check.
func (c *Client) GetCatalog(ctx context.Context) ([]dex.Entity, error) {
	data, err := c.rdb.Get(ctx, CatalogKey(c.namespace)).Bytes()
	if err != nil {
		if IsNotFound(err) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("failed to read catalog from Redis: %w", err)
	}

	var entities []dex.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("failed to decode cached catalog: %w", err)
	}
	return entities, nil
}

// PutCatalog stores the catalog, replacing any previous copy.
func (c *Client) PutCatalog(ctx context.Context, entities []dex.Entity) error {
	data, err := json.Marshal(entities)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := c.rdb.Set(ctx, CatalogKey(c.namespace), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog to Redis: %w", err)
	}
	return nil
}

// GetRelated returns the cached relation set for a catalog number.
// Returns (nil, redis.Nil) if nothing is cached; use IsNotFound to check.
func (c *Client) GetRelated(ctx context.Context, number int) (map[int]struct{}, error) {
	members, err := c.rdb.SMembers(ctx, RelatedKey(c.namespace, number)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read relations from Redis: %w", err)
	}

	// SMEMBERS returns an empty slice for non-existent keys
	if len(members) == 0 {
		return nil, redis.Nil
	}

	related := make(map[int]struct{}, len(members))
	for _, m := range members {
		if m == noRelations {
			continue
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("invalid cached relation %q for #%d: %w", m, number, err)
		}
		related[n] = struct{}{}
	}
	return related, nil
}

// PutRelated stores the relation set for a catalog number, replacing any
// previous set. Empty sets are cached too.
func (c *Client) PutRelated(ctx context.Context, number int, related map[int]struct{}) error {
	key := RelatedKey(c.namespace, number)

	members := make([]any, 0, len(related))
	for n := range related {
		members = append(members, strconv.Itoa(n))
	}
	if len(members) == 0 {
		members = append(members, noRelations)
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SAdd(ctx, key, members...)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write relations to Redis: %w", err)
	}
	return nil
}

// Clear deletes every key in the namespace and returns how many were removed.
func (c *Client) Clear(ctx context.Context) (int, error) {
	var removed int
	iter := c.rdb.Scan(ctx, 0, NamespacePattern(c.namespace), 100).Iterator()

	for iter.Next(ctx) {
		n, err := c.rdb.Del(ctx, iter.Val()).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		removed += int(n)
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan namespace %s: %w", c.namespace, err)
	}

	return removed, nil
}

// IsNotFound checks if an error indicates a cache miss.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
