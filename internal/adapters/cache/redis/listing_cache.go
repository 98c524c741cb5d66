// Package redis caches single-listing lookups. The cache is advisory: the
// service treats every failure here as a miss and reads through to Postgres.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
	portsrepo "github.com/kassilabs/kassi_backend/internal/core/ports/repositories"
)

const keyPrefix = "listing:"

type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache connects to Redis and verifies the connection.
func NewListingCache(ctx context.Context, addr, password string, ttl time.Duration) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &ListingCache{client: client, ttl: ttl}, nil
}

var _ portsrepo.ListingCache = (*ListingCache)(nil)

// Get returns the cached listing, or (nil, nil) on a miss.
func (c *ListingCache) Get(ctx context.Context, listingID string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, keyPrefix+listingID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Set stores the listing under its id with the configured TTL.
func (c *ListingCache) Set(ctx context.Context, listing domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+listing.ListingID, data, c.ttl).Err()
}

// Invalidate drops the cached entry for the listing.
func (c *ListingCache) Invalidate(ctx context.Context, listingID string) error {
	return c.client.Del(ctx, keyPrefix+listingID).Err()
}
