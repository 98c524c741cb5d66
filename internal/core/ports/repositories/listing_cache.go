package repositories

import (
	"context"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
)

// ListingCache is a read-through cache for single-listing lookups. A miss is
// reported as (nil, nil); infrastructure failures are returned so callers can
// fall through to the repository instead of failing the read.
type ListingCache interface {
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
	Set(ctx context.Context, listing domain.Listing) error
	Invalidate(ctx context.Context, listingID string) error
}
