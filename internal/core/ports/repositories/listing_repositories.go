package repositories

import (
	"context"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
)

// ListingReader defines read operations for listing data
type ListingReader interface {
	// FindListingByID retrieves a specific listing by its unique identifier.
	FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error)

	// ListListings retrieves every persisted listing. The search engine and
	// the random picker filter the collection in memory.
	ListListings(ctx context.Context) ([]domain.Listing, error)
}

// ListingWriter defines write operations for listing data
type ListingWriter interface {
	// SaveListing persists a new listing row.
	SaveListing(ctx context.Context, listing domain.Listing) error

	// UpdateListing overwrites the mutable fields of an existing listing.
	UpdateListing(ctx context.Context, listing domain.Listing) error

	// DeleteListing removes the listing row.
	DeleteListing(ctx context.Context, listingID string) error

	// IncrementTimesViewed bumps the informational view counter.
	IncrementTimesViewed(ctx context.Context, listingID string) error

	// CloseListing transitions an open listing to closed and records the
	// realization event (with its comments) in a single transaction. The
	// status change is guarded by a compare-and-swap on the open status:
	// a listing that is no longer open yields apperrors.ErrAlreadyClosed,
	// a missing listing apperrors.ErrNotFound, and in either case nothing
	// is written.
	CloseListing(ctx context.Context, listingID string, event domain.RealizationEvent) error
}

// ListingRepositoryFacade combines all listing-related repository interfaces.
type ListingRepositoryFacade interface {
	ListingReader
	ListingWriter
}
