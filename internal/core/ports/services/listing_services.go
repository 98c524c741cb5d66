package services

import (
	"context"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
	"github.com/kassilabs/kassi_backend/internal/dto"
)

// ListingReaderSvc defines read operations for listing data
type ListingReaderSvc interface {
	// GetListingByID retrieves a specific listing by its ID.
	GetListingByID(ctx context.Context, listingID string) (*domain.Listing, error)

	// ShowListing retrieves a listing for display and increments its view
	// counter.
	ShowListing(ctx context.Context, listingID string) (*domain.Listing, error)

	// ListListings retrieves every listing.
	ListListings(ctx context.Context) ([]domain.Listing, error)

	// SearchListings runs the free-text/wildcard search with the open-only
	// and category filters applied conjunctively.
	SearchListings(ctx context.Context, query string, onlyOpen bool, category domain.Category) ([]domain.Listing, error)

	// PickRandomListing selects one open, publicly visible listing uniformly
	// at random, or apperrors.ErrNoEligibleListing when none qualifies.
	PickRandomListing(ctx context.Context) (*domain.Listing, error)

	// GetRealizationEvent retrieves the event recorded when the listing was
	// closed, or apperrors.ErrNotFound while the listing is still open.
	GetRealizationEvent(ctx context.Context, listingID string) (*domain.RealizationEvent, error)

	// ListCommentsForAuthor retrieves the realization-event comments attached
	// to listings the person authored.
	ListCommentsForAuthor(ctx context.Context, authorID string) ([]domain.Comment, error)
}

// ListingWriterSvc defines write operations for listing data
type ListingWriterSvc interface {
	// CreateListing validates the draft and persists it with its optional
	// attachment as one unit: a rejected attachment leaves no row, a failed
	// attachment write rolls the row back.
	CreateListing(ctx context.Context, authorID string, req dto.CreateListingRequest, attachment *dto.Attachment) (*domain.Listing, error)

	// UpdateListing applies an author-only patch and re-validates the merged
	// result.
	UpdateListing(ctx context.Context, listingID string, authorID string, req dto.UpdateListingRequest) (*domain.Listing, error)

	// DeleteListing removes the listing (author-only) and attempts deletion
	// of its stored attachment. Attachment cleanup failure is surfaced as a
	// wrapped apperrors.ErrAttachmentCleanup after the row is gone.
	DeleteListing(ctx context.Context, listingID string, authorID string) error

	// CloseListing atomically transitions an open listing to closed and
	// records the realization event, with the supplied comment (if any) as
	// the event's first comment authored by the acting person.
	CloseListing(ctx context.Context, listingID string, actingPersonID string, req dto.CloseListingRequest) (*domain.RealizationEvent, error)
}

// ListingAuthorizerSvc decides who may close a listing. Kept as an explicit
// predicate so delegated closers can be granted without touching the service.
type ListingAuthorizerSvc interface {
	// MayClose returns nil when the actor is allowed to close the listing,
	// apperrors.ErrNotAuthorized otherwise.
	MayClose(ctx context.Context, actorID string, listing domain.Listing) error
}

// ListingSvcFacade combines all listing-related service interfaces.
type ListingSvcFacade interface {
	ListingReaderSvc
	ListingWriterSvc
}
