package repositories

import (
	"context"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
)

// EventReader defines read operations for realization events. Events are
// written exclusively by ListingWriter.CloseListing, inside the same
// transaction as the status transition, so no writer interface exists here.
type EventReader interface {
	// FindEventByListingID retrieves the realization event recorded for a
	// listing, with its comments in order.
	FindEventByListingID(ctx context.Context, listingID string) (*domain.RealizationEvent, error)

	// ListCommentsForAuthor retrieves, in creation order, the comments on
	// realization events whose listings the given person authored.
	ListCommentsForAuthor(ctx context.Context, authorID string) ([]domain.Comment, error)
}
