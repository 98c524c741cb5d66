package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kassilabs/kassi_backend/internal/apperrors"
	"github.com/kassilabs/kassi_backend/internal/core/domain"
	portsrepo "github.com/kassilabs/kassi_backend/internal/core/ports/repositories"
)

const listingColumns = `listing_id, author_id, category, title, content, good_thru, status, languages, visibility, times_viewed, image_key, created_at, created_by, last_updated_at, last_updated_by`

type PgxListingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxListingRepository creates a new repository for listing data.
func NewPgxListingRepository(pool *pgxpool.Pool) portsrepo.ListingRepositoryFacade {
	return &PgxListingRepository{pool: pool}
}

// Ensure PgxListingRepository implements the facade
var _ portsrepo.ListingRepositoryFacade = (*PgxListingRepository)(nil)

// SaveListing inserts a new listing row.
func (r *PgxListingRepository) SaveListing(ctx context.Context, listing domain.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		listing.ListingID,
		listing.AuthorID,
		listing.Category,
		listing.Title,
		listing.Content,
		listing.GoodThru,
		listing.Status,
		listing.Languages,
		listing.Visibility,
		listing.TimesViewed,
		nullIfEmpty(listing.ImageKey),
		listing.CreatedAt,
		listing.CreatedBy,
		listing.LastUpdatedAt,
		listing.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", listing.ListingID, err)
	}
	return nil
}

// UpdateListing overwrites the mutable fields of a listing row.
func (r *PgxListingRepository) UpdateListing(ctx context.Context, listing domain.Listing) error {
	query := `
		UPDATE listings
		SET category = $2, title = $3, content = $4, good_thru = $5, status = $6,
		    languages = $7, visibility = $8, image_key = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE listing_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		listing.ListingID,
		listing.Category,
		listing.Title,
		listing.Content,
		listing.GoodThru,
		listing.Status,
		listing.Languages,
		listing.Visibility,
		nullIfEmpty(listing.ImageKey),
		listing.LastUpdatedAt,
		listing.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", listing.ListingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteListing removes a listing row. Realization events reference the
// listing by id only and are deliberately left in place.
func (r *PgxListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE listing_id = $1;`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindListingByID retrieves a listing by its ID.
func (r *PgxListingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE listing_id = $1;`
	row := r.pool.QueryRow(ctx, query, listingID)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find listing by ID %s: %w", listingID, err)
	}
	return listing, nil
}

// ListListings retrieves every listing row.
func (r *PgxListingRepository) ListListings(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}
	return listings, nil
}

// IncrementTimesViewed bumps the informational view counter.
func (r *PgxListingRepository) IncrementTimesViewed(ctx context.Context, listingID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE listings SET times_viewed = times_viewed + 1 WHERE listing_id = $1;`, listingID)
	if err != nil {
		return fmt.Errorf("failed to increment view counter for listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CloseListing transitions the listing to closed and records the realization
// event with its comments inside one database transaction. The UPDATE is
// guarded by the open-status precondition, so of two concurrent closers only
// one commits; the loser sees ErrAlreadyClosed and nothing is written.
func (r *PgxListingRepository) CloseListing(ctx context.Context, listingID string, event domain.RealizationEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE listings
		SET status = $2, last_updated_at = $3
		WHERE listing_id = $1 AND status = $4;
	`, listingID, domain.StatusClosed, event.CreatedAt, domain.StatusOpen)
	if err != nil {
		return fmt.Errorf("failed to close listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a lost race from a missing listing.
		var status domain.ListingStatus
		err := tx.QueryRow(ctx, `SELECT status FROM listings WHERE listing_id = $1;`, listingID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check status of listing %s: %w", listingID, err)
		}
		return apperrors.ErrAlreadyClosed
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO kassi_events (event_id, eventable_type, eventable_id, realizer_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, event.EventID, event.EventableType, event.EventableID, event.RealizerID, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert realization event for listing %s: %w", listingID, err)
	}

	for _, comment := range event.Comments {
		_, err = tx.Exec(ctx, `
			INSERT INTO event_comments (comment_id, event_id, author_id, text_content, ordinal, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, comment.CommentID, comment.EventID, comment.AuthorID, comment.TextContent, comment.Ordinal, comment.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert event comment for listing %s: %w", listingID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit close of listing %s: %w", listingID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var imageKey *string
	err := row.Scan(
		&listing.ListingID,
		&listing.AuthorID,
		&listing.Category,
		&listing.Title,
		&listing.Content,
		&listing.GoodThru,
		&listing.Status,
		&listing.Languages,
		&listing.Visibility,
		&listing.TimesViewed,
		&imageKey,
		&listing.CreatedAt,
		&listing.CreatedBy,
		&listing.LastUpdatedAt,
		&listing.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if imageKey != nil {
		listing.ImageKey = *imageKey
	}
	return &listing, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
