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

type PgxEventRepository struct {
	pool *pgxpool.Pool
}

// NewPgxEventRepository creates a new read-side repository for realization
// events. Writes happen in PgxListingRepository.CloseListing, inside the same
// transaction as the status transition.
func NewPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventReader {
	return &PgxEventRepository{pool: pool}
}

var _ portsrepo.EventReader = (*PgxEventRepository)(nil)

// FindEventByListingID retrieves the realization event recorded for a listing
// together with its comments in order.
func (r *PgxEventRepository) FindEventByListingID(ctx context.Context, listingID string) (*domain.RealizationEvent, error) {
	var event domain.RealizationEvent
	err := r.pool.QueryRow(ctx, `
		SELECT event_id, eventable_type, eventable_id, realizer_id, created_at
		FROM kassi_events
		WHERE eventable_type = $1 AND eventable_id = $2;
	`, domain.EventableTypeListing, listingID).Scan(
		&event.EventID,
		&event.EventableType,
		&event.EventableID,
		&event.RealizerID,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event for listing %s: %w", listingID, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT comment_id, event_id, author_id, text_content, ordinal, created_at
		FROM event_comments
		WHERE event_id = $1
		ORDER BY ordinal;
	`, event.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments for event %s: %w", event.EventID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.CommentID, &c.EventID, &c.AuthorID, &c.TextContent, &c.Ordinal, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		event.Comments = append(event.Comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}
	return &event, nil
}

// ListCommentsForAuthor retrieves the comments on realization events whose
// listings the given person authored, oldest first.
func (r *PgxEventRepository) ListCommentsForAuthor(ctx context.Context, authorID string) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.comment_id, c.event_id, c.author_id, c.text_content, c.ordinal, c.created_at
		FROM event_comments c
		JOIN kassi_events e ON e.event_id = c.event_id
		JOIN listings l ON l.listing_id = e.eventable_id
		WHERE e.eventable_type = $1 AND l.author_id = $2
		ORDER BY c.created_at, c.ordinal;
	`, domain.EventableTypeListing, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for author %s: %w", authorID, err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.CommentID, &c.EventID, &c.AuthorID, &c.TextContent, &c.Ordinal, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}
	return comments, nil
}
