package repositories

import "context"

// AttachmentStore stores at most one image per listing in blob storage, keyed
// deterministically by the listing id.
type AttachmentStore interface {
	// Supports reports whether the declared content type is on the image
	// allow-list. The listing validator consults this before any write.
	Supports(contentType string) bool

	// Store writes the image and returns its object key
	// ("<listingID>.<ext>"). A content type outside the allow-list yields
	// apperrors.ErrUnsupportedMedia and performs no write.
	Store(ctx context.Context, listingID string, data []byte, contentType string) (string, error)

	// Delete removes the stored image if present; deleting a non-existent
	// attachment is not an error.
	Delete(ctx context.Context, listingID string) error
}

