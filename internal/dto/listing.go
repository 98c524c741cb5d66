package dto

import (
	"time"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
)

// CreateListingRequest defines the data needed to create a new listing. The
// image file travels separately as a multipart part; see Attachment.
type CreateListingRequest struct {
	Category  string    `form:"category" json:"category" binding:"required"`
	Title     string    `form:"title" json:"title" binding:"required"`
	Content   string    `form:"content" json:"content" binding:"required"`
	GoodThru  time.Time `form:"good_thru" json:"goodThru" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Languages []string  `form:"languages" json:"languages" binding:"required"`
	// Visibility defaults to "everybody" when omitted.
	Visibility string `form:"visibility" json:"visibility"`
}

// Attachment carries an uploaded image payload with its declared content
// type, as received from the multipart request.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UpdateListingRequest defines the fields an author may patch. Pointers
// distinguish omitted fields from zero-value updates.
type UpdateListingRequest struct {
	Category   *string    `json:"category"`
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	GoodThru   *time.Time `json:"goodThru"`
	Languages  []string   `json:"languages"` // nil = unchanged
	Visibility *string    `json:"visibility"`
}

// CloseListingRequest defines the data for marking a listing realized.
type CloseListingRequest struct {
	RealizerID string `json:"realizerID" binding:"required"`
	Comment    string `json:"comment"` // optional; becomes the event's first comment
}

// SearchListingsParams are the query-string parameters of the search
// endpoint.
type SearchListingsParams struct {
	Query    string `form:"q"`
	OnlyOpen bool   `form:"only_open"`
	Category string `form:"category"`
}

// ListingResponse defines the data returned for a listing.
type ListingResponse struct {
	ListingID   string    `json:"listingID"`
	AuthorID    string    `json:"authorID"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	GoodThru    time.Time `json:"goodThru"`
	Status      string    `json:"status"`
	Languages   []string  `json:"languages"`
	Visibility  string    `json:"visibility"`
	TimesViewed int64     `json:"timesViewed"`
	ImageKey    string    `json:"imageKey,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToListingResponse converts a domain.Listing to ListingResponse DTO.
func ToListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ListingID:   l.ListingID,
		AuthorID:    l.AuthorID,
		Category:    string(l.Category),
		Title:       l.Title,
		Content:     l.Content,
		GoodThru:    l.GoodThru,
		Status:      string(l.Status),
		Languages:   l.Languages,
		Visibility:  string(l.Visibility),
		TimesViewed: l.TimesViewed,
		ImageKey:    l.ImageKey,
		CreatedAt:   l.CreatedAt,
	}
}

// ToListingResponses converts a slice of domain.Listing to DTOs.
func ToListingResponses(listings []domain.Listing) []ListingResponse {
	responses := make([]ListingResponse, len(listings))
	for i := range listings {
		responses[i] = ToListingResponse(&listings[i])
	}
	return responses
}
