package dto

import (
	"time"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
)

// CommentResponse defines the data returned for a realization-event comment.
type CommentResponse struct {
	CommentID   string    `json:"commentID"`
	EventID     string    `json:"eventID"`
	AuthorID    string    `json:"authorID"`
	TextContent string    `json:"textContent"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RealizationEventResponse defines the data returned for a realization event.
type RealizationEventResponse struct {
	EventID       string            `json:"eventID"`
	EventableType string            `json:"eventableType"`
	EventableID   string            `json:"eventableID"`
	RealizerID    string            `json:"realizerID"`
	CreatedAt     time.Time         `json:"createdAt"`
	Comments      []CommentResponse `json:"comments"`
}

// ToCommentResponse converts a domain.Comment to CommentResponse DTO.
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID:   c.CommentID,
		EventID:     c.EventID,
		AuthorID:    c.AuthorID,
		TextContent: c.TextContent,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCommentResponses converts a slice of domain.Comment to DTOs.
func ToCommentResponses(comments []domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = ToCommentResponse(&comments[i])
	}
	return responses
}

// ToRealizationEventResponse converts a domain.RealizationEvent to its DTO.
func ToRealizationEventResponse(e *domain.RealizationEvent) RealizationEventResponse {
	return RealizationEventResponse{
		EventID:       e.EventID,
		EventableType: e.EventableType,
		EventableID:   e.EventableID,
		RealizerID:    e.RealizerID,
		CreatedAt:     e.CreatedAt,
		Comments:      ToCommentResponses(e.Comments),
	}
}
