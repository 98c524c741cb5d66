package domain

import "time"

// EventableTypeListing is the eventable type recorded for listing closes.
const EventableTypeListing = "Listing"

// RealizationEvent is the durable record of a close action. Exactly one is
// created per successful close; it references the listing by id only and is
// never mutated afterwards except for the comments appended at creation time.
type RealizationEvent struct {
	EventID       string    `json:"eventID"`
	EventableType string    `json:"eventableType"`
	EventableID   string    `json:"eventableID"`
	RealizerID    string    `json:"realizerID"` // the person who realized the listing, distinct from its author
	CreatedAt     time.Time `json:"createdAt"`
	Comments      []Comment `json:"comments"`
}

// Comment is a single entry in a realization event's comment thread, ordered
// by Ordinal within the event.
type Comment struct {
	CommentID   string    `json:"commentID"`
	EventID     string    `json:"eventID"`
	AuthorID    string    `json:"authorID"`
	TextContent string    `json:"textContent"`
	Ordinal     int       `json:"ordinal"`
	CreatedAt   time.Time `json:"createdAt"`
}
