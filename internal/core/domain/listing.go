package domain

import "time"

// Category classifies what a listing offers or asks for.
type Category string

const (
	CategorySell    Category = "sell"
	CategoryGive    Category = "give"
	CategoryRequest Category = "request"
	CategoryRent    Category = "rent"
	CategoryBorrow  Category = "borrow"
)

// KnownCategories lists every recognized listing category.
var KnownCategories = []Category{
	CategorySell,
	CategoryGive,
	CategoryRequest,
	CategoryRent,
	CategoryBorrow,
}

// IsValid reports whether the category is one of the recognized values.
func (c Category) IsValid() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ListingStatus is the lifecycle state of a listing. The only legal
// transition is open to closed, performed by the closing workflow.
type ListingStatus string

const (
	StatusOpen   ListingStatus = "open"
	StatusClosed ListingStatus = "closed"
)

// IsValid reports whether the status is a recognized value.
func (s ListingStatus) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Visibility restricts which viewers may see a listing.
type Visibility string

const (
	VisibilityEverybody Visibility = "everybody"
	VisibilityMembers   Visibility = "members"
)

// IsValid reports whether the visibility is a recognized value.
func (v Visibility) IsValid() bool {
	return v == VisibilityEverybody || v == VisibilityMembers
}

// SupportedLanguages lists the language tags a listing may carry.
var SupportedLanguages = []string{"fi", "swe", "en"}

// IsSupportedLanguage reports whether the tag is a supported language.
func IsSupportedLanguage(tag string) bool {
	for _, lang := range SupportedLanguages {
		if tag == lang {
			return true
		}
	}
	return false
}

// Listing is a single classified post with a validity window, category and
// lifecycle status. The optional image shares the listing's lifetime: it is
// stored under ImageKey when present and removed when the listing is deleted.
type Listing struct {
	ListingID   string        `json:"listingID"`
	AuthorID    string        `json:"authorID"`
	Category    Category      `json:"category"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	GoodThru    time.Time     `json:"goodThru"`
	Status      ListingStatus `json:"status"`
	Languages   []string      `json:"languages"`
	Visibility  Visibility    `json:"visibility"`
	TimesViewed int64         `json:"timesViewed"`
	ImageKey    string        `json:"imageKey,omitempty"` // object key in blob storage, "" when no attachment
	AuditFields
}

// IsOpen reports whether the listing is still open.
func (l *Listing) IsOpen() bool {
	return l.Status == StatusOpen
}

// HasAttachment reports whether an image is stored for the listing.
func (l *Listing) HasAttachment() bool {
	return l.ImageKey != ""
}

// PubliclyVisible reports whether every viewer may see the listing. This is
// the eligibility gate used by the random picker.
func (l *Listing) PubliclyVisible() bool {
	return l.Visibility == VisibilityEverybody
}
