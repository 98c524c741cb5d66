package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/kassilabs/kassi_backend/internal/apperrors"
	"github.com/kassilabs/kassi_backend/internal/core/domain"
)

// ValidateListingDraft checks a listing draft against the field rules and
// returns the violations keyed by field name; an empty result means the draft
// is valid. Partially filled drafts are allowed as input. The check is pure:
// it never contacts storage, and the caller supplies the reference time the
// validity window is compared against.
func ValidateListingDraft(listing domain.Listing, ref time.Time) apperrors.FieldErrors {
	errs := apperrors.FieldErrors{}

	if listing.Category == "" {
		errs.Add("category", "is required")
	} else if !listing.Category.IsValid() {
		errs.Add("category", fmt.Sprintf("%q is not a recognized category", listing.Category))
	}

	if strings.TrimSpace(listing.Title) == "" {
		errs.Add("title", "is required")
	}

	if strings.TrimSpace(listing.Content) == "" {
		errs.Add("content", "is required")
	}

	if listing.GoodThru.IsZero() {
		errs.Add("good_thru", "is required")
	} else if !listing.GoodThru.After(ref) {
		errs.Add("good_thru", "must be in the future")
	}

	if listing.Status == "" {
		errs.Add("status", "is required")
	} else if !listing.Status.IsValid() {
		errs.Add("status", fmt.Sprintf("%q is not a recognized status", listing.Status))
	}

	// Missing languages are reported on the synthetic "language" field, not
	// per language tag.
	if len(listing.Languages) == 0 {
		errs.Add("language", "at least one language is required")
	} else {
		for _, lang := range listing.Languages {
			if !domain.IsSupportedLanguage(lang) {
				errs.Add("language", fmt.Sprintf("%q is not a supported language", lang))
			}
		}
	}

	if listing.Visibility != "" && !listing.Visibility.IsValid() {
		errs.Add("visibility", fmt.Sprintf("%q is not a recognized visibility", listing.Visibility))
	}

	return errs
}
