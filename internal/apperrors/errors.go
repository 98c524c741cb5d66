package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a referenced listing or event does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotAuthorized indicates the acting person is not allowed to perform the
// operation (e.g. is not the listing's author).
var ErrNotAuthorized = errors.New("not authorized")

// ErrAlreadyClosed indicates a close was attempted on a listing that is no
// longer open. The rejection carries no side effects.
var ErrAlreadyClosed = errors.New("listing already closed")

// ErrUnsupportedMedia indicates an attachment with a content type outside the
// allow-list was supplied.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// ErrNoEligibleListing indicates a random pick was requested but no open,
// publicly visible listing exists.
var ErrNoEligibleListing = errors.New("no eligible listing")

// ErrAttachmentCleanup is a warning-level outcome: the primary operation
// succeeded but the listing's stored attachment could not be removed.
var ErrAttachmentCleanup = errors.New("attachment cleanup failed")

// FieldErrors maps field names to one or more violation reasons. An empty map
// means the input was valid. It matches ErrValidation under errors.Is so
// callers can branch on the category without inspecting fields.
type FieldErrors map[string][]string

// Add appends a violation reason for a field.
func (f FieldErrors) Add(field, reason string) {
	f[field] = append(f[field], reason)
}

// HasErrors reports whether any field carries a violation.
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(f[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Is makes FieldErrors match ErrValidation.
func (f FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
