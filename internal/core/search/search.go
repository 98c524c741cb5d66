// Package search implements the pure listing search engine: a small
// pattern-to-predicate compiler for the '*' wildcard marker plus the
// conjunctive status/category filters. It never touches storage; callers
// hand it the listing collection to filter.
package search

import (
	"strings"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
)

// Wildcard is the match-any-sequence marker recognized in queries.
const Wildcard = "*"

// Matcher reports whether a listing's text matches a compiled query.
type Matcher func(text string) bool

func matchAll(string) bool { return true }

// CompileQuery turns a free-text query into a case-insensitive predicate.
// A query without the wildcard marker matches any text containing it as a
// literal substring. With markers, the literal segments between markers must
// appear in order; a segment not preceded (followed) by a marker is anchored
// to the start (end) of the text. A bare "*" or empty query matches
// everything.
func CompileQuery(query string) Matcher {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || q == Wildcard {
		return matchAll
	}
	if !strings.Contains(q, Wildcard) {
		return func(text string) bool {
			return strings.Contains(strings.ToLower(text), q)
		}
	}

	anchorStart := !strings.HasPrefix(q, Wildcard)
	anchorEnd := !strings.HasSuffix(q, Wildcard)
	var literals []string
	for _, seg := range strings.Split(q, Wildcard) {
		if seg != "" {
			literals = append(literals, seg)
		}
	}
	if len(literals) == 0 {
		return matchAll
	}

	return func(text string) bool {
		s := strings.ToLower(text)
		rest := literals
		if anchorStart {
			if !strings.HasPrefix(s, rest[0]) {
				return false
			}
			s = s[len(rest[0]):]
			rest = rest[1:]
		}
		if anchorEnd && len(rest) > 0 {
			tail := rest[len(rest)-1]
			rest = rest[:len(rest)-1]
			if !strings.HasSuffix(s, tail) {
				return false
			}
			s = s[:len(s)-len(tail)]
		}
		for _, lit := range rest {
			idx := strings.Index(s, lit)
			if idx < 0 {
				return false
			}
			s = s[idx+len(lit):]
		}
		return true
	}
}

// Filter returns the listings matching the query text, the open-only flag and
// the category filter (empty category means no restriction). Text matching
// runs against title and content combined. Visibility is deliberately not
// filtered here; only the random picker enforces it.
func Filter(listings []domain.Listing, query string, onlyOpen bool, category domain.Category) []domain.Listing {
	match := CompileQuery(query)
	var out []domain.Listing
	for _, l := range listings {
		if onlyOpen && !l.IsOpen() {
			continue
		}
		if category != "" && l.Category != category {
			continue
		}
		if !match(l.Title + " " + l.Content) {
			continue
		}
		out = append(out, l)
	}
	return out
}
