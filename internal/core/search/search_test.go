package search_test

import (
	"testing"

	"github.com/kassilabs/kassi_backend/internal/core/domain"
	"github.com/kassilabs/kassi_backend/internal/core/search"
	"github.com/stretchr/testify/assert"
)

func TestCompileQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  bool
	}{
		{"bare wildcard matches anything", "*", "whatever", true},
		{"empty query matches anything", "", "whatever", true},
		{"literal substring match", "otsikko", "Hyvä otsikko täällä", true},
		{"literal substring is case-insensitive", "OTSIKKO", "hyvä otsikko", true},
		{"literal substring no match", "veneitä", "Hyvä otsikko", false},
		{"trailing wildcard anchors prefix", "hyvä*", "Hyvä otsikko", true},
		{"trailing wildcard rejects non-prefix", "otsikko*", "Hyvä otsikko", false},
		{"leading wildcard anchors suffix", "*otsikko", "Hyvä otsikko", true},
		{"leading wildcard rejects non-suffix", "*hyvä", "Hyvä otsikko", false},
		{"both-sided wildcard matches anywhere", "*tsikk*", "Hyvä otsikko", true},
		{"both-sided wildcard no match", "*tsikk*", "Hyvä ilmoitus", false},
		{"embedded wildcard matches segments in order", "hyvä*ikko", "Hyvä otsikko", true},
		{"embedded wildcard rejects wrong order", "ikko*hyvä", "Hyvä otsikko", false},
		{"consecutive wildcards collapse", "hyvä**ikko", "Hyvä otsikko", true},
		{"only wildcards match anything", "***", "Hyvä otsikko", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := search.CompileQuery(tt.query)
			assert.Equal(t, tt.want, match(tt.text))
		})
	}
}

// fixtureListings mirrors the scenario the search behavior is defined
// against: two open listings, one closed, one of them in the sell category.
func fixtureListings() []domain.Listing {
	return []domain.Listing{
		{
			ListingID: "l1",
			Category:  domain.CategorySell,
			Title:     "Myydään otsikko",
			Content:   "Hyvässä kunnossa.",
			Status:    domain.StatusOpen,
		},
		{
			ListingID: "l2",
			Category:  domain.CategoryGive,
			Title:     "Toinen ilmoitus",
			Content:   "Annetaan pois.",
			Status:    domain.StatusOpen,
		},
		{
			ListingID: "l3",
			Category:  domain.CategoryRequest,
			Title:     "Vanha otsikko",
			Content:   "Jo suljettu.",
			Status:    domain.StatusClosed,
		},
	}
}

func TestFilter(t *testing.T) {
	listings := fixtureListings()

	tests := []struct {
		name     string
		query    string
		onlyOpen bool
		category domain.Category
		wantIDs  []string
	}{
		{"wildcard only open", "*", true, "", []string{"l1", "l2"}},
		{"wildcard all statuses", "*", false, "", []string{"l1", "l2", "l3"}},
		{"literal substring only open", "otsikko", true, "", []string{"l1"}},
		{"wildcard substring all statuses", "*tsikk*", false, "", []string{"l1", "l3"}},
		{"wildcard with category", "*", false, domain.CategorySell, []string{"l1"}},
		{"category and text apply conjunctively", "*tsikk*", false, domain.CategoryRequest, []string{"l3"}},
		{"no hits", "veneitä", false, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search.Filter(listings, tt.query, tt.onlyOpen, tt.category)
			gotIDs := make([]string, 0, len(got))
			for _, l := range got {
				gotIDs = append(gotIDs, l.ListingID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, gotIDs)
				return
			}
			assert.ElementsMatch(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFilterMatchesContentToo(t *testing.T) {
	listings := []domain.Listing{
		{ListingID: "c1", Title: "Ilmoitus", Content: "sisältää otsikko sanan", Status: domain.StatusOpen},
	}
	got := search.Filter(listings, "otsikko", true, "")
	assert.Len(t, got, 1)
}

func TestFilterDoesNotFilterVisibility(t *testing.T) {
	listings := []domain.Listing{
		{ListingID: "v1", Title: "Rajattu otsikko", Status: domain.StatusOpen, Visibility: domain.VisibilityMembers},
	}
	got := search.Filter(listings, "*", true, "")
	assert.Len(t, got, 1, "restricted-visibility listings stay in search results")
}
