package roster

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/emx/internal/models"
)

// DefaultPageSize is used when a page size below 1 is requested.
const DefaultPageSize = 6

// maxVisiblePages bounds the pager window.
const maxVisiblePages = 5

// SortOrder orders records by id.
type SortOrder int

const (
	Newest SortOrder = iota // id descending
	Oldest                  // id ascending
)

func (o SortOrder) String() string {
	if o == Oldest {
		return "oldest"
	}
	return "newest"
}

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == Oldest {
		return Newest
	}
	return Oldest
}

// ParseSortOrder parses "newest" or "oldest", case-insensitively.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "newest", "":
		return Newest, nil
	case "oldest":
		return Oldest, nil
	}
	return Newest, fmt.Errorf("unknown sort order %q", s)
}

// DisplayState holds the user's list settings. The derived view is always computed from it, never cached.
type DisplayState struct {
	Search string
	Order  SortOrder
	Page   int
}

// View is one page of the filtered, sorted store.
type View struct {
	Records    []models.Employee
	Total      int // records matching the search
	TotalPages int
	Page       int
}

// DeriveView filters records by search, sorts them by order, and returns the requested page.
//
// The page is clamped into [1, TotalPages]; TotalPages is at least 1 even when nothing matches.
// The input slice is not modified.
func DeriveView(records []models.Employee, search string, order SortOrder, page, pageSize int) View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(records, search)
	Sort(filtered, order)

	totalPages := max(1, (len(filtered)+pageSize-1)/pageSize)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*pageSize, len(filtered))
	end := min(start+pageSize, len(filtered))

	return View{
		Records:    filtered[start:end:end],
		Total:      len(filtered),
		TotalPages: totalPages,
		Page:       page,
	}
}

// Filter returns a new slice with the records matching search.
//
// Matching is a case-insensitive substring test of the trimmed term against name, email, address, phone,
// and decimal id. A blank term matches everything.
func Filter(records []models.Employee, search string) []models.Employee {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Employee, 0, len(records))

	for _, r := range records {
		if term == "" || matches(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Employee, term string) bool {
	for _, v := range []string{r.Name, r.Email, r.Address, r.Phone} {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return r.HasID() && strings.Contains(r.IDString(), term)
}

// Sort orders records in place by id; records without an id sort as 0 and ties keep their relative order.
func Sort(records []models.Employee, order SortOrder) {
	slices.SortStableFunc(records, func(a, b models.Employee) int {
		if order == Oldest {
			return cmp.Compare(a.SortKey(), b.SortKey())
		}
		return cmp.Compare(b.SortKey(), a.SortKey())
	})
}

// PageWindow returns at most five page numbers around current, shifted to stay within [1, totalPages].
func PageWindow(totalPages, current int) []int {
	if totalPages < 1 {
		return nil
	}

	start, end := 1, totalPages
	if totalPages > maxVisiblePages {
		start = max(1, current-maxVisiblePages/2)
		end = min(totalPages, start+maxVisiblePages-1)
		if end-start+1 < maxVisiblePages {
			start = max(1, end-maxVisiblePages+1)
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
