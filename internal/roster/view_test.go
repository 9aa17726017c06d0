package roster

import (
	"fmt"
	"testing"

	"github.com/desertthunder/emx/internal/models"
	"github.com/google/go-cmp/cmp"
)

func numbered(n int) []models.Employee {
	records := make([]models.Employee, n)
	for i := range records {
		id := i + 1
		records[i] = employee(id, fmt.Sprintf("Employee %d", id), fmt.Sprintf("e%d@example.com", id), fmt.Sprintf("555-%04d", id))
	}
	return records
}

func ids(records []models.Employee) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.SortKey()
	}
	return out
}

func TestDeriveView(t *testing.T) {
	t.Run("Pagination", func(t *testing.T) {
		records := numbered(13)

		tc := []struct {
			name     string
			page     int
			wantPage int
			wantIDs  []int
		}{
			{name: "first page", page: 1, wantPage: 1, wantIDs: []int{13, 12, 11, 10, 9, 8}},
			{name: "last partial page", page: 3, wantPage: 3, wantIDs: []int{1}},
			{name: "page past end clamps", page: 10, wantPage: 3, wantIDs: []int{1}},
			{name: "page zero clamps", page: 0, wantPage: 1, wantIDs: []int{13, 12, 11, 10, 9, 8}},
			{name: "negative page clamps", page: -4, wantPage: 1, wantIDs: []int{13, 12, 11, 10, 9, 8}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				v := DeriveView(records, "", Newest, tt.page, 6)
				if v.TotalPages != 3 {
					t.Errorf("expected 3 pages, got %d", v.TotalPages)
				}
				if v.Page != tt.wantPage {
					t.Errorf("expected page %d, got %d", tt.wantPage, v.Page)
				}
				if diff := cmp.Diff(tt.wantIDs, ids(v.Records)); diff != "" {
					t.Errorf("page records mismatch (-want +got):\n%s", diff)
				}
				if v.Total != 13 {
					t.Errorf("expected total 13, got %d", v.Total)
				}
			})
		}
	})

	t.Run("Empty Store Has One Page", func(t *testing.T) {
		v := DeriveView(nil, "", Newest, 4, 6)
		if v.TotalPages != 1 || v.Page != 1 {
			t.Errorf("expected page 1 of 1, got %d of %d", v.Page, v.TotalPages)
		}
		if len(v.Records) != 0 {
			t.Errorf("expected no records, got %d", len(v.Records))
		}
	})

	t.Run("Invalid Page Size Uses Default", func(t *testing.T) {
		v := DeriveView(numbered(7), "", Oldest, 1, 0)
		if len(v.Records) != DefaultPageSize {
			t.Errorf("expected %d records, got %d", DefaultPageSize, len(v.Records))
		}
		if v.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", v.TotalPages)
		}
	})

	t.Run("Sorting", func(t *testing.T) {
		records := []models.Employee{employee(3, "c", "c@x", "3"), employee(1, "a", "a@x", "1"), employee(2, "b", "b@x", "2")}

		newest := DeriveView(records, "", Newest, 1, 6)
		if diff := cmp.Diff([]int{3, 2, 1}, ids(newest.Records)); diff != "" {
			t.Errorf("newest mismatch (-want +got):\n%s", diff)
		}

		oldest := DeriveView(records, "", Oldest, 1, 6)
		if diff := cmp.Diff([]int{1, 2, 3}, ids(oldest.Records)); diff != "" {
			t.Errorf("oldest mismatch (-want +got):\n%s", diff)
		}

		if diff := cmp.Diff([]int{3, 1, 2}, ids(records)); diff != "" {
			t.Errorf("input must not be reordered (-want +got):\n%s", diff)
		}
	})

	t.Run("Missing IDs Sort As Zero And Keep Order", func(t *testing.T) {
		records := []models.Employee{
			{Name: "draft one"},
			employee(2, "b", "b@x", "2"),
			{Name: "draft two"},
		}

		v := DeriveView(records, "", Oldest, 1, 6)
		names := []string{v.Records[0].Name, v.Records[1].Name, v.Records[2].Name}
		if diff := cmp.Diff([]string{"draft one", "draft two", "b"}, names); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Search", func(t *testing.T) {
		records := []models.Employee{
			{ID: models.IntPtr(1), Name: "Ada Lovelace", Email: "ada@analytical.org", Address: "12 St James Square", Phone: "+44 111"},
			{ID: models.IntPtr(12), Name: "Grace Hopper", Email: "grace@navy.mil", Address: "Arlington", Phone: "555-0100"},
			{ID: models.IntPtr(3), Name: "Alan Turing", Email: "alan@bletchley.uk", Address: "Wilmslow", Phone: "0161"},
		}

		tc := []struct {
			term string
			want []int
		}{
			{term: "", want: []int{12, 3, 1}},
			{term: "   ", want: []int{12, 3, 1}},
			{term: "HOPPER", want: []int{12}},
			{term: " navy ", want: []int{12}},
			{term: "square", want: []int{1}},
			{term: "0161", want: []int{3}},
			{term: "1", want: []int{12, 3, 1}},
			{term: "12", want: []int{12, 1}},
			{term: "nobody", want: []int{}},
		}

		for _, tt := range tc {
			t.Run(fmt.Sprintf("%q", tt.term), func(t *testing.T) {
				v := DeriveView(records, tt.term, Newest, 1, 6)
				if diff := cmp.Diff(tt.want, ids(v.Records)); diff != "" {
					t.Errorf("search mismatch (-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("Blank Search Preserves Input Order Before Sort", func(t *testing.T) {
		records := numbered(4)
		got := Filter(records, " ")
		if diff := cmp.Diff(ids(records), ids(got)); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPageWindow(t *testing.T) {
	tc := []struct {
		name    string
		total   int
		current int
		want    []int
	}{
		{name: "fewer pages than window", total: 3, current: 2, want: []int{1, 2, 3}},
		{name: "exactly five", total: 5, current: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "start of range", total: 10, current: 1, want: []int{1, 2, 3, 4, 5}},
		{name: "centered", total: 10, current: 5, want: []int{3, 4, 5, 6, 7}},
		{name: "end of range slides left", total: 10, current: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "one before end", total: 10, current: 9, want: []int{6, 7, 8, 9, 10}},
		{name: "no pages", total: 0, current: 1, want: nil},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, PageWindow(tt.total, tt.current)); diff != "" {
				t.Errorf("PageWindow() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{"newest": Newest, "OLDEST": Oldest, "": Newest} {
		got, err := ParseSortOrder(in)
		if err != nil {
			t.Fatalf("ParseSortOrder(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSortOrder(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseSortOrder("random"); err == nil {
		t.Error("expected error for unknown order")
	}
	if Newest.Toggle() != Oldest || Oldest.Toggle() != Newest {
		t.Error("Toggle() should flip the order")
	}
}
