package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEmployee(t *testing.T) {
	t.Run("Same", func(t *testing.T) {
		tc := []struct {
			name string
			id   *int
			with *int
			want bool
		}{
			{name: "equal ids", id: IntPtr(5), with: IntPtr(5), want: true},
			{name: "different ids", id: IntPtr(5), with: IntPtr(6), want: false},
			{name: "absent record id", id: nil, with: IntPtr(5), want: false},
			{name: "absent exclude id", id: IntPtr(5), with: nil, want: false},
			{name: "both absent", id: nil, with: nil, want: false},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				e := Employee{ID: tt.id}
				if got := e.Same(tt.with); got != tt.want {
					t.Errorf("Same() = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("SortKey Defaults To Zero", func(t *testing.T) {
		if got := (Employee{}).SortKey(); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		if got := (Employee{ID: IntPtr(9)}).SortKey(); got != 9 {
			t.Errorf("expected 9, got %d", got)
		}
	})

	t.Run("Candidate Copies ID", func(t *testing.T) {
		e := Employee{ID: IntPtr(3), Name: "Ada"}
		c := e.Candidate()
		*e.ID = 4

		if c.ID == nil || *c.ID != 3 {
			t.Errorf("expected candidate id 3, got %v", c.ID)
		}
		if !c.IsEdit() {
			t.Error("expected candidate to be an edit")
		}
		if c.WithoutID().IsEdit() {
			t.Error("expected WithoutID to drop the id")
		}
	})

	t.Run("JSON Uses Service Field Names", func(t *testing.T) {
		data, err := json.Marshal(Employee{Name: "Ada", Email: "ada@example.com"})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(data), "empId") {
			t.Errorf("expected empId to be omitted, got %s", data)
		}
		if !strings.Contains(string(data), `"empName":"Ada"`) {
			t.Errorf("expected empName field, got %s", data)
		}

		var decoded Employee
		if err := json.Unmarshal([]byte(`{"empId":12,"empName":"Bo"}`), &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if decoded.IDString() != "12" {
			t.Errorf("expected id 12, got %q", decoded.IDString())
		}
	})
}
