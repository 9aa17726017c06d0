// package models defines the data model for the employee roster client
package models

import "strconv"

// Employee is a persisted roster record.
type Employee struct {
	ID      *int   `json:"empId,omitempty"`
	Name    string `json:"empName"`
	Email   string `json:"empEmail"`
	Address string `json:"empAddress"`
	Phone   string `json:"empPhone"`
}

// Candidate is a record awaiting validation and submission.
//
// ID is nil for a new record and set to the edited record's id otherwise.
type Candidate struct {
	ID      *int   `json:"empId,omitempty" validate:"-"`
	Name    string `json:"empName" validate:"required,min=2"`
	Email   string `json:"empEmail" validate:"required,email"`
	Address string `json:"empAddress" validate:"required,min=5"`
	Phone   string `json:"empPhone" validate:"required,phone"`
}

// IntPtr returns a pointer to a copy of v.
func IntPtr(v int) *int { return &v }

// HasID reports whether the record has been assigned an id.
func (e Employee) HasID() bool { return e.ID != nil }

// SortKey returns the id used for ordering; records without an id sort as 0.
func (e Employee) SortKey() int {
	if e.ID == nil {
		return 0
	}
	return *e.ID
}

// IDString returns the decimal id, or an empty string for unsaved records.
func (e Employee) IDString() string {
	if e.ID == nil {
		return ""
	}
	return strconv.Itoa(*e.ID)
}

// Same reports whether e is the record identified by id.
//
// Absent ids never match, including against another absent id.
func (e Employee) Same(id *int) bool {
	return e.ID != nil && id != nil && *e.ID == *id
}

// Candidate converts the record into an edit candidate carrying its id.
func (e Employee) Candidate() Candidate {
	c := Candidate{Name: e.Name, Email: e.Email, Address: e.Address, Phone: e.Phone}
	if e.ID != nil {
		c.ID = IntPtr(*e.ID)
	}
	return c
}

// IsEdit reports whether the candidate replaces an existing record.
func (c Candidate) IsEdit() bool { return c.ID != nil }

// WithoutID returns a copy of the candidate suitable for a create request.
func (c Candidate) WithoutID() Candidate {
	c.ID = nil
	return c
}
