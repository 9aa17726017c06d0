package roster

import (
	"maps"
	"slices"

	"github.com/desertthunder/emx/internal/models"
)

// FormState is the lifecycle of a candidate form.
type FormState int

const (
	Pristine FormState = iota // no value changed since the form opened
	Dirty                     // a value changed and has not been evaluated yet
	Valid
	Invalid
)

func (s FormState) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case Dirty:
		return "dirty"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Form validates one candidate against static rules and against the existing records.
//
// Duplicate checks need the existing records; until [Form.SetExisting] is called the form is not ready and
// cannot be submitted. Every later call re-runs the duplicate check against the new snapshot.
type Form struct {
	candidate  models.Candidate
	excludeID  *int
	existing   []models.Employee
	ready      bool
	state      FormState
	touched    map[Field]bool
	static     map[Field]string
	duplicates DuplicateReport
}

// NewForm returns an empty form for creating a record.
func NewForm() *Form {
	f := &Form{touched: map[Field]bool{}, duplicates: DuplicateReport{}}
	f.static = ValidateCandidate(f.candidate)
	return f
}

// NewEditForm returns a form pre-filled from e. The record's own values never count as duplicates.
func NewEditForm(e models.Employee) *Form {
	f := NewForm()
	f.candidate = e.Candidate()
	f.excludeID = f.candidate.ID
	f.static = ValidateCandidate(f.candidate)
	return f
}

// IsEdit reports whether the form edits an existing record.
func (f *Form) IsEdit() bool { return f.excludeID != nil }

// SetExisting supplies the record store snapshot used for duplicate checks and marks the form ready.
func (f *Form) SetExisting(records []models.Employee) {
	f.existing = slices.Clone(records)
	f.ready = true
	f.checkDuplicates()
}

// Ready reports whether the existing records have been supplied.
func (f *Form) Ready() bool { return f.ready }

// Set changes one field and re-evaluates the form.
func (f *Form) Set(field Field, value string) {
	if field.Value(f.candidate) == value {
		return
	}
	f.candidate = field.Set(f.candidate, value)
	f.state = Dirty
	f.evaluate()
}

// Touch marks a field as visited so its static error becomes visible.
func (f *Form) Touch(field Field) { f.touched[field] = true }

// Touched reports whether field has been visited.
func (f *Form) Touched(field Field) bool { return f.touched[field] }

// Value returns the current value of field.
func (f *Form) Value(field Field) string { return field.Value(f.candidate) }

// Candidate returns the current candidate, carrying the edited id in edit mode.
func (f *Form) Candidate() models.Candidate {
	c := f.candidate
	c.ID = nil
	if f.excludeID != nil {
		c.ID = models.IntPtr(*f.excludeID)
	}
	return c
}

// State returns the lifecycle state.
func (f *Form) State() FormState { return f.state }

// StaticValid reports whether every static rule passes.
func (f *Form) StaticValid() bool { return len(f.static) == 0 }

// Submittable reports whether the form could be submitted right now.
func (f *Form) Submittable() bool {
	return f.ready && f.StaticValid() && f.duplicates.Empty()
}

// Submit re-runs the duplicate check and returns the candidate when the form is submittable.
//
// Otherwise every field is marked touched so all errors become visible, and ok is false.
func (f *Form) Submit() (c models.Candidate, ok bool) {
	f.static = ValidateCandidate(f.candidate)
	f.checkDuplicates()
	f.settle()

	if !f.Submittable() {
		for _, field := range Fields {
			f.touched[field] = true
		}
		return models.Candidate{}, false
	}
	return f.Candidate(), true
}

// HasDuplicate reports whether field conflicts with another record.
func (f *Form) HasDuplicate(field Field) bool { return f.duplicates.Has(field) }

// HasDuplicates reports whether any field conflicts with another record.
func (f *Form) HasDuplicates() bool { return !f.duplicates.Empty() }

// Duplicates returns a copy of the current duplicate report.
func (f *Form) Duplicates() DuplicateReport { return maps.Clone(f.duplicates) }

// ErrorFor returns the message for field; a duplicate conflict wins over a static error.
func (f *Form) ErrorFor(field Field) string {
	if msg, ok := f.duplicates[field]; ok {
		return msg
	}
	return f.static[field]
}

// Invalid reports whether field should be shown as invalid: a static error once touched, or any duplicate.
func (f *Form) Invalid(field Field) bool {
	_, bad := f.static[field]
	return (bad && f.touched[field]) || f.duplicates.Has(field)
}

// VisibleError returns [Form.ErrorFor] when the field is shown as invalid, otherwise "".
func (f *Form) VisibleError(field Field) string {
	if !f.Invalid(field) {
		return ""
	}
	return f.ErrorFor(field)
}

func (f *Form) evaluate() {
	f.static = ValidateCandidate(f.candidate)
	f.checkDuplicates()
	f.settle()
}

func (f *Form) checkDuplicates() {
	if !f.ready {
		f.duplicates = DuplicateReport{}
		return
	}
	f.duplicates = CheckDuplicates(f.candidate, f.existing, f.excludeID)
}

// settle moves a changed form out of Dirty; a pristine form stays pristine.
func (f *Form) settle() {
	if f.state == Pristine {
		return
	}
	if f.StaticValid() && f.duplicates.Empty() {
		f.state = Valid
	} else {
		f.state = Invalid
	}
}
