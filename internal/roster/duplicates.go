package roster

import (
	"strings"

	"github.com/desertthunder/emx/internal/models"
)

// Field names a candidate input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldAddress Field = "address"
	FieldPhone   Field = "phone"
)

// Fields lists every form field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldAddress, FieldPhone}

// duplicateFields is the reporting order for conflicts.
var duplicateFields = []Field{FieldEmail, FieldPhone, FieldName}

// Label returns the capitalized field name.
func (f Field) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Value returns the candidate's value for f.
func (f Field) Value(c models.Candidate) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldAddress:
		return c.Address
	case FieldPhone:
		return c.Phone
	}
	return ""
}

// Of returns the stored record's value for f.
func (f Field) Of(e models.Employee) string {
	switch f {
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.Email
	case FieldAddress:
		return e.Address
	case FieldPhone:
		return e.Phone
	}
	return ""
}

// Set returns a copy of c with f set to v.
func (f Field) Set(c models.Candidate, v string) models.Candidate {
	switch f {
	case FieldName:
		c.Name = v
	case FieldEmail:
		c.Email = v
	case FieldAddress:
		c.Address = v
	case FieldPhone:
		c.Phone = v
	}
	return c
}

// DuplicateReport maps a field to its conflict message. A missing key means no conflict.
type DuplicateReport map[Field]string

var duplicateMessages = map[Field]string{
	FieldEmail: "This email is already registered",
	FieldPhone: "This phone number is already registered",
	FieldName:  "This name is already registered",
}

// Has reports whether f conflicts with another record.
func (r DuplicateReport) Has(f Field) bool {
	_, ok := r[f]
	return ok
}

// Empty reports whether no field conflicts.
func (r DuplicateReport) Empty() bool { return len(r) == 0 }

// Fields returns the conflicting fields in email, phone, name order.
func (r DuplicateReport) Fields() []Field {
	var fields []Field
	for _, f := range duplicateFields {
		if r.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Summary joins the conflicting field labels, e.g. "Email, Phone".
func (r DuplicateReport) Summary() string {
	labels := make([]string, 0, len(r))
	for _, f := range r.Fields() {
		labels = append(labels, f.Label())
	}
	return strings.Join(labels, ", ")
}

type matcher func(candidate, existing string) bool

func foldEqual(candidate, existing string) bool {
	return strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(existing))
}

func exactEqual(candidate, existing string) bool {
	return candidate == existing
}

var matchers = map[Field]matcher{
	FieldEmail: foldEqual,
	FieldPhone: exactEqual,
	FieldName:  foldEqual,
}

// CheckDuplicates reports which of the candidate's email, phone, and name are already used in existing.
//
// Records whose id equals excludeID are skipped so an edited record never conflicts with itself.
// Blank candidate fields are not checked. The caller owns existing and must not mutate it during the call.
func CheckDuplicates(candidate models.Candidate, existing []models.Employee, excludeID *int) DuplicateReport {
	report := DuplicateReport{}

	for _, field := range duplicateFields {
		value := field.Value(candidate)
		if strings.TrimSpace(value) == "" {
			continue
		}

		match := matchers[field]
		for _, record := range existing {
			if record.Same(excludeID) {
				continue
			}
			if match(value, field.Of(record)) {
				report[field] = duplicateMessages[field]
				break
			}
		}
	}

	return report
}
