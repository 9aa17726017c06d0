// Package roster holds the record logic behind the employee screen.
//
// # Duplicate Checker
//
// [CheckDuplicates] compares a candidate against a snapshot of the record store and reports, per field,
// whether another record already uses the same email, phone, or name. The record being edited is exempt
// when its id is passed as the exclusion key; records without an id are never exempt.
//
// # Derived View
//
// [DeriveView] filters, sorts, and slices the store into the page shown on screen. It is recomputed from its
// inputs every time, so a view can never drift from the store it was built from. [PageWindow] produces the
// short run of page numbers shown in the pager.
//
// # Form
//
// [Form] tracks one candidate through Pristine, Dirty, Valid, and Invalid. Static rules come from
// validator struct tags on [models.Candidate]; duplicate feedback is layered on top and takes precedence
// when both apply to a field.
package roster
