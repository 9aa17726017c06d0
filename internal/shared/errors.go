package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNotFound           = fmt.Errorf("employee not found")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Roster state errors
	ErrBusy       = fmt.Errorf("another change is already in progress")
	ErrNoDialog   = fmt.Errorf("no form or confirmation is open")
	ErrDuplicate  = fmt.Errorf("duplicate employee data")
	ErrValidation = fmt.Errorf("validation failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
