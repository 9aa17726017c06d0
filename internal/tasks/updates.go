package tasks

import (
	"fmt"

	"github.com/desertthunder/emx/internal/models"
)

// ProgressUpdate represents a progress event during a remote operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchEmployees Phase = iota
	FetchEmployee
	CreateEmployee
	UpdateEmployee
	DeleteEmployee
	ExportEmployees
	Failed
)

func (p Phase) String() string {
	switch p {
	case FetchEmployees:
		return "fetch_employees"
	case FetchEmployee:
		return "fetch_employee"
	case CreateEmployee:
		return "create_employee"
	case UpdateEmployee:
		return "update_employee"
	case DeleteEmployee:
		return "delete_employee"
	case ExportEmployees:
		return "export_employees"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchingEmployeesUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchEmployees, Step: 1, Total: 1, Message: "Fetching employees..."}
}

func fetchedEmployeesUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEmployees,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d employees", count),
		Data:    count,
	}
}

func fetchEmployeeUpdate(step, total int, e *models.Employee) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEmployee,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (ID: %s)", step, total, e.Name, e.IDString()),
		Data:    e,
	}
}

func fetchEmployeeFailedUpdate(step, total, id int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEmployee,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %d: %v", step, total, id, err),
	}
}

func mutationUpdate(phase Phase, name string) ProgressUpdate {
	var verb string
	switch phase {
	case CreateEmployee:
		verb = "Adding"
	case UpdateEmployee:
		verb = "Updating"
	default:
		verb = "Deleting"
	}
	return ProgressUpdate{Phase: phase, Step: 1, Total: 1, Message: fmt.Sprintf("%s %s...", verb, name)}
}

func failedUpdate(message string) ProgressUpdate {
	return ProgressUpdate{Phase: Failed, Step: 1, Total: 1, Message: message}
}

func exportedUpdate(count int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportEmployees,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Exported %d employees to %s", count, path),
		Data:    path,
	}
}
