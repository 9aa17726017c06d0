// package services defines interface EmployeeService for talking to the remote roster API
package services

import (
	"context"

	"github.com/desertthunder/emx/internal/models"
)

// EmployeeService is the remote roster service. It is the only authority that assigns employee ids.
type EmployeeService interface {
	// ListAll returns every employee in service order.
	ListAll(ctx context.Context) ([]models.Employee, error)

	// GetByID returns one employee or an error wrapping [shared.ErrNotFound].
	GetByID(ctx context.Context, id int) (*models.Employee, error)

	// Create stores a new employee; any id on the candidate is ignored.
	Create(ctx context.Context, c models.Candidate) error

	// Update replaces the employee named by c.ID.
	Update(ctx context.Context, c models.Candidate) error

	// DeleteByID removes an employee.
	DeleteByID(ctx context.Context, id int) error
}
