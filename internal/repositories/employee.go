package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/shared"
)

// EmployeeRepository persists employees for the sandbox roster service.
//
// Deletes are soft: the row keeps its id and gets a deleted_at timestamp.
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new EmployeeRepository with the given database connection
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts a new employee with the next id from the sequence table and returns the stored record.
//
// Any id on the candidate is ignored.
func (r *EmployeeRepository) Create(ctx context.Context, c models.Candidate) (*models.Employee, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := NextSequence(ctx, tx, "employees")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO employees (id, name, email, address, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, id, c.Name, c.Email, c.Address, c.Phone, now, now); err != nil {
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit employee: %w", err)
	}

	return &models.Employee{ID: models.IntPtr(id), Name: c.Name, Email: c.Email, Address: c.Address, Phone: c.Phone}, nil
}

// Get retrieves an employee by id, excluding deleted rows
func (r *EmployeeRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	query := `
		SELECT id, name, email, address, phone
		FROM employees
		WHERE id = ? AND deleted_at IS NULL
	`

	var e models.Employee
	var rowID int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rowID, &e.Name, &e.Email, &e.Address, &e.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	e.ID = models.IntPtr(rowID)
	return &e, nil
}

// List returns every live employee in id order
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	query := `
		SELECT id, name, email, address, phone
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		var id int
		if err := rows.Scan(&id, &e.Name, &e.Email, &e.Address, &e.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.ID = models.IntPtr(id)
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}
	return employees, nil
}

// Update replaces the fields of the employee named by c.ID
func (r *EmployeeRepository) Update(ctx context.Context, c models.Candidate) error {
	if !c.IsEdit() {
		return fmt.Errorf("%w: update requires an employee id", shared.ErrInvalidInput)
	}

	query := `
		UPDATE employees
		SET name = ?, email = ?, address = ?, phone = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Address, c.Phone, time.Now().UTC(), *c.ID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return expectOneRow(result, *c.ID)
}

// Delete soft-deletes an employee by setting deleted_at
func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	query := `UPDATE employees SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return expectOneRow(result, id)
}

// Count returns the number of live employees
func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees WHERE deleted_at IS NULL").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}

func expectOneRow(result sql.Result, id int) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrNotFound, id)
	}
	return nil
}
