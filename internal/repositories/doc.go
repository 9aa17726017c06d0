// Package repositories implements SQLite persistence for the sandbox roster service.
//
// [EmployeeRepository] handles employee CRUD with soft deletes via deleted_at timestamps; deleted rows are
// excluded from every query.
//
// Ids are assigned by [NextSequence], which increments a dedicated per-table counter inside the insert
// transaction. A deleted employee's id is never handed out again.
package repositories
