// package repositories provides the SQLite persistence layer for the sandbox roster service.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// NextSequence increments and returns the next sequence number for the given table inside tx.
//
// The sandbox assigns employee ids from this counter, so ids are never reused after a delete.
func NextSequence(ctx context.Context, tx *sql.Tx, table string) (int, error) {
	sequenceTable := table + "_sequence"

	_, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRowContext(ctx, fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}
