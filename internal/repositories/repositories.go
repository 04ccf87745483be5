// package repositories provides persistence layer implementations for all record types.
//
// Each repository implements models.Repository[T] for a specific entity type.
// The dataset tables are append-only: rows are bulk-inserted by the importer
// and read back whole for report computation.
package repositories

import (
	"database/sql"
	"fmt"
)

// insertMany runs fn for each element inside a single transaction so a CSV
// load is either fully stored or not stored at all.
func insertMany[T any](db *sql.DB, records []T, fn func(*sql.Tx, T) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		if err := fn(tx, record); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// count returns the row count of the given table.
func count(db *sql.DB, table string) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
