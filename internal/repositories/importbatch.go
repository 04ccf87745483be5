package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fathomlabs/churnlens/internal/models"
)

// ImportRepository implements models.Repository[models.ImportBatch] over the imports table.
type ImportRepository struct {
	db *sql.DB
}

// NewImportRepository creates a new ImportRepository with the given database connection
func NewImportRepository(db *sql.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// Insert records a completed CSV load.
func (r *ImportRepository) Insert(batch models.ImportBatch) error {
	if err := batch.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.db.Exec(insertImportSQL,
		batch.ID,
		batch.Kind,
		batch.SourceFile,
		batch.RowCount,
		batch.SkippedCount,
		batch.LoadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert import batch: %w", err)
	}

	return nil
}

// InsertMany records import batches in a single transaction.
func (r *ImportRepository) InsertMany(batches []models.ImportBatch) error {
	return insertMany(r.db, batches, func(tx *sql.Tx, b models.ImportBatch) error {
		if _, err := tx.Exec(insertImportSQL, b.ID, b.Kind, b.SourceFile, b.RowCount, b.SkippedCount, b.LoadedAt); err != nil {
			return fmt.Errorf("failed to insert import batch %s: %w", b.ID, err)
		}
		return nil
	})
}

// List retrieves import batches matching the given criteria, most recent first.
//
// Supported criteria: "kind" (string).
func (r *ImportRepository) List(criteria map[string]any) ([]models.ImportBatch, error) {
	query := `
		SELECT id, kind, source_file, row_count, skipped_count, loaded_at
		FROM imports
		WHERE 1 = 1
	`

	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	query += " ORDER BY loaded_at DESC, rowid DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	var batches []models.ImportBatch
	for rows.Next() {
		var b models.ImportBatch
		var loadedAt time.Time
		if err := rows.Scan(&b.ID, &b.Kind, &b.SourceFile, &b.RowCount, &b.SkippedCount, &loadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		b.LoadedAt = loadedAt
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return batches, nil
}

// Count returns the number of recorded import batches.
func (r *ImportRepository) Count() (int, error) {
	return count(r.db, "imports")
}

const insertImportSQL = `
	INSERT INTO imports (id, kind, source_file, row_count, skipped_count, loaded_at)
	VALUES (?, ?, ?, ?, ?, ?)
`
