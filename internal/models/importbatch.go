package models

import (
	"fmt"
	"time"
)

// Import batch kinds.
const (
	ImportKindCustomers = "customers"
	ImportKindReps      = "reps"
)

// ImportBatch records one CSV load: where the rows came from, how many were
// stored, and how many were skipped as malformed.
type ImportBatch struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	SourceFile   string    `json:"source_file"`
	RowCount     int       `json:"row_count"`
	SkippedCount int       `json:"skipped_count"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// Key implements [Record].
func (b ImportBatch) Key() string { return b.ID }

// Validate implements [Record].
func (b ImportBatch) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("import batch id is required")
	}
	if b.Kind != ImportKindCustomers && b.Kind != ImportKindReps {
		return fmt.Errorf("import batch %s: unknown kind %q", b.ID, b.Kind)
	}
	if b.RowCount < 0 || b.SkippedCount < 0 {
		return fmt.Errorf("import batch %s: negative counts", b.ID)
	}
	return nil
}
