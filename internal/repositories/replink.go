package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fathomlabs/churnlens/internal/models"
)

// RepLinkRepository implements models.Repository[models.RepLink] over the rep_links table.
type RepLinkRepository struct {
	db *sql.DB
}

// NewRepLinkRepository creates a new RepLinkRepository with the given database connection
func NewRepLinkRepository(db *sql.DB) *RepLinkRepository {
	return &RepLinkRepository{db: db}
}

// Insert adds a single [models.RepLink] after validation.
func (r *RepLinkRepository) Insert(link models.RepLink) error {
	if err := link.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.db.Exec(insertRepLinkSQL, link.CustomerID, link.Owner)
	if err != nil {
		return fmt.Errorf("failed to insert rep link: %w", err)
	}

	return nil
}

// InsertMany adds rep links in a single transaction.
func (r *RepLinkRepository) InsertMany(links []models.RepLink) error {
	return insertMany(r.db, links, func(tx *sql.Tx, l models.RepLink) error {
		if _, err := tx.Exec(insertRepLinkSQL, l.CustomerID, l.Owner); err != nil {
			return fmt.Errorf("failed to insert rep link %s: %w", l.CustomerID, err)
		}
		return nil
	})
}

// List retrieves all rep links matching the given criteria in insertion order.
//
// Supported criteria: "owner" (string).
func (r *RepLinkRepository) List(criteria map[string]any) ([]models.RepLink, error) {
	query := `
		SELECT customer_id, owner
		FROM rep_links
		WHERE 1 = 1
	`

	args := []any{}

	if owner, ok := criteria["owner"].(string); ok && owner != "" {
		query += " AND owner = ?"
		args = append(args, owner)
	}

	query += " ORDER BY rowid ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rep links: %w", err)
	}
	defer rows.Close()

	var links []models.RepLink
	for rows.Next() {
		var l models.RepLink
		if err := rows.Scan(&l.CustomerID, &l.Owner); err != nil {
			return nil, fmt.Errorf("failed to scan rep link: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return links, nil
}

// Count returns the number of stored rep links.
func (r *RepLinkRepository) Count() (int, error) {
	return count(r.db, "rep_links")
}

const insertRepLinkSQL = `
	INSERT INTO rep_links (customer_id, owner)
	VALUES (?, ?)
`
