package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fathomlabs/churnlens/internal/models"
)

// CustomerRepository implements models.Repository[models.Customer] over the customers table.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new CustomerRepository with the given database connection
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Insert adds a single [models.Customer] after validation.
func (r *CustomerRepository) Insert(customer models.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.db.Exec(insertCustomerSQL, customerArgs(customer)...)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	return nil
}

// InsertMany adds customers in a single transaction. Records are assumed
// validated by the importer; a constraint violation rolls back the batch.
func (r *CustomerRepository) InsertMany(customers []models.Customer) error {
	return insertMany(r.db, customers, func(tx *sql.Tx, c models.Customer) error {
		if _, err := tx.Exec(insertCustomerSQL, customerArgs(c)...); err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", c.ID, err)
		}
		return nil
	})
}

// List retrieves all customers matching the given criteria in insertion order.
//
// Supported criteria: "churned" (bool), "industry" (string).
func (r *CustomerRepository) List(criteria map[string]any) ([]models.Customer, error) {
	query := `
		SELECT id, name, loss_reason, industry, age_days, engagement_pct, adoption_pct, type, plan, churned
		FROM customers
		WHERE 1 = 1
	`

	args := []any{}

	if churned, ok := criteria["churned"].(bool); ok {
		query += " AND churned = ?"
		args = append(args, churned)
	}

	if industry, ok := criteria["industry"].(string); ok && industry != "" {
		query += " AND industry = ?"
		args = append(args, industry)
	}

	query += " ORDER BY rowid ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return customers, nil
}

// Count returns the number of stored customers.
func (r *CustomerRepository) Count() (int, error) {
	return count(r.db, "customers")
}

const insertCustomerSQL = `
	INSERT INTO customers (id, name, loss_reason, industry, age_days, engagement_pct, adoption_pct, type, plan, churned)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func customerArgs(c models.Customer) []any {
	return []any{
		c.ID,
		c.Name,
		c.LossReason,
		c.Industry,
		c.AgeDays,
		c.EngagementPct,
		c.AdoptionPct,
		c.Type,
		c.Plan,
		c.Churned,
	}
}

// scanCustomer scans a row from [sql.Rows] into a [models.Customer]
func scanCustomer(rows *sql.Rows) (models.Customer, error) {
	var c models.Customer

	err := rows.Scan(
		&c.ID,
		&c.Name,
		&c.LossReason,
		&c.Industry,
		&c.AgeDays,
		&c.EngagementPct,
		&c.AdoptionPct,
		&c.Type,
		&c.Plan,
		&c.Churned,
	)
	if err != nil {
		return models.Customer{}, fmt.Errorf("failed to scan customer: %w", err)
	}

	return c, nil
}
