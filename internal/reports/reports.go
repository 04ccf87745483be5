// Package reports implements the churn/retention report suite over the CRM
// dataset. Each report is a pure function of a [Dataset]: no report mutates
// input rows, reads shared state, or depends on another report, so the suite
// may run in any order or concurrently.
package reports

import (
	"github.com/fathomlabs/churnlens/internal/models"
)

// Dataset holds the two input relations for a report run. Both slices keep
// their source insertion order; several reports use that order to break ties.
type Dataset struct {
	Customers []models.Customer
	Links     []models.RepLink
}

// NewDataset creates a Dataset over the given relations.
func NewDataset(customers []models.Customer, links []models.RepLink) *Dataset {
	return &Dataset{Customers: customers, Links: links}
}

// Churned returns the churned customers in input order.
func (ds *Dataset) Churned() []models.Customer {
	return ds.filter(true)
}

// Retained returns the non-churned customers in input order.
func (ds *Dataset) Retained() []models.Customer {
	return ds.filter(false)
}

func (ds *Dataset) filter(churned bool) []models.Customer {
	var out []models.Customer
	for _, c := range ds.Customers {
		if c.Churned == churned {
			out = append(out, c)
		}
	}
	return out
}

// ownedCustomer pairs a customer with its owning representative.
type ownedCustomer struct {
	customer models.Customer
	owner    string
}

// joinOwners inner-joins rep links to customers in link input order.
// Links referencing an unknown customer id are silently excluded.
func (ds *Dataset) joinOwners() []ownedCustomer {
	byID := make(map[string]models.Customer, len(ds.Customers))
	for _, c := range ds.Customers {
		byID[c.ID] = c
	}

	var joined []ownedCustomer
	for _, l := range ds.Links {
		c, ok := byID[l.CustomerID]
		if !ok {
			continue
		}
		joined = append(joined, ownedCustomer{customer: c, owner: l.Owner})
	}
	return joined
}

// Table is the rendered form of a report result: an ordered sequence of rows
// under named columns, ready for the formatter and UI layers.
type Table struct {
	Slug    string     `json:"slug"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
