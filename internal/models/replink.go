package models

import "fmt"

// RepLink maps a customer to the representative that owns the relationship.
// One representative may own many customers; each customer carries exactly
// one owner record.
type RepLink struct {
	CustomerID string `json:"customer_id"`
	Owner      string `json:"owner"`
}

// Key implements [Record].
func (l RepLink) Key() string { return l.CustomerID }

// Validate implements [Record].
func (l RepLink) Validate() error {
	if l.CustomerID == "" {
		return fmt.Errorf("rep link: customer_id is required")
	}
	if l.Owner == "" {
		return fmt.Errorf("rep link %s: owner is required", l.CustomerID)
	}
	return nil
}
