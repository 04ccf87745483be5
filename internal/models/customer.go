package models

import (
	"fmt"
	"strings"
)

// Entity type categories for [Customer.Type].
const (
	TypeAccount     = "Account"
	TypeOpportunity = "Opportunity"
)

// LossReasonNA is the sentinel loss reason carried by customers that have not churned.
const LossReasonNA = "N/A"

// Customer is one account or opportunity record in the CRM dataset.
type Customer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	LossReason    string  `json:"loss_reason"`
	Industry      string  `json:"industry"`
	AgeDays       int     `json:"age_days"`
	EngagementPct float64 `json:"engagement_pct"`
	AdoptionPct   float64 `json:"adoption_pct"`
	Type          string  `json:"type"`
	Plan          string  `json:"plan"`
	Churned       bool    `json:"churned"`
}

// Key implements [Record].
func (c Customer) Key() string { return c.ID }

// Validate implements [Record]. Engagement and adoption are percentage
// metrics; values outside 0-100 indicate a malformed source row.
func (c Customer) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("customer id is required")
	}
	if c.Industry == "" {
		return fmt.Errorf("customer %s: industry is required", c.ID)
	}
	if c.Type != TypeAccount && c.Type != TypeOpportunity {
		return fmt.Errorf("customer %s: unknown type %q", c.ID, c.Type)
	}
	if c.AgeDays < 0 {
		return fmt.Errorf("customer %s: negative age_days %d", c.ID, c.AgeDays)
	}
	if c.EngagementPct < 0 || c.EngagementPct > 100 {
		return fmt.Errorf("customer %s: engagement_pct %v out of range", c.ID, c.EngagementPct)
	}
	if c.AdoptionPct < 0 || c.AdoptionPct > 100 {
		return fmt.Errorf("customer %s: adoption_pct %v out of range", c.ID, c.AdoptionPct)
	}
	return nil
}

// ParseChurned converts the source dataset's "Yes"/"No" churn flag to a bool.
func ParseChurned(s string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized churned value %q", s)
	}
}

// ChurnedString renders a churn flag the way the source dataset spells it.
func ChurnedString(churned bool) string {
	if churned {
		return "Yes"
	}
	return "No"
}
