// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/fathomlabs/churnlens/internal/models"
)

// SampleCustomers returns a small CRM dataset covering churned and retained
// customers across three industries, both entity types, and every churn
// reason category.
func SampleCustomers() []models.Customer {
	return []models.Customer{
		{ID: "c1", Name: "Acme Stores", LossReason: "Cost", Industry: "Retail", AgeDays: 100, EngagementPct: 20, AdoptionPct: 10, Type: models.TypeAccount, Plan: "Basic", Churned: true},
		{ID: "c2", Name: "Brightmart", LossReason: "Cost", Industry: "Retail", AgeDays: 200, EngagementPct: 40, AdoptionPct: 90, Type: models.TypeOpportunity, Plan: "Pro", Churned: true},
		{ID: "c3", Name: "Cornerline", LossReason: "Support", Industry: "Retail", AgeDays: 50, EngagementPct: 25, AdoptionPct: 30, Type: models.TypeAccount, Plan: "Basic", Churned: true},
		{ID: "c4", Name: "Dataforge", LossReason: "Features", Industry: "SaaS", AgeDays: 300, EngagementPct: 80, AdoptionPct: 60, Type: models.TypeAccount, Plan: "Enterprise", Churned: true},
		{ID: "c5", Name: "Evertool", LossReason: "Competitor", Industry: "SaaS", AgeDays: 120, EngagementPct: 10, AdoptionPct: 20, Type: models.TypeOpportunity, Plan: "Basic", Churned: true},
		{ID: "c6", Name: "Fairway Goods", LossReason: models.LossReasonNA, Industry: "Retail", AgeDays: 400, EngagementPct: 90, AdoptionPct: 85, Type: models.TypeAccount, Plan: "Pro", Churned: false},
		{ID: "c7", Name: "Gardenly", LossReason: models.LossReasonNA, Industry: "Retail", AgeDays: 150, EngagementPct: 75, AdoptionPct: 65, Type: models.TypeOpportunity, Plan: "Basic", Churned: false},
		{ID: "c8", Name: "Hexaplan", LossReason: models.LossReasonNA, Industry: "SaaS", AgeDays: 500, EngagementPct: 95, AdoptionPct: 92, Type: models.TypeAccount, Plan: "Enterprise", Churned: false},
		{ID: "c9", Name: "Inkline", LossReason: models.LossReasonNA, Industry: "SaaS", AgeDays: 60, EngagementPct: 30, AdoptionPct: 40, Type: models.TypeAccount, Plan: "Basic", Churned: false},
		{ID: "c10", Name: "Junipero", LossReason: models.LossReasonNA, Industry: "Finance", AgeDays: 90, EngagementPct: 55, AdoptionPct: 50, Type: models.TypeOpportunity, Plan: "Pro", Churned: false},
	}
}

// SampleLinks returns owner links for [SampleCustomers], including one link
// to a nonexistent customer to exercise inner-join exclusion.
func SampleLinks() []models.RepLink {
	return []models.RepLink{
		{CustomerID: "c1", Owner: "Dana"},
		{CustomerID: "c2", Owner: "Lee"},
		{CustomerID: "c3", Owner: "Dana"},
		{CustomerID: "c4", Owner: "Dana"},
		{CustomerID: "c5", Owner: "Lee"},
		{CustomerID: "c6", Owner: "Dana"},
		{CustomerID: "c7", Owner: "Lee"},
		{CustomerID: "c8", Owner: "Priya"},
		{CustomerID: "c9", Owner: "Priya"},
		{CustomerID: "c10", Owner: "Dana"},
		{CustomerID: "c99", Owner: "Ghost"},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
