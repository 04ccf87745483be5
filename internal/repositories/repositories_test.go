package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fathomlabs/churnlens/internal/models"
	"github.com/fathomlabs/churnlens/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// a second pooled connection would see a separate in-memory database
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testCustomer(id, industry string, churned bool) models.Customer {
	reason := models.LossReasonNA
	if churned {
		reason = "Pricing"
	}
	return models.Customer{
		ID:            id,
		Name:          "Customer " + id,
		LossReason:    reason,
		Industry:      industry,
		AgeDays:       365,
		EngagementPct: 55,
		AdoptionPct:   40,
		Type:          models.TypeAccount,
		Plan:          "Pro",
		Churned:       churned,
	}
}

func TestCustomerRepository(t *testing.T) {
	t.Run("Insert and List", func(t *testing.T) {
		repo := NewCustomerRepository(newTestDB(t))

		if err := repo.Insert(testCustomer("c1", "Retail", true)); err != nil {
			t.Fatalf("failed to insert customer: %v", err)
		}

		customers, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list customers: %v", err)
		}
		if len(customers) != 1 {
			t.Fatalf("expected 1 customer, got %d", len(customers))
		}
		if customers[0].ID != "c1" || !customers[0].Churned {
			t.Errorf("unexpected customer: %+v", customers[0])
		}
	})

	t.Run("Insert rejects invalid record", func(t *testing.T) {
		repo := NewCustomerRepository(newTestDB(t))

		bad := testCustomer("c1", "Retail", false)
		bad.EngagementPct = 140

		if err := repo.Insert(bad); err == nil {
			t.Error("expected validation error for out-of-range engagement")
		}
	})

	t.Run("InsertMany preserves input order", func(t *testing.T) {
		repo := NewCustomerRepository(newTestDB(t))

		batch := []models.Customer{
			testCustomer("c3", "Retail", false),
			testCustomer("c1", "SaaS", true),
			testCustomer("c2", "Retail", true),
		}
		if err := repo.InsertMany(batch); err != nil {
			t.Fatalf("failed to insert batch: %v", err)
		}

		customers, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list customers: %v", err)
		}
		if len(customers) != 3 {
			t.Fatalf("expected 3 customers, got %d", len(customers))
		}
		for i, want := range []string{"c3", "c1", "c2"} {
			if customers[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, customers[i].ID)
			}
		}
	})

	t.Run("InsertMany rolls back on duplicate id", func(t *testing.T) {
		repo := NewCustomerRepository(newTestDB(t))

		batch := []models.Customer{
			testCustomer("c1", "Retail", false),
			testCustomer("c1", "Retail", false),
		}
		if err := repo.InsertMany(batch); err == nil {
			t.Fatal("expected duplicate id to fail the batch")
		}

		n, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count customers: %v", err)
		}
		if n != 0 {
			t.Errorf("expected empty table after rollback, got %d rows", n)
		}
	})

	t.Run("List criteria", func(t *testing.T) {
		repo := NewCustomerRepository(newTestDB(t))

		if err := repo.InsertMany([]models.Customer{
			testCustomer("c1", "Retail", true),
			testCustomer("c2", "SaaS", true),
			testCustomer("c3", "Retail", false),
		}); err != nil {
			t.Fatalf("failed to insert batch: %v", err)
		}

		churned, err := repo.List(map[string]any{"churned": true})
		if err != nil {
			t.Fatalf("failed to list churned: %v", err)
		}
		if len(churned) != 2 {
			t.Errorf("expected 2 churned customers, got %d", len(churned))
		}

		retail, err := repo.List(map[string]any{"churned": true, "industry": "Retail"})
		if err != nil {
			t.Fatalf("failed to list churned retail: %v", err)
		}
		if len(retail) != 1 || retail[0].ID != "c1" {
			t.Errorf("expected only c1, got %+v", retail)
		}
	})
}

func TestRepLinkRepository(t *testing.T) {
	t.Run("InsertMany and List", func(t *testing.T) {
		repo := NewRepLinkRepository(newTestDB(t))

		links := []models.RepLink{
			{CustomerID: "c1", Owner: "Dana"},
			{CustomerID: "c2", Owner: "Lee"},
			{CustomerID: "c3", Owner: "Dana"},
		}
		if err := repo.InsertMany(links); err != nil {
			t.Fatalf("failed to insert links: %v", err)
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list links: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 links, got %d", len(all))
		}

		dana, err := repo.List(map[string]any{"owner": "Dana"})
		if err != nil {
			t.Fatalf("failed to list by owner: %v", err)
		}
		if len(dana) != 2 {
			t.Errorf("expected 2 links for Dana, got %d", len(dana))
		}
	})

	t.Run("Insert rejects empty owner", func(t *testing.T) {
		repo := NewRepLinkRepository(newTestDB(t))

		if err := repo.Insert(models.RepLink{CustomerID: "c1"}); err == nil {
			t.Error("expected validation error for empty owner")
		}
	})
}

func TestImportRepository(t *testing.T) {
	t.Run("Insert and List newest first", func(t *testing.T) {
		repo := NewImportRepository(newTestDB(t))

		older := models.ImportBatch{
			ID:         shared.GenerateID(),
			Kind:       models.ImportKindCustomers,
			SourceFile: "customers_q1.csv",
			RowCount:   120,
			LoadedAt:   time.Now().Add(-time.Hour),
		}
		newer := models.ImportBatch{
			ID:           shared.GenerateID(),
			Kind:         models.ImportKindReps,
			SourceFile:   "reps_q1.csv",
			RowCount:     8,
			SkippedCount: 1,
			LoadedAt:     time.Now(),
		}

		for _, b := range []models.ImportBatch{older, newer} {
			if err := repo.Insert(b); err != nil {
				t.Fatalf("failed to insert batch: %v", err)
			}
		}

		batches, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list batches: %v", err)
		}
		if len(batches) != 2 {
			t.Fatalf("expected 2 batches, got %d", len(batches))
		}
		if batches[0].ID != newer.ID {
			t.Errorf("expected newest batch first, got %s", batches[0].SourceFile)
		}

		reps, err := repo.List(map[string]any{"kind": models.ImportKindReps})
		if err != nil {
			t.Fatalf("failed to list by kind: %v", err)
		}
		if len(reps) != 1 || reps[0].SkippedCount != 1 {
			t.Errorf("unexpected reps batches: %+v", reps)
		}
	})

	t.Run("Insert rejects unknown kind", func(t *testing.T) {
		repo := NewImportRepository(newTestDB(t))

		bad := models.ImportBatch{ID: "x", Kind: "tracks", SourceFile: "f.csv", LoadedAt: time.Now()}
		if err := repo.Insert(bad); err == nil {
			t.Error("expected validation error for unknown kind")
		}
	})
}
