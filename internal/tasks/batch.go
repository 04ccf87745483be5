package tasks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fathomlabs/churnlens/internal/reports"
	"github.com/fathomlabs/churnlens/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// ReportResult is the outcome of one report in a batch run. Err is set when
// that report failed; other reports in the batch are unaffected.
type ReportResult struct {
	Slug  string
	Title string
	Table *reports.Table
	Err   error
}

// LoadDataset reads both input relations from the database into memory,
// preserving insertion order.
func LoadDataset(db *sql.DB) (*reports.Dataset, error) {
	customers, err := repositories.NewCustomerRepository(db).List(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	links, err := repositories.NewRepLinkRepository(db).List(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load rep links: %w", err)
	}

	return reports.NewDataset(customers, links), nil
}

// RunAll executes the full report suite concurrently over ds. Reports are
// independent and read-only, so execution order is unconstrained; results
// come back in registry order regardless. A failing report only marks its
// own slot.
func RunAll(ctx context.Context, ds *reports.Dataset, limit int) []ReportResult {
	defs := reports.All()
	results := make([]ReportResult, len(defs))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ReportResult{Slug: def.Slug, Title: def.Title, Err: err}
				return nil
			}

			table, err := def.Run(ds)
			results[i] = ReportResult{Slug: def.Slug, Title: def.Title, Table: table, Err: err}
			return nil
		})
	}

	g.Wait()
	return results
}
