package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fathomlabs/churnlens/internal/models"
	"github.com/fathomlabs/churnlens/internal/shared"
	"github.com/fathomlabs/churnlens/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LoadCustomers imports the customers CSV into the database.
func (r *Runner) LoadCustomers(ctx context.Context, cmd *cli.Command) error {
	return r.load(cmd, models.ImportKindCustomers)
}

// LoadReps imports the representative links CSV into the database.
func (r *Runner) LoadReps(ctx context.Context, cmd *cli.Command) error {
	return r.load(cmd, models.ImportKindReps)
}

func (r *Runner) load(cmd *cli.Command, kind string) error {
	config := r.loadConfig(cmd)

	path := cmd.String("file")
	if path == "" {
		switch kind {
		case models.ImportKindCustomers:
			path = config.Dataset.CustomersCSV
		case models.ImportKindReps:
			path = config.Dataset.RepsCSV
		}
	}
	if path == "" {
		return fmt.Errorf("%w: no CSV path given and none configured", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	importer := tasks.NewImporter(db, r.logger)

	var batch *models.ImportBatch
	switch kind {
	case models.ImportKindCustomers:
		batch, err = importer.ImportCustomers(f, path)
	case models.ImportKindReps:
		batch, err = importer.ImportReps(f, path)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.writePlain("✓ Loaded %d %s rows from %s", batch.RowCount, kind, path)
	if batch.SkippedCount > 0 {
		r.writePlain(" (%d malformed rows skipped)", batch.SkippedCount)
	}
	r.writePlain("\n")

	return nil
}
