package main

import (
	"context"
	"fmt"

	"github.com/fathomlabs/churnlens/internal/formatter"
	"github.com/fathomlabs/churnlens/internal/reports"
	"github.com/fathomlabs/churnlens/internal/shared"
	"github.com/fathomlabs/churnlens/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ReportList prints the available reports.
func (r *Runner) ReportList(ctx context.Context, cmd *cli.Command) error {
	defs := reports.All()

	if cmd.Bool("json") {
		type entry struct {
			Slug  string `json:"slug"`
			Title string `json:"title"`
		}
		entries := make([]entry, len(defs))
		for i, def := range defs {
			entries[i] = entry{Slug: def.Slug, Title: def.Title}
		}
		return r.writeJSON(entries, true)
	}

	r.writePlainHeader("Available Reports")
	for _, def := range defs {
		r.writePlain("%-28s %s\n", def.Slug, def.Title)
	}
	r.writePlain("\nRun one with 'churnlens report run <slug>', or 'report run all' for the full suite\n")

	return nil
}

// ReportRun runs one report by slug, or the full suite when the slug is "all".
func (r *Runner) ReportRun(ctx context.Context, cmd *cli.Command) error {
	slug := cmd.StringArg("slug")
	if slug == "" {
		return fmt.Errorf("%w: report slug (or 'all') is required", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd)

	format := cmd.String("format")
	if format == "" {
		format = config.Output.Format
	}
	format, err := formatter.ParseFormat(format)
	if err != nil {
		return err
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = config.Output.Directory
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	dataset, err := tasks.LoadDataset(db)
	if err != nil {
		return err
	}
	if len(dataset.Customers) == 0 {
		return fmt.Errorf("%w: no customers loaded, run 'churnlens load customers' first", shared.ErrEmptyDataset)
	}

	if slug == "all" {
		return r.runAllReports(ctx, dataset, format, outputDir, int(cmd.Int("concurrency")))
	}

	def, err := reports.Get(slug)
	if err != nil {
		return err
	}

	table, err := def.Run(dataset)
	if err != nil {
		return fmt.Errorf("report %s failed: %w", slug, err)
	}

	return r.emit(table, format, outputDir)
}

func (r *Runner) runAllReports(ctx context.Context, dataset *reports.Dataset, format, outputDir string, concurrency int) error {
	results := tasks.RunAll(ctx, dataset, concurrency)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			r.logger.Error("report failed", "slug", result.Slug, "error", result.Err)
			failed++
			continue
		}
		if err := r.emit(result.Table, format, outputDir); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed", failed, len(results))
	}

	return nil
}

// emit writes a rendered report to the output directory when one is set, and
// to the runner's output stream otherwise.
func (r *Runner) emit(table *reports.Table, format, outputDir string) error {
	if outputDir != "" {
		path, err := formatter.WriteExport(table, format, outputDir)
		if err != nil {
			return err
		}
		r.logger.Info("report written", "slug", table.Slug, "path", path)
		return r.writePlain("✓ %s → %s\n", table.Slug, path)
	}

	data, err := formatter.Render(table, format)
	if err != nil {
		return err
	}

	if err := r.writePlain("%s", data); err != nil {
		return err
	}
	return r.writePlain("\n")
}
