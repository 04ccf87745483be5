package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fathomlabs/churnlens/internal/formatter"
	"github.com/fathomlabs/churnlens/internal/reports"
	"github.com/fathomlabs/churnlens/internal/repositories"
	"github.com/fathomlabs/churnlens/internal/shared"
	tu "github.com/fathomlabs/churnlens/internal/testing"
	"github.com/urfave/cli/v3"
)

// seedDatabase provisions a SQLite file at path and loads the sample dataset.
func seedDatabase(t *testing.T, path string) {
	t.Helper()

	db, err := shared.NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := repositories.NewCustomerRepository(db).InsertMany(tu.SampleCustomers()); err != nil {
		t.Fatalf("failed to insert customers: %v", err)
	}
	if err := repositories.NewRepLinkRepository(db).InsertMany(tu.SampleLinks()); err != nil {
		t.Fatalf("failed to insert links: %v", err)
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key":"value"`) {
				t.Errorf("expected compact JSON, got %s", result)
			}
		})

		t.Run("returns error when write fails", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected write error")
			}
		})

		t.Run("returns error when newline write fails", func(t *testing.T) {
			output := &bytes.Buffer{}
			limited := tu.NewLimitedWriter(1, 0, output)
			runner := NewRunner(RunnerOpts{Output: &limited})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected newline write error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output: %q", output.String())
		}

		runner = NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writePlain("x"); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("writePlainln wraps the line in newlines", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlainln("done"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "\ndone\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("SetLogger replaces the logger", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		replacement := shared.NewLogger(&bytes.Buffer{})

		runner.SetLogger(replacement)
		if runner.logger != replacement {
			t.Error("expected logger to be replaced")
		}
	})
}

func TestEmit(t *testing.T) {
	table := &reports.Table{
		Slug:    "churn-by-type",
		Title:   "Churn By Type",
		Columns: []string{"Type", "Churned_Count", "Churn_Rate_Pct"},
		Rows:    [][]string{{"Account", "3", "60.0"}},
	}

	t.Run("writes to output stream by default", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		if err := runner.emit(table, formatter.FormatCSV, ""); err != nil {
			t.Fatalf("emit failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Type,Churned_Count,Churn_Rate_Pct") {
			t.Errorf("missing CSV header: %s", result)
		}
		if !strings.Contains(result, "Account,3,60.0") {
			t.Errorf("missing CSV row: %s", result)
		}
	})

	t.Run("writes a file when output directory is set", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		dir := t.TempDir()
		if err := runner.emit(table, formatter.FormatMarkdown, dir); err != nil {
			t.Fatalf("emit failed: %v", err)
		}

		tu.AssertFileExists(t, dir+"/churn-by-type.md")
		if !strings.Contains(output.String(), "churn-by-type") {
			t.Errorf("expected confirmation line, got: %s", output.String())
		}
	})
}

func TestReportRun(t *testing.T) {
	newApp := func(runner *Runner) *cli.Command {
		return &cli.Command{Name: "churnlens", Commands: runner.register()}
	}

	newConfig := func(t *testing.T) *shared.Config {
		t.Helper()
		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(t.TempDir(), "churnlens.db")
		seedDatabase(t, config.Database.Path)
		return config
	}

	t.Run("falls back to the configured output directory", func(t *testing.T) {
		config := newConfig(t)
		config.Output.Directory = filepath.Join(t.TempDir(), "reports")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newApp(runner)
		if err := app.Run(context.Background(), []string{"churnlens", "report", "run", "churn-by-type", "--format", "csv"}); err != nil {
			t.Fatalf("report run failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(config.Output.Directory, "churn-by-type.csv"))
	})

	t.Run("--output flag wins over the configured directory", func(t *testing.T) {
		config := newConfig(t)
		config.Output.Directory = filepath.Join(t.TempDir(), "configured")
		flagDir := filepath.Join(t.TempDir(), "flagged")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newApp(runner)
		if err := app.Run(context.Background(), []string{"churnlens", "report", "run", "churn-by-type", "--format", "csv", "--output", flagDir}); err != nil {
			t.Fatalf("report run failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(flagDir, "churn-by-type.csv"))
		if _, err := os.Stat(config.Output.Directory); !os.IsNotExist(err) {
			t.Error("configured directory should stay untouched when the flag is set")
		}
	})

	t.Run("prints to the output stream when no directory is set", func(t *testing.T) {
		config := newConfig(t)
		config.Output.Directory = ""

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newApp(runner)
		if err := app.Run(context.Background(), []string{"churnlens", "report", "run", "churn-by-type", "--format", "csv"}); err != nil {
			t.Fatalf("report run failed: %v", err)
		}

		if !strings.Contains(output.String(), "Type,Churned_Count,Churn_Percentage") {
			t.Errorf("expected CSV on the output stream, got: %s", output.String())
		}
	})
}

func TestReportList(t *testing.T) {
	newApp := func(runner *Runner) *cli.Command {
		return &cli.Command{Name: "churnlens", Commands: runner.register()}
	}

	t.Run("plain output names every report", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newApp(runner)
		if err := app.Run(context.Background(), []string{"churnlens", "report", "list"}); err != nil {
			t.Fatalf("report list failed: %v", err)
		}

		result := output.String()
		for _, def := range reports.All() {
			if !strings.Contains(result, def.Slug) {
				t.Errorf("missing report %s in output", def.Slug)
			}
		}
	})

	t.Run("json output is a slug/title array", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newApp(runner)
		if err := app.Run(context.Background(), []string{"churnlens", "report", "list", "--json"}); err != nil {
			t.Fatalf("report list failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `"slug": "segment-profile"`) {
			t.Errorf("missing slug field in JSON output: %s", result)
		}
		if !strings.Contains(result, `"title"`) {
			t.Errorf("missing title field in JSON output: %s", result)
		}
	})
}
