package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fathomlabs/churnlens/internal/shared"
	"github.com/fathomlabs/churnlens/internal/tasks"
	"github.com/fathomlabs/churnlens/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing reports.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

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

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/churnlens-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, dataset)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
