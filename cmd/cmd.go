// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that reads the TOML config.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a configuration file from the bundled template",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing configuration file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// loadCommand handles CSV dataset imports.
func loadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load CRM dataset files into the database",
		Commands: []*cli.Command{
			{
				Name:  "customers",
				Usage: "Load the customers CSV",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to customers CSV (defaults to dataset.customers_csv)",
					},
				},
				Action: r.LoadCustomers,
			},
			{
				Name:  "reps",
				Usage: "Load the representative links CSV",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to reps CSV (defaults to dataset.reps_csv)",
					},
				},
				Action: r.LoadReps,
			},
		},
	}
}

// reportCommand handles running and listing reports.
func reportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "report",
		Aliases: []string{"rep"},
		Usage:   "Run churn & retention reports",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List available reports",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ReportList,
			},
			{
				Name:  "run",
				Usage: "Run one report by slug, or 'all' for the full suite",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "slug",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: table, csv, markdown, json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write reports to files under this directory instead of stdout",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Maximum reports computed in parallel when running all (0 = unlimited)",
						Value: 4,
					},
				},
				Action: r.ReportRun,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive report browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing reports",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.TUI,
	}
}
