package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/gityear/config"
	"github.com/masmgr/gityear/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gityear",
		Usage:   "Report the year each file in a Git repository last changed",
		Version: "1.0.0",
		Commands: []*cli.Command{
			YearCmd(),
			ScanCmd(),
			ConfigCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
	}
}

// Common flags shared across lookup commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "date-source",
			Usage: "Commit timestamp to use (committer, author)",
		},
		&cli.StringFlag{
			Name:  "time-zone",
			Usage: "IANA time zone for committer dates (default: GMT)",
		},
		&cli.IntFlag{
			Name:  "max-commits",
			Usage: "Number of history commits to inspect per file",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History backend (go-git, git)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Trace visited commits to stderr",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	return output.ParseFormat(s)
}

// loadConfig loads configuration from file or defaults and applies CLI overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("date-source") {
		cfg.Lookup.DateSource = c.String("date-source")
	}
	if c.IsSet("time-zone") {
		cfg.Lookup.TimeZone = c.String("time-zone")
	}
	if c.IsSet("max-commits") {
		cfg.Lookup.MaxCommits = c.Int("max-commits")
	}
	if c.IsSet("backend") {
		cfg.Lookup.Backend = c.String("backend")
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
