package cmd

import (
	"fmt"
	"time"

	"github.com/masmgr/gityear/internal/output"
	"github.com/masmgr/gityear/internal/scan"
	"github.com/urfave/cli/v2"
)

// ScanCmd returns the scan command.
func ScanCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	)

	return &cli.Command{
		Name:      "scan",
		Aliases:   []string{"s"},
		Usage:     "Report the year of last change for every file under a directory",
		ArgsUsage: "[DIR]",
		Flags:     flags,
		Action:    scanAction,
	}
}

func scanAction(c *cli.Context) error {
	start := time.Now()

	dir := "."
	if c.NArg() > 0 {
		dir = c.Args().Get(0)
	}

	ctx, err := NewCommandContext(c, dir)
	if err != nil {
		return err
	}
	defer ctx.Close()

	result, err := scan.Run(c.Context, ctx.Lookup, dir, scan.Options{
		Include: ctx.Config.Filters.Include,
		Exclude: ctx.Config.Filters.Exclude,
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	report := &output.YearReport{
		RepoPath:    ctx.Lookup.Root(),
		GeneratedAt: time.Now(),
		DateSource:  ctx.Lookup.Config().DateSource().String(),
		TimeZone:    ctx.Config.Lookup.TimeZone,
		MaxCommits:  ctx.Lookup.Config().MaxCommits(),
		Items:       result.Items,
	}

	format := getOutputFormat(c.String("format"))
	writer := output.NewYearReportWriter(format)
	if err := writer.Write(report, output.OutputOptions{Format: format, OutputPath: c.String("output")}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "\nCompleted in %s\n", time.Since(start))
	return nil
}
