package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleYearWriter writes year reports to the console.
type ConsoleYearWriter struct{}

// Write outputs the year report as an aligned table.
func (w *ConsoleYearWriter) Write(report *YearReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Year of Last Change")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Date source: %s (%s), max commits: %d\n", report.DateSource, zoneLabel(report), report.MaxCommits)
	fmt.Fprintf(out, "Total files: %d\n\n", len(report.Items))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Path\tYear")

	newest := report.NewestYear()
	colorNewest := color.New(color.FgYellow)
	colorUnknown := color.New(color.FgRed)
	for _, item := range report.Items {
		label := yearLabel(item.Year)
		switch {
		case item.Year == 0:
			label = colorUnknown.Sprint(label)
		case item.Year == newest:
			label = colorNewest.Sprint(label)
		}
		fmt.Fprintf(tw, "%s\t%s\n", item.Path, label)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if unknown := report.UnknownCount(); unknown > 0 {
		fmt.Fprintf(out, "\n%d file(s) had no change within the last %d commits\n", unknown, report.MaxCommits)
	}
	return nil
}
