package output

import (
	"fmt"
	"strings"
)

// MarkdownYearWriter writes year reports as Markdown.
type MarkdownYearWriter struct{}

// Write outputs the year report as a Markdown table.
func (w *MarkdownYearWriter) Write(report *YearReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Year of Last Change")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Generated:** %s\n\n", report.GeneratedAt.Format(reportDateTimeLayout))
	fmt.Fprintf(out, "**Date Source:** %s (%s), **Max Commits:** %d\n\n", report.DateSource, zoneLabel(report), report.MaxCommits)
	fmt.Fprintf(out, "**Total Files:** %d\n\n", len(report.Items))

	fmt.Fprintln(out, "| Path | Year |")
	fmt.Fprintln(out, "|------|------|")
	for _, item := range report.Items {
		fmt.Fprintf(out, "| `%s` | %s |\n", escapeMarkdown(item.Path), yearLabel(item.Year))
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
