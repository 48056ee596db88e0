package output

import (
	"time"

	"github.com/masmgr/gityear/internal/scan"
)

// Compile-time interface conformance checks.
var (
	_ YearReportWriter = (*ConsoleYearWriter)(nil)
	_ YearReportWriter = (*JSONYearWriter)(nil)
	_ YearReportWriter = (*CSVYearWriter)(nil)
	_ YearReportWriter = (*MarkdownYearWriter)(nil)
	_ YearReportWriter = (*CIYearWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// ParseFormat maps a flag value to an OutputFormat. Unknown values fall back to console.
func ParseFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	case "markdown", "md":
		return FormatMarkdown
	case "ci", "ndjson":
		return FormatCI
	default:
		return FormatConsole
	}
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// YearReport holds the results of a scan.
type YearReport struct {
	RepoPath    string
	GeneratedAt time.Time
	DateSource  string
	TimeZone    string // empty when no override is set
	MaxCommits  int
	Items       []scan.Item
}

// NewestYear returns the largest year among the items, or 0.
func (r *YearReport) NewestYear() int {
	res := scan.Result{Items: r.Items}
	return res.NewestYear()
}

// UnknownCount returns how many items have no year within the budget.
func (r *YearReport) UnknownCount() int {
	res := scan.Result{Items: r.Items}
	return res.UnknownCount()
}

// YearReportWriter writes year reports.
type YearReportWriter interface {
	Write(report *YearReport, options OutputOptions) error
}

// NewYearReportWriter creates a report writer for the specified format.
func NewYearReportWriter(format OutputFormat) YearReportWriter {
	switch format {
	case FormatJSON:
		return &JSONYearWriter{}
	case FormatCSV:
		return &CSVYearWriter{}
	case FormatMarkdown:
		return &MarkdownYearWriter{}
	case FormatCI:
		return &CIYearWriter{}
	default:
		return &ConsoleYearWriter{}
	}
}
