package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONYearWriter writes year reports as JSON.
type JSONYearWriter struct{}

// JSONYearReport is the JSON output structure for a year report.
type JSONYearReport struct {
	RepoPath    string         `json:"repo"`
	GeneratedAt string         `json:"generatedAt"`
	DateSource  string         `json:"dateSource"`
	TimeZone    string         `json:"timeZone,omitempty"`
	MaxCommits  int            `json:"maxCommits"`
	TotalFiles  int            `json:"totalFiles"`
	NewestYear  int            `json:"newestYear"`
	Items       []JSONYearItem `json:"items"`
}

// JSONYearItem is the JSON output structure for a single file.
type JSONYearItem struct {
	Path string `json:"path"`
	Year int    `json:"year"`
}

// Write outputs the year report as JSON.
func (w *JSONYearWriter) Write(report *YearReport, options OutputOptions) error {
	items := make([]JSONYearItem, len(report.Items))
	for i, item := range report.Items {
		items[i] = JSONYearItem{Path: item.Path, Year: item.Year}
	}

	jsonReport := JSONYearReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		DateSource:  report.DateSource,
		TimeZone:    report.TimeZone,
		MaxCommits:  report.MaxCommits,
		TotalFiles:  len(report.Items),
		NewestYear:  report.NewestYear(),
		Items:       items,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
