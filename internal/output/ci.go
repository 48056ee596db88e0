package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIYearWriter writes year reports as NDJSON (one JSON object per line) for CI pipelines.
type CIYearWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type         string `json:"type"`
	TotalFiles   int    `json:"totalFiles"`
	NewestYear   int    `json:"newestYear"`
	UnknownCount int    `json:"unknownCount"`
}

// CIFileEntry represents a single file entry in CI output.
type CIFileEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Year int    `json:"year"`
}

// Write outputs the year report as NDJSON.
func (w *CIYearWriter) Write(report *YearReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:         "summary",
		TotalFiles:   len(report.Items),
		NewestYear:   report.NewestYear(),
		UnknownCount: report.UnknownCount(),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, item := range report.Items {
		if err := writeNDJSONLine(out, CIFileEntry{Type: "file", Path: item.Path, Year: item.Year}); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
