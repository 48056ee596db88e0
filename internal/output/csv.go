package output

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVYearWriter writes year reports as CSV.
type CSVYearWriter struct{}

// Write outputs the year report as CSV. Files without a year get 0.
func (w *CSVYearWriter) Write(report *YearReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Path", "Year"}); err != nil {
		return err
	}
	for _, item := range report.Items {
		if err := writer.Write([]string{item.Path, strconv.Itoa(item.Year)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
