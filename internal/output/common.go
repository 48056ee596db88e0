package output

import (
	"io"
	"os"
	"strconv"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

// yearLabel renders 0 as "-" for human-readable formats.
func yearLabel(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

func zoneLabel(report *YearReport) string {
	if report.TimeZone != "" {
		return report.TimeZone
	}
	if report.DateSource == "author" {
		return "author zone"
	}
	return "GMT"
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
