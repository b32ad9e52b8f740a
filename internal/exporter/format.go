package exporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"jobpulse/internal/dataset"
	"jobpulse/pkg/contracts/domain"
)

// Format is an export file type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// FileName returns a download name stamped with the export time
func (f Format) FileName(now time.Time) string {
	return fmt.Sprintf("employment_data_%s.%s", now.UTC().Format("20060102_150405"), f)
}

// Write exports jobs in the given format and returns the rows written
func Write(w io.Writer, format Format, jobs []domain.JobListing) (int, error) {
	switch format {
	case FormatCSV:
		return WriteCSV(w, jobs)
	case FormatXLSX:
		return WriteXLSX(w, jobs)
	default:
		return 0, fmt.Errorf("unsupported export format %q", format)
	}
}

// Header returns the export header, identical to the dataset header
func Header() []string {
	return append([]string(nil), dataset.Columns...)
}

// record lays a listing out in Header order
func record(job domain.JobListing) []string {
	return []string{
		job.ID,
		job.JobTitle,
		job.CompanyName,
		job.Location,
		job.Industry,
		job.ExperienceLevel,
		job.EmploymentType,
		strconv.Itoa(job.Salary),
		job.PostedDate,
		job.JobDescription,
	}
}
