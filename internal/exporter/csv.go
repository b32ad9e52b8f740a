package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"jobpulse/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV streams jobs as CSV with a BOM and header row
func WriteCSV(w io.Writer, jobs []domain.JobListing) (int, error) {
	if _, err := w.Write(utf8BOM); err != nil {
		return 0, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Header()); err != nil {
		return 0, fmt.Errorf("failed to write headers: %w", err)
	}

	for i, job := range jobs {
		if err := writer.Write(record(job)); err != nil {
			return i, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return len(jobs), fmt.Errorf("failed to flush csv: %w", err)
	}
	return len(jobs), nil
}

// WriteFile exports jobs to path, choosing the format from its extension.
// Parent directories are created as needed.
func WriteFile(path string, jobs []domain.JobListing) (int, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := Write(file, format, jobs)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close file: %w", closeErr)
	}
	return n, err
}
