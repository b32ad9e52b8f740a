package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"jobpulse/pkg/contracts/domain"
)

// SheetName is the worksheet that holds exported listings
const SheetName = "Jobs"

// WriteXLSX writes jobs to a single-sheet workbook. Salaries are numeric
// cells so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, jobs []domain.JobListing) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to create stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	header := Header()
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, job := range jobs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return i, err
		}
		row := []interface{}{
			job.ID,
			job.JobTitle,
			job.CompanyName,
			job.Location,
			job.Industry,
			job.ExperienceLevel,
			job.EmploymentType,
			job.Salary,
			job.PostedDate,
			job.JobDescription,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return i, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return len(jobs), fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return len(jobs), fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(jobs), nil
}
