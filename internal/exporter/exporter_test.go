package exporter

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"jobpulse/internal/dataset"
	"jobpulse/internal/infrastructure"
	"jobpulse/pkg/contracts/domain"
)

func sampleJobs() []domain.JobListing {
	posted := time.Date(2023, time.April, 3, 0, 0, 0, 0, time.UTC)
	return []domain.JobListing{
		{
			ID: "1", JobTitle: "Engineer", CompanyName: "Acme, Inc.", Location: "Remote",
			Industry: "Technology", ExperienceLevel: "Mid", EmploymentType: "Full-time",
			Salary: 98000, PostedDate: "2023-04-03", Posted: posted,
			JobDescription: "Writes \"good\" code",
		},
		{
			ID: "2", JobTitle: "Nurse", CompanyName: "Umbrella", Location: "Austin",
			Industry: "Healthcare", ExperienceLevel: "Entry", EmploymentType: "Part-time",
			Salary: 61000, PostedDate: "2023-04-03", Posted: posted,
			JobDescription: "Cares",
		},
	}
}

func loader() *dataset.Loader {
	return dataset.NewLoader(infrastructure.DiscardLogger())
}

var ignoreLoadMeta = cmpopts.IgnoreFields(domain.Dataset{}, "LoadedAt", "Source")

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "XLSX", want: FormatXLSX},
		{in: " xlsx ", want: FormatXLSX},
		{in: "pdf", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/out/jobs.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatFromPath("jobs.json")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "employment_data_20240102_030405.csv", FormatCSV.FileName(now))
	assert.Equal(t, "employment_data_20240102_030405.xlsx", FormatXLSX.FileName(now))
}

func TestWriteCSVLoadsBack(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, sampleJobs())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	ds, err := loader().ReadCSV(context.Background(), &buf, "export.csv")
	require.NoError(t, err)

	want := &domain.Dataset{Jobs: sampleJobs(), Locations: []string{"Remote", "Austin"}}
	if diff := cmp.Diff(want, ds, ignoreLoadMeta); diff != "" {
		t.Errorf("csv round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "Job ID,Job Title,Company Name")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteXLSX(&buf, sampleJobs())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	header, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Job ID", header)
	salary, err := f.GetCellValue(SheetName, "H2")
	require.NoError(t, err)
	assert.Equal(t, "98000", salary)

	ds, err := loader().ReadXLSX(context.Background(), bytes.NewReader(buf.Bytes()), "export.xlsx")
	require.NoError(t, err)
	want := &domain.Dataset{Jobs: sampleJobs(), Locations: []string{"Remote", "Austin"}}
	if diff := cmp.Diff(want, ds, ignoreLoadMeta); diff != "" {
		t.Errorf("xlsx round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.csv", "nested/out.xlsx"} {
		path := filepath.Join(dir, name)
		n, err := WriteFile(path, sampleJobs())
		require.NoError(t, err, name)
		assert.Equal(t, 2, n)

		ds, err := loader().LoadFile(context.Background(), path)
		require.NoError(t, err, name)
		assert.Equal(t, 2, ds.Len())
	}

	_, err := WriteFile(filepath.Join(dir, "out.txt"), sampleJobs())
	assert.Error(t, err)
}
