package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "jobpulse/internal/errors"
	"jobpulse/pkg/contracts/domain"
)

// dateLayouts are tried in order when parsing the Posted Date column
var dateLayouts = []string{
	domain.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
}

var (
	errFieldCount = errors.New("wrong number of fields")
	errEmptyID    = errors.New("empty job id")
)

// rowParser maps header names to record positions
type rowParser struct {
	index  map[string]int
	fields int
	// pad lets short rows through; spreadsheets drop trailing empty cells
	pad bool
}

func newRowParser(header []string, pad bool) (*rowParser, error) {
	p := &rowParser{index: make(map[string]int, len(header)), fields: len(header), pad: pad}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := p.index[name]; !dup {
			p.index[name] = i
		}
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := p.index[col]; !ok && !optionalColumns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewParsingError("dataset header is missing required columns", nil).
			WithContext("missing", missing)
	}
	return p, nil
}

func (p *rowParser) cell(record []string, col string) string {
	i, ok := p.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parse converts one record into a listing
func (p *rowParser) parse(record []string) (domain.JobListing, error) {
	if len(record) != p.fields && !(p.pad && len(record) < p.fields) {
		return domain.JobListing{}, fmt.Errorf("%w: got %d, want %d", errFieldCount, len(record), p.fields)
	}

	job := domain.JobListing{
		ID:              p.cell(record, ColumnID),
		JobTitle:        p.cell(record, ColumnJobTitle),
		CompanyName:     p.cell(record, ColumnCompanyName),
		Location:        p.cell(record, ColumnLocation),
		Industry:        p.cell(record, ColumnIndustry),
		ExperienceLevel: p.cell(record, ColumnExperienceLevel),
		EmploymentType:  p.cell(record, ColumnEmploymentType),
		JobDescription:  p.cell(record, ColumnJobDescription),
	}
	if job.ID == "" {
		return domain.JobListing{}, errEmptyID
	}

	salary, err := ParseSalary(p.cell(record, ColumnSalary))
	if err != nil {
		return domain.JobListing{}, err
	}
	job.Salary = salary

	posted, err := ParseDate(p.cell(record, ColumnPostedDate))
	if err != nil {
		return domain.JobListing{}, err
	}
	job.Posted = posted
	job.PostedDate = posted.Format(domain.DateLayout)

	return job, nil
}

// maxSalary bounds accepted amounts so aggregates stay in int range
const maxSalary = math.MaxInt32

// ParseSalary reads a whole-dollar amount. Currency symbols and thousands
// separators are ignored; fractional dollars are truncated.
func ParseSalary(raw string) (int, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty salary")
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid salary %q: %w", raw, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid salary %q", raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative salary %q", raw)
	}
	if f > maxSalary {
		return 0, fmt.Errorf("salary %q out of range", raw)
	}
	return int(f), nil
}

// ParseDate reads a posting date in any of the accepted layouts. A bare
// number is taken as an Excel serial date.
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty posted date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid posted date %q", raw)
}
