package analytics

import (
	"jobpulse/pkg/contracts/domain"
)

// KeyFunc extracts a categorical key from a listing
type KeyFunc func(domain.JobListing) string

type cell struct {
	count int
	sum   float64
}

// CrossTab accumulates count and salary sum for every pair of row and column
// keys. Rows and Cols are in first-seen order.
type CrossTab struct {
	Rows  []string
	Cols  []string
	cells map[string]map[string]cell
}

// NewCrossTab tabulates jobs by the two keys
func NewCrossTab(jobs []domain.JobListing, row, col KeyFunc) *CrossTab {
	ct := &CrossTab{
		Rows:  []string{},
		Cols:  []string{},
		cells: make(map[string]map[string]cell),
	}
	seenCols := make(map[string]bool)
	for _, job := range jobs {
		r, c := row(job), col(job)
		if _, ok := ct.cells[r]; !ok {
			ct.Rows = append(ct.Rows, r)
			ct.cells[r] = make(map[string]cell)
		}
		if !seenCols[c] {
			seenCols[c] = true
			ct.Cols = append(ct.Cols, c)
		}
		v := ct.cells[r][c]
		v.count++
		v.sum += float64(job.Salary)
		ct.cells[r][c] = v
	}
	return ct
}

// Count returns the number of jobs in a cell
func (ct *CrossTab) Count(row, col string) int {
	return ct.cells[row][col].count
}

// Mean returns the average salary of a cell, or 0 for an empty cell
func (ct *CrossTab) Mean(row, col string) float64 {
	c := ct.cells[row][col]
	if c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}

// Counts returns the zero-filled count matrix
func (ct *CrossTab) Counts() map[string]map[string]int {
	out := make(map[string]map[string]int, len(ct.Rows))
	for _, r := range ct.Rows {
		out[r] = make(map[string]int, len(ct.Cols))
		for _, c := range ct.Cols {
			out[r][c] = ct.Count(r, c)
		}
	}
	return out
}

// Means returns the zero-filled average salary matrix
func (ct *CrossTab) Means() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(ct.Rows))
	for _, r := range ct.Rows {
		out[r] = make(map[string]float64, len(ct.Cols))
		for _, c := range ct.Cols {
			out[r][c] = ct.Mean(r, c)
		}
	}
	return out
}

// GroupedBar averages salary per location and industry
func GroupedBar(jobs []domain.JobListing) domain.GroupedBarData {
	ct := NewCrossTab(jobs,
		func(j domain.JobListing) string { return j.Location },
		func(j domain.JobListing) string { return j.Industry })
	return domain.GroupedBarData{
		Locations:  ct.Rows,
		Industries: ct.Cols,
		Data:       ct.Means(),
	}
}

// StackedBar counts postings per industry and employment type
func StackedBar(jobs []domain.JobListing) domain.StackedBarData {
	ct := NewCrossTab(jobs,
		func(j domain.JobListing) string { return j.Industry },
		func(j domain.JobListing) string { return j.EmploymentType })
	return domain.StackedBarData{
		Industries:      ct.Rows,
		EmploymentTypes: ct.Cols,
		Data:            ct.Counts(),
	}
}
