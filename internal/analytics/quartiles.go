package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"jobpulse/pkg/contracts/domain"
)

// RankConvention selects how a quantile is mapped to an index of the sorted sample
type RankConvention int

const (
	// RankNearest picks index ⌈p·n⌉−1, the classical nearest-rank rule
	RankNearest RankConvention = iota
	// RankFloor picks index ⌊p·n⌋
	RankFloor
)

// String returns the configuration name of the convention
func (r RankConvention) String() string {
	switch r {
	case RankFloor:
		return "floor"
	default:
		return "nearest"
	}
}

// ParseRankConvention parses a configuration value
func ParseRankConvention(s string) (RankConvention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest", "nearest-rank":
		return RankNearest, nil
	case "floor":
		return RankFloor, nil
	default:
		return RankNearest, fmt.Errorf("unknown rank convention %q", s)
	}
}

func (r RankConvention) index(p float64, n int) int {
	var i int
	switch r {
	case RankFloor:
		i = int(math.Floor(p * float64(n)))
	default:
		i = int(math.Ceil(p*float64(n))) - 1
	}
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i
}

// Quartiles holds the rank-selected quartiles of a sample
type Quartiles struct {
	Q1     int
	Median int
	Q3     int
}

// IQR returns Q3−Q1
func (q Quartiles) IQR() int {
	return q.Q3 - q.Q1
}

// Fences returns the 1.5×IQR outlier bounds
func (q Quartiles) Fences() (lower, upper float64) {
	iqr := float64(q.IQR())
	return float64(q.Q1) - 1.5*iqr, float64(q.Q3) + 1.5*iqr
}

// ComputeQuartiles returns the quartiles of values. Values are not interpolated;
// each quartile is an element of the sample. The input slice is not modified.
func ComputeQuartiles(values []int, rank RankConvention) Quartiles {
	if len(values) == 0 {
		return Quartiles{}
	}
	sorted := sortedCopy(values)
	return quartilesOfSorted(sorted, rank)
}

func quartilesOfSorted(sorted []int, rank RankConvention) Quartiles {
	n := len(sorted)
	return Quartiles{
		Q1:     sorted[rank.index(0.25, n)],
		Median: sorted[rank.index(0.5, n)],
		Q3:     sorted[rank.index(0.75, n)],
	}
}

func sortedCopy(values []int) []int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	return sorted
}

// IdentifyOutliers splits the salaries of jobs into values inside the 1.5×IQR
// fences of the full sample and outliers outside them. Samples with fewer than
// four values never produce outliers.
func IdentifyOutliers(jobs []domain.JobListing, rank RankConvention) (clean []int, outliers []domain.Outlier) {
	outliers = []domain.Outlier{}
	values := make([]int, len(jobs))
	for i, job := range jobs {
		values[i] = job.Salary
	}
	if len(values) < 4 {
		return values, outliers
	}

	lower, upper := ComputeQuartiles(values, rank).Fences()
	clean = make([]int, 0, len(values))
	for _, job := range jobs {
		v := float64(job.Salary)
		if v < lower || v > upper {
			outliers = append(outliers, domain.Outlier{
				ID:          job.ID,
				Value:       job.Salary,
				JobTitle:    job.JobTitle,
				CompanyName: job.CompanyName,
			})
			continue
		}
		clean = append(clean, job.Salary)
	}
	return clean, outliers
}

// Summarize returns the five-number summary of values
func Summarize(values []int, rank RankConvention) domain.BoxSummary {
	if len(values) == 0 {
		return domain.BoxSummary{Outliers: []domain.Outlier{}}
	}
	sorted := sortedCopy(values)
	q := quartilesOfSorted(sorted, rank)
	return domain.BoxSummary{
		Min:      sorted[0],
		Q1:       q.Q1,
		Median:   q.Median,
		Q3:       q.Q3,
		Max:      sorted[len(sorted)-1],
		Count:    len(sorted),
		Outliers: []domain.Outlier{},
	}
}

// interpolatedMedian is the linear-interpolation median used for ordering, not
// for the box plot summaries
func interpolatedMedian(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}
