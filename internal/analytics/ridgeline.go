package analytics

import (
	"math"
	"sort"

	"jobpulse/pkg/contracts/domain"
)

// singleSpread widens the range of a title with one observation
const singleSpread = 0.10

// RidgelineOptions controls the optional parts of the ridgeline aggregate
type RidgelineOptions struct {
	// Top keeps only the n titles with the highest median salary. Zero keeps all.
	Top int
	// Density attaches a kernel density curve to every kept title
	Density    bool
	Bandwidth  float64
	Thresholds int
}

// DefaultRidgelineOptions returns the options used when none are configured
func DefaultRidgelineOptions() RidgelineOptions {
	return RidgelineOptions{
		Bandwidth:  DefaultBandwidth,
		Thresholds: DefaultThresholds,
	}
}

// Ridgeline groups salaries by job title
func Ridgeline(jobs []domain.JobListing, opts RidgelineOptions) domain.RidgelineData {
	titles, groups := groupBy(jobs, func(j domain.JobListing) string { return j.JobTitle })

	ranges := make(map[string]domain.SalaryRange, len(titles))
	for _, title := range titles {
		ranges[title] = salaryRange(groups[title])
	}

	data := domain.RidgelineData{JobTitles: titles, SalaryRanges: ranges}
	if opts.Top > 0 {
		data = keepTitles(data, TopTitlesByMedian(data, opts.Top))
	}
	if opts.Density {
		attachDensity(&data, opts)
	}
	return data
}

func salaryRange(jobs []domain.JobListing) domain.SalaryRange {
	values := make([]int, len(jobs))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, job := range jobs {
		v := float64(job.Salary)
		values[i] = job.Salary
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	r := domain.SalaryRange{Values: values, Min: lo, Max: hi}
	if len(values) == 1 {
		d := math.Max(lo*singleSpread, 1)
		r.Min = lo - d
		r.Max = hi + d
		r.Spread = true
	}
	return r
}

// TopTitlesByMedian returns up to n titles ordered by interpolated median
// salary, highest first. Equal medians keep first-seen order.
func TopTitlesByMedian(data domain.RidgelineData, n int) []string {
	medians := make(map[string]float64, len(data.JobTitles))
	for _, title := range data.JobTitles {
		medians[title] = interpolatedMedian(data.SalaryRanges[title].Values)
	}
	out := append([]string(nil), data.JobTitles...)
	sort.SliceStable(out, func(i, j int) bool { return medians[out[i]] > medians[out[j]] })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func keepTitles(data domain.RidgelineData, titles []string) domain.RidgelineData {
	ranges := make(map[string]domain.SalaryRange, len(titles))
	for _, t := range titles {
		ranges[t] = data.SalaryRanges[t]
	}
	return domain.RidgelineData{JobTitles: titles, SalaryRanges: ranges}
}

// attachDensity evaluates every title's KDE on thresholds shared across the
// titles, so curves line up on one axis
func attachDensity(data *domain.RidgelineData, opts RidgelineOptions) {
	if len(data.JobTitles) == 0 {
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range data.JobTitles {
		r := data.SalaryRanges[t]
		lo = math.Min(lo, r.Min)
		hi = math.Max(hi, r.Max)
	}
	pad := (hi - lo) * 0.05
	thresholds := Ticks(lo-pad, hi+pad, opts.Thresholds)
	kernel := Epanechnikov(opts.Bandwidth)

	for _, t := range data.JobTitles {
		r := data.SalaryRanges[t]
		r.Density = Density(kernel, thresholds, r.Values)
		data.SalaryRanges[t] = r
	}
}
