package analytics

import (
	"math"

	"jobpulse/pkg/contracts/domain"
)

// Placeholder growth figures. The dataset has no historical snapshots, so
// these are fixed values rather than derived ones.
const (
	PlaceholderJobsGrowthRate   = 12.0
	PlaceholderSalaryGrowthRate = 5.2
)

// NotAvailable names the top category of an empty set
const NotAvailable = "N/A"

// Stats computes the dashboard summary of jobs
func Stats(jobs []domain.JobListing) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalJobs:        len(jobs),
		TopLocation:      domain.ShareOf{Name: NotAvailable},
		TopIndustry:      domain.ShareOf{Name: NotAvailable},
		JobsGrowthRate:   PlaceholderJobsGrowthRate,
		SalaryGrowthRate: PlaceholderSalaryGrowthRate,
	}
	if len(jobs) == 0 {
		return stats
	}

	var sum float64
	for _, job := range jobs {
		sum += float64(job.Salary)
	}
	stats.AvgSalary = sum / float64(len(jobs))
	stats.TopLocation = topShare(jobs, func(j domain.JobListing) string { return j.Location })
	stats.TopIndustry = topShare(jobs, func(j domain.JobListing) string { return j.Industry })
	return stats
}

// topShare returns the most frequent key; ties go to the key seen first
func topShare(jobs []domain.JobListing, key KeyFunc) domain.ShareOf {
	keys := []string{}
	counts := make(map[string]int)
	for _, job := range jobs {
		k := key(job)
		if _, ok := counts[k]; !ok {
			keys = append(keys, k)
		}
		counts[k]++
	}

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return domain.ShareOf{
		Name:       best,
		Percentage: int(math.Round(float64(counts[best]) / float64(len(jobs)) * 100)),
	}
}
