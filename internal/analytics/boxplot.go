package analytics

import (
	"jobpulse/pkg/contracts/domain"
)

// BoxPlot summarises salaries per experience level. Outliers are judged against
// the quartiles of the whole group; the summary covers the remaining values.
func BoxPlot(jobs []domain.JobListing, rank RankConvention) domain.BoxPlotData {
	levels, groups := groupBy(jobs, func(j domain.JobListing) string { return j.ExperienceLevel })

	data := domain.BoxPlotData{
		ExperienceLevels: levels,
		Salaries:         make(map[string]domain.BoxSummary, len(levels)),
	}
	for _, level := range levels {
		clean, outliers := IdentifyOutliers(groups[level], rank)
		summary := Summarize(clean, rank)
		summary.Outliers = outliers
		data.Salaries[level] = summary
	}
	return data
}

// groupBy partitions jobs by key, returning keys in first-seen order
func groupBy(jobs []domain.JobListing, key KeyFunc) ([]string, map[string][]domain.JobListing) {
	keys := []string{}
	groups := make(map[string][]domain.JobListing)
	for _, job := range jobs {
		k := key(job)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], job)
	}
	return keys, groups
}
