package analytics

import (
	"jobpulse/pkg/contracts/domain"
)

// Geo summarises postings per location for the map view
func Geo(jobs []domain.JobListing) domain.GeoData {
	locations, groups := groupBy(jobs, func(j domain.JobListing) string { return j.Location })

	data := domain.GeoData{
		Locations: locations,
		Regions:   make(map[string]domain.LocationSummary, len(locations)),
	}
	for _, loc := range locations {
		group := groups[loc]
		var sum float64
		for _, job := range group {
			sum += float64(job.Salary)
		}
		data.Regions[loc] = domain.LocationSummary{
			JobCount:  len(group),
			AvgSalary: sum / float64(len(group)),
		}
		if len(group) > data.MaxJobCount {
			data.MaxJobCount = len(group)
		}
	}
	return data
}
