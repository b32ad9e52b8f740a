package api

import (
	"jobpulse/pkg/contracts/domain"
)

// EmploymentDataResponse is the body of GET /api/employment-data
type EmploymentDataResponse struct {
	Jobs      []domain.JobListing   `json:"jobs"`
	HasMore   bool                  `json:"hasMore"`
	Locations []string              `json:"locations"`
	Stats     domain.DashboardStats `json:"stats"`
}

// NewEmploymentDataResponse builds the response body from a service page
func NewEmploymentDataResponse(page domain.EmploymentPage) EmploymentDataResponse {
	jobs := page.Jobs
	if jobs == nil {
		jobs = []domain.JobListing{}
	}
	locations := page.Locations
	if locations == nil {
		locations = []string{}
	}
	return EmploymentDataResponse{
		Jobs:      jobs,
		HasMore:   page.HasMore,
		Locations: locations,
		Stats:     page.Stats,
	}
}

// ChartResponse wraps a single chart aggregate
type ChartResponse struct {
	Chart string      `json:"chart"`
	Total int         `json:"total"`
	Data  interface{} `json:"data"`
}
