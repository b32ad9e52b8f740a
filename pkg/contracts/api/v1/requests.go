// Package api contains API contract definitions for the jobpulse employment-data API.
// Version v1 represents the current stable API version.
package api

import (
	"jobpulse/pkg/contracts/domain"
)

// Common request parameters

// FilterRequest carries the repeated array query parameters shared by every
// employment-data endpoint
type FilterRequest struct {
	ExperienceLevels []string `json:"experienceLevels" query:"experienceLevels" validate:"omitempty,dive,required"`
	Locations        []string `json:"locations" query:"locations" validate:"omitempty,dive,required"`
	Industries       []string `json:"industries" query:"industries" validate:"omitempty,dive,required"`
	EmploymentTypes  []string `json:"employmentTypes" query:"employmentTypes" validate:"omitempty,dive,required"`
}

// ToFilter converts the request into a domain filter
func (r FilterRequest) ToFilter() domain.JobFilter {
	return domain.JobFilter{
		ExperienceLevels: r.ExperienceLevels,
		Locations:        r.Locations,
		Industries:       r.Industries,
		EmploymentTypes:  r.EmploymentTypes,
	}
}

// PaginationRequest represents common pagination parameters
type PaginationRequest struct {
	Page  int `json:"page" query:"page" validate:"min=1"`
	Limit int `json:"limit" query:"limit" validate:"min=1,max=1000"`
}

// Employment API Requests

// EmploymentDataRequest represents a filtered, paginated listing query
type EmploymentDataRequest struct {
	FilterRequest
	PaginationRequest
}

// ChartRequest represents a request for one chart aggregate
type ChartRequest struct {
	FilterRequest
	Chart    string `json:"chart" param:"chart" validate:"required"`
	Interval string `json:"interval" query:"interval" validate:"omitempty,oneof=monthly weekly quarterly"`
	Density  bool   `json:"density" query:"density"`
	Top      int    `json:"top" query:"top" validate:"min=0,max=100"`
}

// ChartsRequest represents a request for the full chart bundle
type ChartsRequest struct {
	FilterRequest
	Interval string `json:"interval" query:"interval" validate:"omitempty,oneof=monthly weekly quarterly"`
	Density  bool   `json:"density" query:"density"`
	Top      int    `json:"top" query:"top" validate:"min=0,max=100"`
}

// ExportRequest represents a request to download the filtered listings
type ExportRequest struct {
	FilterRequest
	Format string `json:"format" query:"format" validate:"required,oneof=csv xlsx"`
}
