package domain

import (
	"time"
)

// DateLayout is the calendar-date layout used for posting dates on the wire
const DateLayout = "2006-01-02"

// JobListing represents one row of the employment dataset
type JobListing struct {
	ID              string `json:"id" validate:"required"`
	JobTitle        string `json:"jobTitle" validate:"required"`
	CompanyName     string `json:"companyName"`
	Location        string `json:"location"`
	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experienceLevel"`
	EmploymentType  string `json:"employmentType"`
	Salary          int    `json:"salary" validate:"gte=0"`
	PostedDate      string `json:"postedDate" validate:"datetime=2006-01-02"`
	JobDescription  string `json:"jobDescription"`

	// Posted is PostedDate parsed at load time
	Posted time.Time `json:"-"`
}

// Month returns the YYYY-MM bucket of the posting date
func (j JobListing) Month() string {
	return j.Posted.Format("2006-01")
}

// JobFilter holds inclusion filters. An empty slice means no restriction.
type JobFilter struct {
	ExperienceLevels []string `json:"experienceLevels,omitempty"`
	Locations        []string `json:"locations,omitempty"`
	Industries       []string `json:"industries,omitempty"`
	EmploymentTypes  []string `json:"employmentTypes,omitempty"`
}

// IsEmpty reports whether the filter restricts nothing
func (f JobFilter) IsEmpty() bool {
	return len(f.ExperienceLevels) == 0 && len(f.Locations) == 0 &&
		len(f.Industries) == 0 && len(f.EmploymentTypes) == 0
}

// Matches reports whether a listing passes every non-empty filter set
func (f JobFilter) Matches(job JobListing) bool {
	return matchesAny(f.ExperienceLevels, job.ExperienceLevel) &&
		matchesAny(f.Locations, job.Location) &&
		matchesAny(f.Industries, job.Industry) &&
		matchesAny(f.EmploymentTypes, job.EmploymentType)
}

func matchesAny(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// Dataset is the immutable in-memory copy of the employment data file
type Dataset struct {
	Jobs      []JobListing `json:"-"`
	Locations []string     `json:"locations"`
	Source    string       `json:"source"`
	LoadedAt  time.Time    `json:"loaded_at"`
	Skipped   int          `json:"skipped_rows"`
}

// Len returns the number of loaded listings
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Jobs)
}
