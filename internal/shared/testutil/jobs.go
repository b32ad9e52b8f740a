package testutil

import (
	"fmt"
	"time"

	"jobpulse/pkg/contracts/domain"
)

// JobOption customises a fixture listing
type JobOption func(*domain.JobListing)

// WithTitle sets the job title
func WithTitle(title string) JobOption {
	return func(j *domain.JobListing) { j.JobTitle = title }
}

// WithLevel sets the experience level
func WithLevel(level string) JobOption {
	return func(j *domain.JobListing) { j.ExperienceLevel = level }
}

// WithLocation sets the location
func WithLocation(location string) JobOption {
	return func(j *domain.JobListing) { j.Location = location }
}

// WithIndustry sets the industry
func WithIndustry(industry string) JobOption {
	return func(j *domain.JobListing) { j.Industry = industry }
}

// WithEmployment sets the employment type
func WithEmployment(kind string) JobOption {
	return func(j *domain.JobListing) { j.EmploymentType = kind }
}

// WithPosted sets the posting date from YYYY-MM-DD
func WithPosted(date string) JobOption {
	return func(j *domain.JobListing) {
		t, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			panic(fmt.Sprintf("testutil: bad fixture date %q", date))
		}
		j.Posted = t
		j.PostedDate = date
	}
}

// NewJob builds a listing with stable defaults
func NewJob(id string, salary int, opts ...JobOption) domain.JobListing {
	posted := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	job := domain.JobListing{
		ID:              id,
		JobTitle:        "Engineer",
		CompanyName:     "Acme",
		Location:        "Remote",
		Industry:        "Technology",
		ExperienceLevel: "Entry",
		EmploymentType:  "Full-time",
		Salary:          salary,
		PostedDate:      posted.Format(domain.DateLayout),
		Posted:          posted,
		JobDescription:  "fixture",
	}
	for _, opt := range opts {
		opt(&job)
	}
	return job
}

var (
	fixtureIndustries  = []string{"Finance", "Healthcare", "Retail", "Education"}
	fixtureLocations   = []string{"Remote", "New York", "Austin", "Berlin", "London"}
	fixtureLevels      = []string{"Entry", "Mid", "Senior"}
	fixtureEmployments = []string{"Full-time", "Part-time", "Contract"}
	fixtureTitles      = []string{"Engineer", "Analyst", "Designer", "Manager"}
)

// HundredJobs returns 100 listings of which exactly 30 (every row whose
// index is divisible by 10 or ends in 3 or 7) are in Technology. The other
// fields cycle so every filter dimension has several values.
func HundredJobs() []domain.JobListing {
	jobs := make([]domain.JobListing, 0, 100)
	start := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		industry := fixtureIndustries[i%len(fixtureIndustries)]
		if d := i % 10; d == 0 || d == 3 || d == 7 {
			industry = "Technology"
		}
		posted := start.AddDate(0, 0, i*3)
		jobs = append(jobs, NewJob(fmt.Sprintf("job-%03d", i), 40000+(i*1373)%90000,
			WithIndustry(industry),
			WithLocation(fixtureLocations[i%len(fixtureLocations)]),
			WithLevel(fixtureLevels[i%len(fixtureLevels)]),
			WithEmployment(fixtureEmployments[i%len(fixtureEmployments)]),
			WithTitle(fixtureTitles[i%len(fixtureTitles)]),
			WithPosted(posted.Format(domain.DateLayout)),
		))
	}
	return jobs
}

// JobsDataset wraps jobs in a Dataset with first-seen locations
func JobsDataset(jobs []domain.JobListing) *domain.Dataset {
	seen := make(map[string]bool)
	locations := []string{}
	for _, j := range jobs {
		if !seen[j.Location] {
			seen[j.Location] = true
			locations = append(locations, j.Location)
		}
	}
	return &domain.Dataset{Jobs: jobs, Locations: locations, Source: "fixture"}
}
