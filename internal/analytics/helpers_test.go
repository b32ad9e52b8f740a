package analytics

import (
	"time"

	"jobpulse/pkg/contracts/domain"
)

type jobOpt func(*domain.JobListing)

func withTitle(t string) jobOpt      { return func(j *domain.JobListing) { j.JobTitle = t } }
func withLevel(l string) jobOpt      { return func(j *domain.JobListing) { j.ExperienceLevel = l } }
func withLocation(l string) jobOpt   { return func(j *domain.JobListing) { j.Location = l } }
func withIndustry(i string) jobOpt   { return func(j *domain.JobListing) { j.Industry = i } }
func withEmployment(e string) jobOpt { return func(j *domain.JobListing) { j.EmploymentType = e } }

func withDate(d string) jobOpt {
	return func(j *domain.JobListing) {
		t, err := time.Parse(domain.DateLayout, d)
		if err != nil {
			panic(err)
		}
		j.PostedDate = d
		j.Posted = t
	}
}

func job(id string, salary int, opts ...jobOpt) domain.JobListing {
	j := domain.JobListing{
		ID:              id,
		JobTitle:        "Engineer",
		CompanyName:     "Acme",
		Location:        "Remote",
		Industry:        "Technology",
		ExperienceLevel: "Entry",
		EmploymentType:  "Full-time",
		Salary:          salary,
	}
	withDate("2023-01-15")(&j)
	for _, opt := range opts {
		opt(&j)
	}
	return j
}
