package domain

// ShareOf names the most frequent value of a field and its share of the
// filtered set as a rounded percentage
type ShareOf struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// DashboardStats represents the summary cards shown above the charts
type DashboardStats struct {
	TotalJobs   int     `json:"totalJobs"`
	AvgSalary   float64 `json:"avgSalary"`
	TopLocation ShareOf `json:"topLocation"`
	TopIndustry ShareOf `json:"topIndustry"`

	// Growth figures are fixed placeholders. The dataset carries no
	// historical snapshots to derive them from.
	JobsGrowthRate   float64 `json:"jobsGrowthRate"`
	SalaryGrowthRate float64 `json:"salaryGrowthRate"`
}

// EmploymentPage is one page of filtered listings plus dataset-wide context
type EmploymentPage struct {
	Jobs      []JobListing   `json:"jobs"`
	HasMore   bool           `json:"hasMore"`
	Locations []string       `json:"locations"`
	Stats     DashboardStats `json:"stats"`
	Total     int            `json:"-"`
}
