package dataset

// Header names of the employment data file
const (
	ColumnID              = "Job ID"
	ColumnJobTitle        = "Job Title"
	ColumnCompanyName     = "Company Name"
	ColumnLocation        = "Location"
	ColumnIndustry        = "Industry"
	ColumnExperienceLevel = "Experience Level"
	ColumnEmploymentType  = "Employment Type"
	ColumnSalary          = "Salary (USD)"
	ColumnPostedDate      = "Posted Date"
	ColumnJobDescription  = "Job Description"
)

// Columns is the canonical header order, used again by exports
var Columns = []string{
	ColumnID,
	ColumnJobTitle,
	ColumnCompanyName,
	ColumnLocation,
	ColumnIndustry,
	ColumnExperienceLevel,
	ColumnEmploymentType,
	ColumnSalary,
	ColumnPostedDate,
	ColumnJobDescription,
}

// optionalColumns may be absent from the header
var optionalColumns = map[string]bool{
	ColumnCompanyName:    true,
	ColumnJobDescription: true,
}
