// Package analytics turns a slice of job listings into the aggregates the
// dashboard charts consume.
//
// Every function is pure: it reads the listings it is given and allocates a
// fresh result. Nothing is cached between calls, so aggregates always reflect
// the filtered subset of the current request.
//
// # Aggregates
//
//	BoxPlot     salary five-number summary and 1.5×IQR outliers per experience level
//	GroupedBar  average salary per location and industry
//	StackedBar  posting count per industry and employment type
//	Ridgeline   salary sample per job title, optionally with a KDE curve
//	TimeLine    posting count per experience level and month, re-bucketable
//	Scatter     salary by posting date with an OLS trend line
//	Geo         posting count and average salary per location
//
// Category keys are reported in first-seen order. Matrices are zero-filled so
// every combination of observed keys is present.
package analytics
