package analytics

import (
	"time"

	"jobpulse/pkg/contracts/domain"
)

// Regression is an ordinary least-squares fit of salary against epoch milliseconds
type Regression struct {
	Slope     float64
	Intercept float64
	MinX      int64
	MaxX      int64
	OK        bool
}

// At predicts the salary at epoch millisecond x
func (r Regression) At(x int64) float64 {
	return r.Slope*float64(x) + r.Intercept
}

// FitTrend fits salary against posting time. With no points OK is false. When
// every point shares one date the fit is a flat line at the mean salary.
func FitTrend(jobs []domain.JobListing) Regression {
	n := len(jobs)
	if n == 0 {
		return Regression{}
	}

	xs := make([]float64, n)
	var sumX, sumY float64
	minX, maxX := jobs[0].Posted.UnixMilli(), jobs[0].Posted.UnixMilli()
	for i, job := range jobs {
		ms := job.Posted.UnixMilli()
		xs[i] = float64(ms)
		sumX += xs[i]
		sumY += float64(job.Salary)
		if ms < minX {
			minX = ms
		}
		if ms > maxX {
			maxX = ms
		}
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	// centred sums keep the epoch-scale terms from cancelling
	var sxy, sxx float64
	for i, job := range jobs {
		dx := xs[i] - meanX
		sxy += dx * (float64(job.Salary) - meanY)
		sxx += dx * dx
	}

	r := Regression{MinX: minX, MaxX: maxX, OK: true}
	if sxx == 0 {
		r.Intercept = meanY
		return r
	}
	r.Slope = sxy / sxx
	r.Intercept = meanY - r.Slope*meanX
	return r
}

// Endpoints returns the fitted salary at the earliest and latest posting date
func (r Regression) Endpoints() []domain.TrendPoint {
	if !r.OK {
		return []domain.TrendPoint{}
	}
	return []domain.TrendPoint{
		{Date: msToRFC3339(r.MinX), Salary: r.At(r.MinX)},
		{Date: msToRFC3339(r.MaxX), Salary: r.At(r.MaxX)},
	}
}

// TrendLine fits jobs and returns the two-point line for rendering
func TrendLine(jobs []domain.JobListing) []domain.TrendPoint {
	return FitTrend(jobs).Endpoints()
}

// Scatter plots every listing by posting date and salary with its trend line
func Scatter(jobs []domain.JobListing) domain.ScatterPlotData {
	points := make([]domain.ScatterPoint, len(jobs))
	for i, job := range jobs {
		points[i] = domain.ScatterPoint{
			ID:          job.ID,
			Date:        job.PostedDate,
			Salary:      job.Salary,
			JobTitle:    job.JobTitle,
			CompanyName: job.CompanyName,
			Industry:    job.Industry,
		}
	}
	r := FitTrend(jobs)
	return domain.ScatterPlotData{
		Points:    points,
		TrendLine: r.Endpoints(),
		Slope:     r.Slope,
		Intercept: r.Intercept,
	}
}

func msToRFC3339(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
