package domain

import (
	"sort"
)

// ChartType names one of the dashboard aggregates
type ChartType string

const (
	ChartBoxPlot    ChartType = "box-plot"
	ChartGroupedBar ChartType = "grouped-bar"
	ChartStackedBar ChartType = "stacked-bar"
	ChartRidgeline  ChartType = "ridgeline"
	ChartTimeLine   ChartType = "time-line"
	ChartScatter    ChartType = "scatter"
	ChartGeo        ChartType = "geo"
)

// AllChartTypes lists every chart the service can build
var AllChartTypes = []ChartType{
	ChartBoxPlot,
	ChartGroupedBar,
	ChartStackedBar,
	ChartRidgeline,
	ChartTimeLine,
	ChartScatter,
	ChartGeo,
}

// Valid reports whether c is a known chart type
func (c ChartType) Valid() bool {
	for _, t := range AllChartTypes {
		if t == c {
			return true
		}
	}
	return false
}

// Interval is the bucket width of the posting time line
type Interval string

const (
	IntervalMonthly   Interval = "monthly"
	IntervalWeekly    Interval = "weekly"
	IntervalQuarterly Interval = "quarterly"
)

// Outlier is a salary outside the 1.5×IQR fence, attributed to its listing
type Outlier struct {
	ID          string `json:"id"`
	Value       int    `json:"value"`
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
}

// BoxSummary is the five-number summary of the non-outlier salaries of a group
type BoxSummary struct {
	Min      int       `json:"min"`
	Q1       int       `json:"q1"`
	Median   int       `json:"median"`
	Q3       int       `json:"q3"`
	Max      int       `json:"max"`
	Count    int       `json:"count"`
	Outliers []Outlier `json:"outliers"`
}

// BoxPlotData holds salary summaries per experience level
type BoxPlotData struct {
	ExperienceLevels []string              `json:"experienceLevels"`
	Salaries         map[string]BoxSummary `json:"salaries"`
}

// GroupedBarData holds the average salary per location and industry
type GroupedBarData struct {
	Locations  []string                      `json:"locations"`
	Industries []string                      `json:"industries"`
	Data       map[string]map[string]float64 `json:"data"`
}

// StackedBarData holds posting counts per industry and employment type
type StackedBarData struct {
	Industries      []string                  `json:"industries"`
	EmploymentTypes []string                  `json:"employmentTypes"`
	Data            map[string]map[string]int `json:"data"`
}

// DensityPoint is one evaluation of a kernel density estimate
type DensityPoint struct {
	Salary  float64 `json:"salary"`
	Density float64 `json:"density"`
}

// SalaryRange is the salary sample of one job title
type SalaryRange struct {
	Values  []int          `json:"values"`
	Min     float64        `json:"min"`
	Max     float64        `json:"max"`
	Spread  bool           `json:"spread,omitempty"`
	Density []DensityPoint `json:"density,omitempty"`
}

// RidgelineData holds salary samples per job title
type RidgelineData struct {
	JobTitles    []string               `json:"jobTitles"`
	SalaryRanges map[string]SalaryRange `json:"salaryRanges"`
}

// TimeLineData holds posting counts per experience level and time bucket
type TimeLineData struct {
	Interval         Interval                      `json:"interval"`
	ExperienceLevels []string                      `json:"experienceLevels"`
	TimePoints       []string                      `json:"timePoints"`
	Data             map[string]map[string]float64 `json:"data"`
}

// ScatterPoint is one listing plotted by posting date and salary
type ScatterPoint struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Salary      int    `json:"salary"`
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
}

// TrendPoint is an endpoint of the regression line
type TrendPoint struct {
	Date   string  `json:"date"`
	Salary float64 `json:"salary"`
}

// ScatterPlotData holds scatter points and the two-point trend line
type ScatterPlotData struct {
	Points    []ScatterPoint `json:"points"`
	TrendLine []TrendPoint   `json:"trendLine"`
	Slope     float64        `json:"slope"`
	Intercept float64        `json:"intercept"`
}

// LocationSummary is the map value of one location
type LocationSummary struct {
	JobCount  int     `json:"jobCount"`
	AvgSalary float64 `json:"avgSalary"`
}

// GeoData holds per-location figures for the map view
type GeoData struct {
	Locations   []string                   `json:"locations"`
	Regions     map[string]LocationSummary `json:"regions"`
	MaxJobCount int                        `json:"maxJobCount"`
}

// VisualizationData bundles every chart aggregate of one filtered set
type VisualizationData struct {
	BoxPlot     BoxPlotData     `json:"boxPlot"`
	GroupedBar  GroupedBarData  `json:"groupedBar"`
	StackedBar  StackedBarData  `json:"stackedBar"`
	Ridgeline   RidgelineData   `json:"ridgeline"`
	TimeLine    TimeLineData    `json:"timeLine"`
	ScatterPlot ScatterPlotData `json:"scatterPlot"`
	Geo         GeoData         `json:"geo"`
}

// IndustriesByTotal returns industries ordered by total posting count,
// largest first. Equal totals keep first-seen order.
func (d StackedBarData) IndustriesByTotal() []string {
	totals := make(map[string]int, len(d.Industries))
	for _, ind := range d.Industries {
		for _, n := range d.Data[ind] {
			totals[ind] += n
		}
	}
	out := append([]string(nil), d.Industries...)
	sort.SliceStable(out, func(i, j int) bool { return totals[out[i]] > totals[out[j]] })
	return out
}

// LocationsByAverage returns locations ordered by the mean of their non-empty
// cells, highest first. Equal means keep first-seen order.
func (d GroupedBarData) LocationsByAverage() []string {
	means := make(map[string]float64, len(d.Locations))
	for _, loc := range d.Locations {
		var sum float64
		var n int
		for _, v := range d.Data[loc] {
			if v != 0 {
				sum += v
				n++
			}
		}
		if n > 0 {
			means[loc] = sum / float64(n)
		}
	}
	out := append([]string(nil), d.Locations...)
	sort.SliceStable(out, func(i, j int) bool { return means[out[i]] > means[out[j]] })
	return out
}
