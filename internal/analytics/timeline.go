package analytics

import (
	"fmt"
	"sort"
	"time"

	"jobpulse/pkg/contracts/domain"
)

const monthLayout = "2006-01"

// TimeLine counts postings per experience level and month. Months are sorted
// ascending and every level has a cell for every month.
func TimeLine(jobs []domain.JobListing) domain.TimeLineData {
	levels, groups := groupBy(jobs, func(j domain.JobListing) string { return j.ExperienceLevel })

	seen := make(map[string]bool)
	months := []string{}
	for _, job := range jobs {
		m := job.Month()
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Strings(months)

	data := make(map[string]map[string]float64, len(levels))
	for _, level := range levels {
		row := make(map[string]float64, len(months))
		for _, m := range months {
			row[m] = 0
		}
		for _, job := range groups[level] {
			row[job.Month()]++
		}
		data[level] = row
	}

	return domain.TimeLineData{
		Interval:         domain.IntervalMonthly,
		ExperienceLevels: levels,
		TimePoints:       months,
		Data:             data,
	}
}

// Rebucket re-aggregates a monthly time line into coarser or finer buckets.
// The result is derived from the monthly cells only:
//
//	quarterly  YYYY-Qn holds the mean of the quarter's months present in the series
//	weekly     each month's count is spread evenly over the ISO weeks whose
//	           Monday falls in that month, keyed YYYY-Www
func Rebucket(monthly domain.TimeLineData, interval domain.Interval) (domain.TimeLineData, error) {
	switch interval {
	case "", domain.IntervalMonthly:
		return monthly, nil
	case domain.IntervalQuarterly:
		return quarterly(monthly)
	case domain.IntervalWeekly:
		return weekly(monthly)
	default:
		return domain.TimeLineData{}, fmt.Errorf("unknown interval %q", interval)
	}
}

func quarterly(monthly domain.TimeLineData) (domain.TimeLineData, error) {
	keys := []string{}
	members := make(map[string][]string)
	for _, m := range monthly.TimePoints {
		t, err := time.Parse(monthLayout, m)
		if err != nil {
			return domain.TimeLineData{}, fmt.Errorf("parse month %q: %w", m, err)
		}
		q := fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
		if _, ok := members[q]; !ok {
			keys = append(keys, q)
		}
		members[q] = append(members[q], m)
	}

	data := make(map[string]map[string]float64, len(monthly.ExperienceLevels))
	for _, level := range monthly.ExperienceLevels {
		row := make(map[string]float64, len(keys))
		for _, q := range keys {
			var sum float64
			for _, m := range members[q] {
				sum += monthly.Data[level][m]
			}
			row[q] = sum / float64(len(members[q]))
		}
		data[level] = row
	}

	return domain.TimeLineData{
		Interval:         domain.IntervalQuarterly,
		ExperienceLevels: monthly.ExperienceLevels,
		TimePoints:       keys,
		Data:             data,
	}, nil
}

func weekly(monthly domain.TimeLineData) (domain.TimeLineData, error) {
	keys := []string{}
	weeksOf := make(map[string][]string, len(monthly.TimePoints))
	for _, m := range monthly.TimePoints {
		t, err := time.Parse(monthLayout, m)
		if err != nil {
			return domain.TimeLineData{}, fmt.Errorf("parse month %q: %w", m, err)
		}
		weeks := mondayWeeks(t)
		weeksOf[m] = weeks
		keys = append(keys, weeks...)
	}

	data := make(map[string]map[string]float64, len(monthly.ExperienceLevels))
	for _, level := range monthly.ExperienceLevels {
		row := make(map[string]float64, len(keys))
		for _, m := range monthly.TimePoints {
			weeks := weeksOf[m]
			share := monthly.Data[level][m] / float64(len(weeks))
			for _, w := range weeks {
				row[w] = share
			}
		}
		data[level] = row
	}

	return domain.TimeLineData{
		Interval:         domain.IntervalWeekly,
		ExperienceLevels: monthly.ExperienceLevels,
		TimePoints:       keys,
		Data:             data,
	}, nil
}

// mondayWeeks returns the ISO week keys of every Monday in the month starting at first
func mondayWeeks(first time.Time) []string {
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	weeks := []string{}
	for d := first.AddDate(0, 0, offset); d.Month() == first.Month(); d = d.AddDate(0, 0, 7) {
		year, week := d.ISOWeek()
		weeks = append(weeks, fmt.Sprintf("%d-W%02d", year, week))
	}
	return weeks
}
