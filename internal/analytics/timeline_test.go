package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpulse/pkg/contracts/domain"
)

func timelineFixture() []domain.JobListing {
	return []domain.JobListing{
		job("1", 1, withLevel("Entry"), withDate("2023-01-15")),
		job("2", 1, withLevel("Entry"), withDate("2023-01-20")),
		job("3", 1, withLevel("Senior"), withDate("2023-03-02")),
		job("4", 1, withLevel("Entry"), withDate("2023-02-10")),
	}
}

func TestTimeLine(t *testing.T) {
	got := TimeLine(timelineFixture())

	want := domain.TimeLineData{
		Interval:         domain.IntervalMonthly,
		ExperienceLevels: []string{"Entry", "Senior"},
		TimePoints:       []string{"2023-01", "2023-02", "2023-03"},
		Data: map[string]map[string]float64{
			"Entry":  {"2023-01": 2, "2023-02": 1, "2023-03": 0},
			"Senior": {"2023-01": 0, "2023-02": 0, "2023-03": 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TimeLine() mismatch (-want +got):\n%s", diff)
	}
}

func TestRebucketQuarterly(t *testing.T) {
	got, err := Rebucket(TimeLine(timelineFixture()), domain.IntervalQuarterly)
	require.NoError(t, err)

	assert.Equal(t, domain.IntervalQuarterly, got.Interval)
	assert.Equal(t, []string{"2023-Q1"}, got.TimePoints)
	assert.InDelta(t, 1.0, got.Data["Entry"]["2023-Q1"], 1e-9)
	assert.InDelta(t, 1.0/3, got.Data["Senior"]["2023-Q1"], 1e-9)
}

func TestRebucketWeekly(t *testing.T) {
	monthly := TimeLine(timelineFixture())
	got, err := Rebucket(monthly, domain.IntervalWeekly)
	require.NoError(t, err)

	// Mondays: Jan 2..30 (5), Feb 6..27 (4), Mar 6..27 (4)
	require.Len(t, got.TimePoints, 13)
	assert.Equal(t, "2023-W01", got.TimePoints[0])
	assert.Equal(t, "2023-W13", got.TimePoints[12])

	var january float64
	for _, w := range got.TimePoints[:5] {
		january += got.Data["Entry"][w]
	}
	assert.InDelta(t, 2.0, january, 1e-9)
	assert.InDelta(t, 0.25, got.Data["Senior"]["2023-W10"], 1e-9)
}

func TestRebucketUnknownInterval(t *testing.T) {
	_, err := Rebucket(TimeLine(timelineFixture()), domain.Interval("daily"))
	assert.Error(t, err)
}

func TestMondayWeeksAcrossYearBoundary(t *testing.T) {
	got, err := Rebucket(TimeLine([]domain.JobListing{job("1", 1, withDate("2025-12-03"))}), domain.IntervalWeekly)
	require.NoError(t, err)
	// Dec 29 2025 is a Monday in ISO week 1 of 2026
	assert.Equal(t, []string{"2025-W49", "2025-W50", "2025-W51", "2025-W52", "2026-W01"}, got.TimePoints)
}
