package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"jobpulse/pkg/contracts/domain"
)

func crossTabFixture() []domain.JobListing {
	return []domain.JobListing{
		job("1", 100000, withLocation("Austin"), withIndustry("Technology"), withEmployment("Full-time")),
		job("2", 80000, withLocation("Austin"), withIndustry("Finance"), withEmployment("Contract")),
		job("3", 120000, withLocation("Boston"), withIndustry("Technology"), withEmployment("Full-time")),
		job("4", 60000, withLocation("Austin"), withIndustry("Technology"), withEmployment("Part-time")),
		job("5", 90000, withLocation("Denver"), withIndustry("Healthcare"), withEmployment("Full-time")),
	}
}

func TestGroupedBar(t *testing.T) {
	got := GroupedBar(crossTabFixture())

	want := domain.GroupedBarData{
		Locations:  []string{"Austin", "Boston", "Denver"},
		Industries: []string{"Technology", "Finance", "Healthcare"},
		Data: map[string]map[string]float64{
			"Austin": {"Technology": 80000, "Finance": 80000, "Healthcare": 0},
			"Boston": {"Technology": 120000, "Finance": 0, "Healthcare": 0},
			"Denver": {"Technology": 0, "Finance": 0, "Healthcare": 90000},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupedBar() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Boston", "Denver", "Austin"}, got.LocationsByAverage())
}

func TestStackedBar(t *testing.T) {
	jobs := crossTabFixture()
	got := StackedBar(jobs)

	want := domain.StackedBarData{
		Industries:      []string{"Technology", "Finance", "Healthcare"},
		EmploymentTypes: []string{"Full-time", "Contract", "Part-time"},
		Data: map[string]map[string]int{
			"Technology": {"Full-time": 2, "Contract": 0, "Part-time": 1},
			"Finance":    {"Full-time": 0, "Contract": 1, "Part-time": 0},
			"Healthcare": {"Full-time": 1, "Contract": 0, "Part-time": 0},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StackedBar() mismatch (-want +got):\n%s", diff)
	}

	for _, industry := range got.Industries {
		total := 0
		for _, n := range got.Data[industry] {
			total += n
		}
		expected := 0
		for _, j := range jobs {
			if j.Industry == industry {
				expected++
			}
		}
		assert.Equal(t, expected, total, industry)
	}
}

func TestIndustriesByTotalKeepsTiesInFirstSeenOrder(t *testing.T) {
	got := StackedBar(crossTabFixture()).IndustriesByTotal()
	assert.Equal(t, []string{"Technology", "Finance", "Healthcare"}, got)
}

func TestCrossTabEmpty(t *testing.T) {
	ct := NewCrossTab(nil,
		func(j domain.JobListing) string { return j.Location },
		func(j domain.JobListing) string { return j.Industry })
	assert.Empty(t, ct.Rows)
	assert.Empty(t, ct.Cols)
	assert.Equal(t, 0, ct.Count("x", "y"))
	assert.Equal(t, 0.0, ct.Mean("x", "y"))
	assert.Empty(t, ct.Means())
}
