package analytics

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpulse/pkg/contracts/domain"
)

func TestComputeQuartiles(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		rank   RankConvention
		want   Quartiles
	}{
		{
			name:   "empty sample",
			values: nil,
			rank:   RankNearest,
			want:   Quartiles{},
		},
		{
			name:   "single value collapses",
			values: []int{7},
			rank:   RankNearest,
			want:   Quartiles{Q1: 7, Median: 7, Q3: 7},
		},
		{
			name:   "four values nearest rank",
			values: []int{50000, 52000, 51000, 1000000},
			rank:   RankNearest,
			want:   Quartiles{Q1: 50000, Median: 51000, Q3: 52000},
		},
		{
			name:   "four values floor rank",
			values: []int{50000, 52000, 51000, 1000000},
			rank:   RankFloor,
			want:   Quartiles{Q1: 51000, Median: 52000, Q3: 1000000},
		},
		{
			name:   "ten values nearest rank",
			values: []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
			rank:   RankNearest,
			want:   Quartiles{Q1: 3, Median: 5, Q3: 8},
		},
		{
			name:   "ten values floor rank",
			values: []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
			rank:   RankFloor,
			want:   Quartiles{Q1: 3, Median: 6, Q3: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQuartiles(tt.values, tt.rank)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeQuartilesDoesNotMutateInput(t *testing.T) {
	values := []int{3, 1, 2}
	ComputeQuartiles(values, RankNearest)
	assert.Equal(t, []int{3, 1, 2}, values)
}

func TestParseRankConvention(t *testing.T) {
	tests := []struct {
		in      string
		want    RankConvention
		wantErr bool
	}{
		{in: "", want: RankNearest},
		{in: "nearest", want: RankNearest},
		{in: "Floor", want: RankFloor},
		{in: "linear", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRankConvention(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) RankConvention {
	t.Helper()
	r, err := ParseRankConvention(s)
	require.NoError(t, err)
	return r
}

func TestBoxPlotFlagsExtremeSalary(t *testing.T) {
	jobs := []domain.JobListing{
		job("1", 50000),
		job("2", 52000),
		job("3", 51000),
		job("4", 1000000, withTitle("Founder"), func(j *domain.JobListing) { j.CompanyName = "Unicorn" }),
	}

	q := ComputeQuartiles([]int{50000, 52000, 51000, 1000000}, RankNearest)
	assert.Equal(t, 2000, q.IQR())
	lower, upper := q.Fences()
	assert.Equal(t, 47000.0, lower)
	assert.Equal(t, 55000.0, upper)

	got := BoxPlot(jobs, RankNearest)

	want := domain.BoxPlotData{
		ExperienceLevels: []string{"Entry"},
		Salaries: map[string]domain.BoxSummary{
			"Entry": {
				Min:    50000,
				Q1:     50000,
				Median: 51000,
				Q3:     52000,
				Max:    52000,
				Count:  3,
				Outliers: []domain.Outlier{
					{ID: "4", Value: 1000000, JobTitle: "Founder", CompanyName: "Unicorn"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BoxPlot() mismatch (-want +got):\n%s", diff)
	}
}

func TestBoxPlotGroupsInFirstSeenOrder(t *testing.T) {
	jobs := []domain.JobListing{
		job("1", 90000, withLevel("Senior")),
		job("2", 40000, withLevel("Entry")),
		job("3", 60000, withLevel("Mid")),
		job("4", 95000, withLevel("Senior")),
	}
	got := BoxPlot(jobs, RankNearest)
	assert.Equal(t, []string{"Senior", "Entry", "Mid"}, got.ExperienceLevels)
	assert.Equal(t, 2, got.Salaries["Senior"].Count)
	assert.Equal(t, 90000, got.Salaries["Senior"].Min)
	assert.Equal(t, 95000, got.Salaries["Senior"].Max)
	assert.Empty(t, got.Salaries["Entry"].Outliers)
}

func TestIdentifyOutliersSmallSamples(t *testing.T) {
	jobs := []domain.JobListing{job("1", 1), job("2", 2), job("3", 1000)}
	clean, outliers := IdentifyOutliers(jobs, RankNearest)
	assert.Equal(t, []int{1, 2, 1000}, clean)
	assert.Empty(t, outliers)

	clean, outliers = IdentifyOutliers(nil, RankNearest)
	assert.Empty(t, clean)
	assert.NotNil(t, outliers)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, RankNearest)
	assert.Equal(t, 0, got.Count)
	assert.Equal(t, 0, got.Max)
	assert.Empty(t, got.Outliers)
}

func TestIdentifyOutliersRespectsFences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, rank := range []RankConvention{RankNearest, RankFloor} {
		for trial := 0; trial < 200; trial++ {
			n := 1 + rng.Intn(40)
			jobs := make([]domain.JobListing, n)
			values := make([]int, n)
			for i := range jobs {
				v := 30000 + rng.Intn(60000)
				if rng.Intn(10) == 0 {
					v *= 10
				}
				values[i] = v
				jobs[i] = job(strconv.Itoa(i), v)
			}

			lower, upper := ComputeQuartiles(values, rank).Fences()
			clean, outliers := IdentifyOutliers(jobs, rank)

			require.Equal(t, n, len(clean)+len(outliers))
			for _, o := range outliers {
				v := float64(o.Value)
				assert.True(t, v < lower || v > upper, "outlier %d inside [%v, %v]", o.Value, lower, upper)
			}
			for _, v := range clean {
				if n >= 4 {
					assert.True(t, float64(v) >= lower && float64(v) <= upper)
				}
			}

			summary := Summarize(clean, rank)
			if len(clean) > 0 {
				assert.Equal(t, minInt(clean), summary.Min)
				assert.Equal(t, maxInt(clean), summary.Max)
			}
		}
	}
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs {
		if x < m {
			m = x
		}
	}
	return m
}

func maxInt(xs []int) int {
	m := xs[0]
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
