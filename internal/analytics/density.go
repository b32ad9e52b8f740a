package analytics

import (
	"math"

	"jobpulse/pkg/contracts/domain"
)

const (
	// DefaultBandwidth is the KDE bandwidth in salary units
	DefaultBandwidth = 10000.0
	// DefaultThresholds is the approximate number of KDE evaluation points
	DefaultThresholds = 100
)

// Kernel is a smoothing kernel evaluated at a distance from an observation
type Kernel func(float64) float64

// Epanechnikov returns the Epanechnikov kernel scaled to bandwidth
func Epanechnikov(bandwidth float64) Kernel {
	if bandwidth <= 0 {
		bandwidth = DefaultBandwidth
	}
	return func(x float64) float64 {
		u := x / bandwidth
		if math.Abs(u) > 1 {
			return 0
		}
		return 0.75 * (1 - u*u) / bandwidth
	}
}

// Density evaluates the kernel density estimate of values at each threshold
func Density(kernel Kernel, thresholds []float64, values []int) []domain.DensityPoint {
	points := make([]domain.DensityPoint, len(thresholds))
	for i, t := range thresholds {
		var sum float64
		for _, v := range values {
			sum += kernel(t - float64(v))
		}
		d := 0.0
		if len(values) > 0 {
			d = sum / float64(len(values))
		}
		points[i] = domain.DensityPoint{Salary: t, Density: d}
	}
	return points
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickStep returns a 1, 2 or 5 times power-of-ten step that splits
// [start, stop] into roughly count intervals
func tickStep(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	base := math.Pow(10, power)
	ratio := step / base
	switch {
	case ratio >= e10:
		base *= 10
	case ratio >= e5:
		base *= 5
	case ratio >= e2:
		base *= 2
	}
	return base
}

// Ticks returns evenly spaced round values inside [start, stop], roughly
// count of them
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 {
		count = DefaultThresholds
	}
	if math.IsNaN(start) || math.IsNaN(stop) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return []float64{}
	}
	if stop < start {
		start, stop = stop, start
	}
	if stop == start {
		return []float64{start}
	}
	step := tickStep(start, stop, count)
	i0 := math.Ceil(start / step)
	i1 := math.Floor(stop / step)
	ticks := make([]float64, 0, int(i1-i0)+1)
	for i := i0; i <= i1; i++ {
		ticks = append(ticks, i*step)
	}
	return ticks
}
