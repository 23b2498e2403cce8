package analyzer

import (
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"

	"github.com/nao1215/numstat/internal/model"
)

// minQuartileCount is the smallest list size for which quartiles are computed.
const minQuartileCount = 4

// sortedCopy returns an ascending copy of xs.
func sortedCopy(xs []float64) []float64 {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return sorted
}

// Sum returns the sum of xs, accumulated in input order.
func Sum(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stats.Sample{Xs: xs}.Sum()
}

// Average returns Sum(xs) / len(xs), or 0 for an empty list.
func Average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Sum(xs) / float64(len(xs))
}

// Median returns the middle value of xs.
// For an even count it is the mean of the two middle values.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	sorted := sortedCopy(xs)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// Mode returns the most frequent value of xs.
//
// Runs of equal values are scanned in ascending order and the mode changes
// only when a run becomes strictly longer than every earlier run, so ties go
// to the smallest value. A list without repeats yields its minimum.
func Mode(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	sorted := sortedCopy(xs)
	mode := sorted[0]
	maxRun, run := 1, 1

	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			run = 1
			continue
		}
		run++
		if run > maxRun {
			maxRun = run
			mode = sorted[i]
		}
	}

	return mode
}

// StdDev returns the population standard deviation of xs (divisor len(xs)).
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	avg := Average(xs)
	var sumSquares float64
	for _, x := range xs {
		diff := x - avg
		sumSquares += diff * diff
	}

	return math.Sqrt(sumSquares / float64(len(xs)))
}

// Variance returns StdDev(xs) squared.
func Variance(xs []float64) float64 {
	sd := StdDev(xs)
	return sd * sd
}

// Quartiles returns the values at floor(n/4), floor(n/2) and floor(3n/4) of
// the sorted list. Lists shorter than four elements yield all zeros.
func Quartiles(xs []float64) model.Quartiles {
	if len(xs) < minQuartileCount {
		return model.Quartiles{}
	}

	sorted := sortedCopy(xs)
	n := len(sorted)
	return model.Quartiles{
		Q1: sorted[n/4],
		Q2: sorted[n/2],
		Q3: sorted[(3*n)/4],
	}
}

// Bounds returns the minimum and maximum of xs, or zeros for an empty list.
func Bounds(xs []float64) (minVal, maxVal float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return stats.Sample{Xs: xs}.Bounds()
}

// Signs counts strictly positive, strictly negative and zero values.
func Signs(xs []float64) model.SignCounts {
	var counts model.SignCounts
	for _, x := range xs {
		switch {
		case x > 0:
			counts.Positive++
		case x < 0:
			counts.Negative++
		default:
			counts.Zero++
		}
	}
	return counts
}

// Summarize computes every statistic for xs.
func Summarize(xs []float64) *model.Summary {
	minVal, maxVal := Bounds(xs)
	sd := StdDev(xs)
	q := Quartiles(xs)

	return &model.Summary{
		Count:     len(xs),
		Sum:       Sum(xs),
		Average:   Average(xs),
		Median:    Median(xs),
		Mode:      Mode(xs),
		Min:       minVal,
		Max:       maxVal,
		Range:     maxVal - minVal,
		StdDev:    sd,
		Variance:  sd * sd,
		Quartiles: q,
		IQR:       q.Q3 - q.Q1,
		Signs:     Signs(xs),
	}
}
