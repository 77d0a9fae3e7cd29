// Package stats runs the two-sample t-test used to compare price ratios.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when a sample has fewer than two usable values.
var ErrInsufficientData = errors.New("insufficient data for t-test")

// TTestResult holds a two-sided independent-samples t-test.
type TTestResult struct {
	Statistic float64 // t for mean(a) - mean(b)
	PValue    float64 // two-sided
	DF        float64
	MeanA     float64
	MeanB     float64
	NA        int
	NB        int
}

// TTest compares the means of a and b, skipping NaN values. With equalVar it
// uses the pooled-variance Student test, otherwise Welch's test.
func TTest(a, b []float64, equalVar bool) (TTestResult, error) {
	a, b = DropNaN(a), DropNaN(b)
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, fmt.Errorf("%w: samples of %d and %d", ErrInsufficientData, len(a), len(b))
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	na, nb := float64(len(a)), float64(len(b))

	var se, df float64
	if equalVar {
		df = na + nb - 2
		pooled := ((na-1)*varA + (nb-1)*varB) / df
		se = math.Sqrt(pooled * (1/na + 1/nb))
	} else {
		qa, qb := varA/na, varB/nb
		se = math.Sqrt(qa + qb)
		df = (qa + qb) * (qa + qb) / (qa*qa/(na-1) + qb*qb/(nb-1))
	}

	t := (meanA - meanB) / se
	res := TTestResult{
		Statistic: t,
		DF:        df,
		MeanA:     meanA,
		MeanB:     meanB,
		NA:        len(a),
		NB:        len(b),
	}
	switch {
	case math.IsNaN(t):
		res.PValue = math.NaN()
	case math.IsInf(t, 0):
		res.PValue = 0
	default:
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		res.PValue = 2 * dist.Survival(math.Abs(t))
	}
	return res, nil
}

// DropNaN returns the non-NaN values of xs in order.
func DropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// MeanStd returns the mean and sample standard deviation of the non-NaN values.
func MeanStd(xs []float64) (mean, std float64) {
	xs = DropNaN(xs)
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
