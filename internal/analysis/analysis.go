// Package analysis tests whether university towns kept their home values better
// than other towns through the recession.
//
// For every city the price ratio is the mean home value in the quarter before
// the recession starts divided by the value at the recession bottom; a lower
// ratio means prices fell less.
package analysis

import (
	"fmt"
	"math"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/gdp"
	"collegetowns/internal/housing"
	"collegetowns/internal/quarter"
	"collegetowns/internal/stats"
	"collegetowns/internal/towns"
	"collegetowns/internal/types"
)

// CityRatio is one city's before-recession / bottom price ratio.
type CityRatio struct {
	Key    types.CityKey
	Before float64
	Bottom float64
	Ratio  float64 // NaN when either price is missing or the bottom is zero
}

// DefaultAlpha is the significance level used when Inputs.Alpha is zero.
const DefaultAlpha = 0.01

// Inputs are the already-loaded sources of one analysis.
type Inputs struct {
	Towns         []types.UniversityTown
	GDP           []types.GDPPoint
	Housing       *housing.Table
	Alpha         float64
	EqualVariance bool
}

// Report is the test result together with the per-city ratios behind it.
type Report struct {
	Result     types.Result
	University []CityRatio
	Other      []CityRatio
	Table      *housing.Table
}

// Analyze runs the hypothesis test on loaded inputs.
func Analyze(in Inputs) (*Report, error) {
	alpha := in.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if alpha < 0 || alpha >= 1 {
		return nil, apperrors.NewConfigError(fmt.Sprintf("alpha must be in (0, 1), got %v", alpha), nil)
	}

	rec, err := gdp.Detect(in.GDP)
	if err != nil {
		return nil, err
	}
	before, err := in.Housing.Preceding(rec.Start)
	if err != nil {
		return nil, fmt.Errorf("quarter before recession start: %w", err)
	}
	ratios, err := Ratios(in.Housing, before, rec.Bottom)
	if err != nil {
		return nil, fmt.Errorf("recession bottom: %w", err)
	}
	uni, other := Partition(ratios, towns.Set(in.Towns))

	tt, err := stats.TTest(values(uni), values(other), in.EqualVariance)
	if err != nil {
		return nil, fmt.Errorf("compare %d university and %d other towns: %w", len(uni), len(other), err)
	}

	return &Report{
		Result: types.Result{
			Different:       tt.PValue < alpha,
			Statistic:       tt.Statistic,
			PValue:          tt.PValue,
			Better:          Better(tt.MeanA, tt.MeanB),
			UniversityMean:  tt.MeanA,
			OtherMean:       tt.MeanB,
			UniversityN:     tt.NA,
			OtherN:          tt.NB,
			BeforeRecession: before,
			Recession:       rec,
		},
		University: uni,
		Other:      other,
		Table:      in.Housing,
	}, nil
}

// Better names the group with the strictly lower mean ratio; a tie goes to the
// non-university towns.
func Better(universityMean, otherMean float64) string {
	if universityMean < otherMean {
		return types.GroupUniversity
	}
	return types.GroupNonUniversity
}

// Ratios computes before/bottom for every row of tbl. Both quarters must be
// columns of tbl.
func Ratios(tbl *housing.Table, before, bottom quarter.Label) ([]CityRatio, error) {
	bv, err := tbl.Column(before)
	if err != nil {
		return nil, err
	}
	mv, err := tbl.Column(bottom)
	if err != nil {
		return nil, err
	}
	out := make([]CityRatio, len(tbl.Rows))
	for i, row := range tbl.Rows {
		b, m := bv[i], mv[i]
		r := b / m
		if math.IsNaN(r) || math.IsInf(r, 0) {
			r = math.NaN()
		}
		out[i] = CityRatio{Key: row.Key, Before: b, Bottom: m, Ratio: r}
	}
	return out, nil
}

// Partition splits ratios into rows whose key is a university town and the rest.
// Every input row lands in exactly one output slice.
func Partition(ratios []CityRatio, uni map[types.CityKey]struct{}) (university, other []CityRatio) {
	for _, r := range ratios {
		if _, ok := uni[r.Key]; ok {
			university = append(university, r)
		} else {
			other = append(other, r)
		}
	}
	return university, other
}

func values(rs []CityRatio) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Ratio
	}
	return out
}
