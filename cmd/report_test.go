package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collegetowns/internal/analysis"
	"collegetowns/internal/housing"
	"collegetowns/internal/quarter"
	"collegetowns/internal/states"
	"collegetowns/internal/types"
)

func sampleReport() *analysis.Report {
	uni := []analysis.CityRatio{
		{Key: types.CityKey{State: "New York", RegionName: "Ithaca"}, Before: 210, Bottom: 200, Ratio: 1.05},
		{Key: types.CityKey{State: "Michigan", RegionName: "Ann Arbor"}, Before: 204, Bottom: 200, Ratio: 1.02},
		{Key: types.CityKey{State: "Ohio", RegionName: "Oberlin"}, Before: 110, Bottom: 100, Ratio: 1.10},
	}
	other := []analysis.CityRatio{
		{Key: types.CityKey{State: "Indiana", RegionName: "Gary"}, Ratio: math.NaN()},
		{Key: types.CityKey{State: "Nevada", RegionName: "Las Vegas"}, Before: 270, Bottom: 300, Ratio: 0.90},
		{Key: types.CityKey{State: "Arizona", RegionName: "Phoenix"}, Before: 255, Bottom: 300, Ratio: 0.85},
	}
	return &analysis.Report{
		Result: types.Result{
			Different:       true,
			Statistic:       7.13,
			PValue:          0.0001,
			Better:          types.GroupNonUniversity,
			UniversityMean:  1.0567,
			OtherMean:       0.875,
			UniversityN:     3,
			OtherN:          2,
			BeforeRecession: "2007q4",
			Recession:       types.Recession{Start: "2008q1", End: "2009q2", Bottom: "2008q4"},
		},
		University: uni,
		Other:      other,
	}
}

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	renderResult(&buf, sampleReport().Result, 0.01, false)

	out := buf.String()
	assert.Contains(t, out, "Recession start    : 2008q1")
	assert.Contains(t, out, "Recession bottom   : 2008q4")
	assert.Contains(t, out, "Quarter before     : 2007q4")
	assert.Contains(t, out, "Different (p<0.01) : yes")
	assert.Contains(t, out, "Better             : non-university town")
	assert.NotContains(t, out, colorGreen)

	buf.Reset()
	renderResult(&buf, sampleReport().Result, 0.01, true)
	assert.Contains(t, buf.String(), colorGreen+"yes"+colorReset)
}

func TestLowestRatios(t *testing.T) {
	rep := sampleReport()

	got := lowestRatios(rep.Other, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Phoenix", got[0].Key.RegionName)
	assert.Equal(t, "Las Vegas", got[1].Key.RegionName)

	got = lowestRatios(rep.University, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann Arbor", got[0].Key.RegionName)
}

func TestRenderRatios(t *testing.T) {
	var buf bytes.Buffer
	renderRatios(&buf, "Other towns", sampleReport().Other, 5)

	out := buf.String()
	assert.Contains(t, out, "Other towns (2 lowest of 3)")
	assert.Contains(t, out, "Mean ratio 0.8750 ± 0.0354")
	assert.Contains(t, out, "Phoenix")
	assert.Contains(t, out, "0.8500")
	assert.NotContains(t, out, "Gary")
}

func TestRenderRecession(t *testing.T) {
	rec := types.Recession{Start: "2008q3", End: "2009q4", Bottom: "2009q2"}
	window := []types.GDPPoint{
		{Quarter: "2008q2", Current: 14843.0, Chained: 14963.4},
		{Quarter: "2008q3", Current: 14549.9, Chained: 14891.6},
		{Quarter: "2009q2", Current: 14340.4, Chained: 14355.6},
		{Quarter: "2009q4", Current: 14566.5, Chained: 14541.9},
	}
	var buf bytes.Buffer
	renderRecession(&buf, rec, window)

	out := buf.String()
	assert.Contains(t, out, "Recession 2008q3 - 2009q4, bottom 2009q2")
	assert.Contains(t, out, "14355.6")
	assert.Contains(t, out, "bottom")
	assert.Contains(t, out, "end")
}

func TestRenderQuartersWindow(t *testing.T) {
	quarters := []quarter.Label{"2007q3", "2007q4", "2008q1", "2008q2"}
	values := []float64{100, 101, math.NaN(), 99}

	var buf bytes.Buffer
	renderQuarters(&buf, quarters, values, "2007q4", "2008q1")

	out := buf.String()
	assert.NotContains(t, out, "2007q3")
	assert.Contains(t, out, "2007q4")
	assert.Contains(t, out, "2008q1")
	assert.NotContains(t, out, "2008q2")
	assert.Contains(t, out, " - ")
}

func TestRenderTowns(t *testing.T) {
	var buf bytes.Buffer
	renderTowns(&buf, []types.UniversityTown{{State: "Alabama", RegionName: "Auburn"}}, states.Default())
	assert.Contains(t, buf.String(), "Auburn")
	assert.Contains(t, buf.String(), " AL ")
	assert.Contains(t, buf.String(), "1 towns")
}

func TestUseColorOnBuffer(t *testing.T) {
	assert.False(t, useColor(&bytes.Buffer{}))
}

func TestWriteHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratios.png")
	require.NoError(t, writeHistogram(path, sampleReport()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	empty := &analysis.Report{Other: []analysis.CityRatio{{Ratio: math.NaN()}}}
	assert.Error(t, writeHistogram(filepath.Join(t.TempDir(), "empty.png"), empty))
}

func TestBrowseLines(t *testing.T) {
	keys, lines := browseLines(sampleReport())
	require.Len(t, keys, 5)
	assert.Equal(t, "Ann Arbor", keys[0].RegionName)
	assert.Equal(t, "Phoenix", keys[3].RegionName)
	assert.Contains(t, lines[0], "[U]")
	assert.Contains(t, lines[4], "0.9000")
}

func TestShowCityWritesToWriter(t *testing.T) {
	rep := sampleReport()
	tbl, err := housing.Reshape(
		[]string{"RegionName", "State", "2007-07", "2007-10", "2008-10", "2009-04", "2009-10"},
		[][]string{{"Ithaca", "NY", "200", "210", "200", "205", "220"}},
		states.Default(),
	)
	require.NoError(t, err)
	rep.Table = tbl

	var buf bytes.Buffer
	showCity(&buf, rep, types.CityKey{State: "New York", RegionName: "Ithaca"})
	out := buf.String()
	assert.Contains(t, out, "Ithaca, New York")
	assert.Contains(t, out, "2007q4")
	assert.Contains(t, out, "2009q2")
	assert.NotContains(t, out, "2007q3")
	assert.NotContains(t, out, "2009q4")

	buf.Reset()
	showCity(&buf, rep, types.CityKey{State: "Ohio", RegionName: "Oberlin"})
	assert.Contains(t, buf.String(), "no housing row for Oberlin, Ohio")
}
