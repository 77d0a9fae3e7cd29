package housing

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/quarter"
	"collegetowns/internal/states"
	"collegetowns/internal/types"
)

var header = []string{
	"RegionID", "RegionName", "State", "Metro", "CountyName", "SizeRank",
	"1999-11", "1999-12", "2000-01", "2000-02", "2000-03", "2000-04", "2000-05", "2000-06", "2000-07",
}

func TestReshape(t *testing.T) {
	records := [][]string{
		{"6181", "New York", "NY", "New York", "Queens", "1", "90", "95", "100", "110", "120", "200", "", "220", "300"},
		{"274772", "Ann Arbor", "MI", "Ann Arbor", "Washtenaw", "2", "", "", "150", "", "", "", "", "", ""},
	}

	tbl, err := Reshape(header, records, states.Default())
	require.NoError(t, err)

	assert.Equal(t, []quarter.Label{"2000q1", "2000q2", "2000q3"}, tbl.Quarters)
	require.Len(t, tbl.Rows, 2)

	ny := tbl.Rows[0]
	assert.Equal(t, types.CityKey{State: "New York", RegionName: "New York"}, ny.Key)
	assert.InDelta(t, 110.0, ny.Values[0], 1e-9)
	// two of three months present in q2
	assert.InDelta(t, 210.0, ny.Values[1], 1e-9)
	assert.InDelta(t, 300.0, ny.Values[2], 1e-9)

	aa := tbl.Rows[1]
	assert.Equal(t, "Michigan", aa.Key.State)
	assert.InDelta(t, 150.0, aa.Values[0], 1e-9)
	assert.True(t, math.IsNaN(aa.Values[1]))
	assert.True(t, math.IsNaN(tbl.Value(1, "2000q3")))
	assert.True(t, math.IsNaN(tbl.Value(1, "1999q4")))
}

func TestReshapeMeanOverAvailableMonths(t *testing.T) {
	h := []string{"RegionName", "State", "2010-10", "2010-11", "2010-12"}
	cases := []struct {
		cells []string
		want  float64
	}{
		{[]string{"1", "2", "3"}, 2},
		{[]string{"1", "", "5"}, 3},
		{[]string{"", "", "7"}, 7},
		{[]string{"4", "NaN", "8"}, 6},
	}
	for _, c := range cases {
		rec := append([]string{"Austin", "TX"}, c.cells...)
		tbl, err := Reshape(h, [][]string{rec}, states.Default())
		require.NoError(t, err)
		assert.InDelta(t, c.want, tbl.Rows[0].Values[0], 1e-9, c.cells)
	}
}

func TestReshapeUnknownState(t *testing.T) {
	h := []string{"RegionName", "State", "2010-10"}
	_, err := Reshape(h, [][]string{{"Nowhere", "ZZ", "1"}}, states.Default())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeLookup))
}

func TestReshapeBadValue(t *testing.T) {
	h := []string{"RegionName", "State", "2010-10"}
	_, err := Reshape(h, [][]string{{"Austin", "TX", "abc"}}, states.Default())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeParsing))
}

func TestReshapeMissingKeyColumns(t *testing.T) {
	_, err := Reshape([]string{"RegionName", "2010-10"}, nil, states.Default())
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeParsing))
}

func TestTableLookups(t *testing.T) {
	h := []string{"RegionName", "State", "2007-12", "2008-01", "2008-04"}
	tbl, err := Reshape(h, [][]string{
		{"Boulder", "CO", "10", "20", "30"},
		{"Denver", "CO", "1", "2", "3"},
	}, states.Default())
	require.NoError(t, err)

	prev, err := tbl.Preceding("2008q2")
	require.NoError(t, err)
	assert.Equal(t, quarter.Label("2008q1"), prev)

	_, err = tbl.Preceding("2007q4")
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeLookup))
	_, err = tbl.Preceding("2012q1")
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeLookup))

	col, err := tbl.Column("2008q2")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 3}, col)

	row, ok := tbl.Find(types.CityKey{State: "Colorado", RegionName: "Denver"})
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, row.Values)

	row, ok = tbl.Find(types.CityKey{State: "colorado", RegionName: "DENVER"})
	require.True(t, ok)
	assert.Equal(t, "Denver", row.Key.RegionName)

	_, ok = tbl.Find(types.CityKey{State: "Colorado", RegionName: "Boulder"})
	assert.False(t, ok)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "City_Zhvi_AllHomes.csv")
	data := "RegionID,RegionName,State,Metro,CountyName,SizeRank,2000-01,2000-02\n" +
		"1,Ithaca,NY,Ithaca,Tompkins,900,100,102\n" +
		"2,Austin,TX,Austin,Travis,10,200\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tbl, err := LoadTable(context.Background(), CSVSource{Path: path}, states.Default())
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.InDelta(t, 101.0, tbl.Rows[0].Values[0], 1e-9)
	assert.InDelta(t, 200.0, tbl.Rows[1].Values[0], 1e-9)

	_, _, err = LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeFileNotFound))
}
