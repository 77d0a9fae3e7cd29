// Package housing turns the wide Zillow city table (one column per month) into
// quarterly means keyed by full state name and region.
package housing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/quarter"
	"collegetowns/internal/states"
	"collegetowns/internal/types"
)

// Identifying columns of the city table. Only RegionName and State are kept.
const (
	ColRegionID   = "RegionID"
	ColRegionName = "RegionName"
	ColState      = "State"
	ColMetro      = "Metro"
	ColCountyName = "CountyName"
	ColSizeRank   = "SizeRank"
)

// Reshape groups the month columns of header/records into quarters and averages
// each row over the months present. Columns starting with "1" (the 1990s) are
// dropped; State abbreviations are translated with names.
func Reshape(header []string, records [][]string, names states.Names) (*Table, error) {
	regionCol, stateCol := -1, -1
	groups := make(map[quarter.Label][]int)
	for i, col := range header {
		col = strings.TrimSpace(col)
		switch {
		case strings.HasPrefix(col, "1"):
			continue
		case col == ColRegionName:
			regionCol = i
		case col == ColState:
			stateCol = i
		case col == ColRegionID, col == ColMetro, col == ColCountyName, col == ColSizeRank:
			continue
		case quarter.IsMonth(col):
			q, err := quarter.FromMonth(col)
			if err != nil {
				return nil, err
			}
			groups[q] = append(groups[q], i)
		}
	}
	if regionCol < 0 || stateCol < 0 {
		return nil, apperrors.NewParseError(fmt.Sprintf("housing header needs %s and %s columns", ColRegionName, ColState), nil)
	}

	quarters := make([]quarter.Label, 0, len(groups))
	for q := range groups {
		quarters = append(quarters, q)
	}
	sort.Slice(quarters, func(i, j int) bool { return quarters[i].Before(quarters[j]) })

	t := newTable(quarters)
	t.Rows = make([]Row, 0, len(records))
	for n, rec := range records {
		abbr := strings.TrimSpace(field(rec, stateCol))
		state, ok := names.Name(abbr)
		if !ok {
			return nil, apperrors.NewLookupError(fmt.Sprintf("record %d: unknown state abbreviation %q", n+1, abbr))
		}
		row := Row{
			Key:    types.CityKey{State: state, RegionName: field(rec, regionCol)},
			Values: make([]float64, len(quarters)),
		}
		for c, q := range quarters {
			mean, err := meanOf(rec, groups[q])
			if err != nil {
				return nil, apperrors.NewParseError(fmt.Sprintf("record %d (%s, %s) quarter %s", n+1, state, row.Key.RegionName, q), err)
			}
			row.Values[c] = mean
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// meanOf averages the non-empty, non-NaN cells at cols; NaN when there are none.
func meanOf(rec []string, cols []int) (float64, error) {
	var sum float64
	var k int
	for _, c := range cols {
		s := strings.TrimSpace(field(rec, c))
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) {
			continue
		}
		sum += v
		k++
	}
	if k == 0 {
		return math.NaN(), nil
	}
	return sum / float64(k), nil
}
