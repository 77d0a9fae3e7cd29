// Package gdp loads the quarterly US GDP series and locates the recession in it.
//
// A recession starts with two consecutive quarters of decline and ends with two
// consecutive quarters of growth. All detection runs on the chained-dollar values.
package gdp

import (
	"fmt"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/quarter"
	"collegetowns/internal/types"
)

// RecessionStart returns the second quarter of the first run of two consecutive
// declines.
func RecessionStart(series []types.GDPPoint) (quarter.Label, error) {
	i, err := startIndex(series)
	if err != nil {
		return "", err
	}
	return series[i].Quarter, nil
}

// RecessionEnd returns the second quarter of the first run of two consecutive
// rises at or after the recession start.
func RecessionEnd(series []types.GDPPoint) (quarter.Label, error) {
	s, err := startIndex(series)
	if err != nil {
		return "", err
	}
	e, err := endIndex(series, s)
	if err != nil {
		return "", err
	}
	return series[e].Quarter, nil
}

// RecessionBottom returns the quarter with the lowest GDP between start and end
// inclusive. The earliest quarter wins a tie.
func RecessionBottom(series []types.GDPPoint) (quarter.Label, error) {
	r, err := Detect(series)
	if err != nil {
		return "", err
	}
	return r.Bottom, nil
}

// Detect finds start, end and bottom in one pass over the series.
func Detect(series []types.GDPPoint) (types.Recession, error) {
	s, err := startIndex(series)
	if err != nil {
		return types.Recession{}, err
	}
	e, err := endIndex(series, s)
	if err != nil {
		return types.Recession{}, err
	}
	b := s
	for i := s + 1; i <= e; i++ {
		if series[i].Chained < series[b].Chained {
			b = i
		}
	}
	return types.Recession{
		Start:  series[s].Quarter,
		End:    series[e].Quarter,
		Bottom: series[b].Quarter,
	}, nil
}

func startIndex(series []types.GDPPoint) (int, error) {
	for i := 0; i+2 < len(series); i++ {
		first, second, third := series[i].Chained, series[i+1].Chained, series[i+2].Chained
		if second < first && third < second {
			return i + 1, nil
		}
	}
	return -1, apperrors.NewNoRecessionError(fmt.Sprintf("no two consecutive quarters of decline in %d quarters", len(series)))
}

func endIndex(series []types.GDPPoint, start int) (int, error) {
	for i := start; i+2 < len(series); i++ {
		first, second, third := series[i].Chained, series[i+1].Chained, series[i+2].Chained
		if second > first && third > second {
			return i + 2, nil
		}
	}
	return -1, apperrors.NewNoRecessionError(fmt.Sprintf("no two consecutive quarters of growth after %s", series[start].Quarter))
}

// Window returns the points between from and to inclusive.
func Window(series []types.GDPPoint, from, to quarter.Label) []types.GDPPoint {
	var out []types.GDPPoint
	for _, p := range series {
		if !p.Quarter.Before(from) && !to.Before(p.Quarter) {
			out = append(out, p)
		}
	}
	return out
}
