package housing

import (
	"fmt"
	"math"
	"strings"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/quarter"
	"collegetowns/internal/types"
)

// Row is one city with its quarterly mean home values, aligned with Table.Quarters.
// A quarter with no monthly values holds NaN.
type Row struct {
	Key    types.CityKey
	Values []float64
}

// Table is the quarterly housing table keyed by (State, RegionName).
type Table struct {
	Quarters []quarter.Label
	Rows     []Row

	index map[quarter.Label]int
}

func newTable(quarters []quarter.Label) *Table {
	t := &Table{Quarters: quarters, index: make(map[quarter.Label]int, len(quarters))}
	for i, q := range quarters {
		t.index[q] = i
	}
	return t
}

// Index returns the column position of q.
func (t *Table) Index(q quarter.Label) (int, bool) {
	i, ok := t.index[q]
	return i, ok
}

// Value returns row i's mean for quarter q, or NaN if q is not a column.
func (t *Table) Value(i int, q quarter.Label) float64 {
	c, ok := t.index[q]
	if !ok {
		return math.NaN()
	}
	return t.Rows[i].Values[c]
}

// Column returns every row's value for q.
func (t *Table) Column(q quarter.Label) ([]float64, error) {
	if _, ok := t.index[q]; !ok {
		return nil, apperrors.NewLookupError(fmt.Sprintf("quarter %s is not a housing column", q))
	}
	out := make([]float64, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Value(i, q)
	}
	return out, nil
}

// Preceding returns the column immediately before q.
func (t *Table) Preceding(q quarter.Label) (quarter.Label, error) {
	c, ok := t.index[q]
	if !ok {
		return "", apperrors.NewLookupError(fmt.Sprintf("quarter %s is not a housing column", q))
	}
	if c == 0 {
		return "", apperrors.NewLookupError(fmt.Sprintf("no housing column before %s", q))
	}
	return t.Quarters[c-1], nil
}

// Find returns the first row whose key matches key, ignoring letter case.
func (t *Table) Find(key types.CityKey) (Row, bool) {
	for _, r := range t.Rows {
		if strings.EqualFold(r.Key.State, key.State) && strings.EqualFold(r.Key.RegionName, key.RegionName) {
			return r, true
		}
	}
	return Row{}, false
}
