package gdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/quarter"
	"collegetowns/internal/types"
)

func series(start quarter.Label, values ...float64) []types.GDPPoint {
	out := make([]types.GDPPoint, len(values))
	q := start
	for i, v := range values {
		out[i] = types.GDPPoint{Quarter: q, Chained: v}
		// advance one quarter
		if q.Number() == 4 {
			q = quarter.New(q.Year()+1, 1)
		} else {
			q = quarter.New(q.Year(), q.Number()+1)
		}
	}
	return out
}

func TestDetectSimpleRecession(t *testing.T) {
	s := series("2000q1", 100, 98, 96, 97, 99)

	start, err := RecessionStart(s)
	require.NoError(t, err)
	assert.Equal(t, quarter.Label("2000q2"), start)

	end, err := RecessionEnd(s)
	require.NoError(t, err)
	assert.Equal(t, quarter.Label("2001q1"), end)

	bottom, err := RecessionBottom(s)
	require.NoError(t, err)
	assert.Equal(t, quarter.Label("2000q3"), bottom)
}

func TestDetectIgnoresSingleDips(t *testing.T) {
	// 2000q3 dips once; the recession proper starts at 2001q1.
	s := series("2000q1", 100, 101, 100.5, 102, 101, 99, 98.5, 99, 98, 99.5, 100.2, 101)
	r, err := Detect(s)
	require.NoError(t, err)
	assert.Equal(t, quarter.Label("2001q1"), r.Start)
	assert.Equal(t, quarter.Label("2002q3"), r.End)
	assert.Equal(t, quarter.Label("2002q1"), r.Bottom)
}

func TestDetectStartBeforeBottomBeforeEnd(t *testing.T) {
	cases := [][]float64{
		{100, 98, 96, 97, 99},
		{5, 4, 3, 2, 1, 2, 3},
		{10, 11, 9, 8, 8, 7, 9, 10, 11},
		{3, 2, 1, 1, 1, 2, 3},
	}
	for _, values := range cases {
		s := series("2000q1", values...)
		r, err := Detect(s)
		require.NoError(t, err, values)

		idx := func(q quarter.Label) int {
			for i, p := range s {
				if p.Quarter == q {
					return i
				}
			}
			return -1
		}
		assert.Less(t, idx(r.Start), idx(r.Bottom), values)
		assert.LessOrEqual(t, idx(r.Bottom), idx(r.End), values)
	}
}

func TestBottomTieTakesEarliest(t *testing.T) {
	s := series("2008q1", 10, 9, 8, 8, 9, 10)
	r, err := Detect(s)
	require.NoError(t, err)
	assert.Equal(t, quarter.Label("2008q3"), r.Bottom)
	assert.Equal(t, quarter.Label("2009q2"), r.End)
}

func TestNoRecession(t *testing.T) {
	_, err := RecessionStart(series("2000q1", 1, 2, 3, 2, 3, 4))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeNoRecession))

	_, err = RecessionEnd(series("2000q1", 5, 4, 3, 4, 3, 4))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeNoRecession))

	_, err = Detect(nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeNoRecession))
}

func TestWindow(t *testing.T) {
	s := series("2000q1", 1, 2, 3, 4, 5)
	w := Window(s, "2000q2", "2000q4")
	require.Len(t, w, 3)
	assert.Equal(t, quarter.Label("2000q2"), w[0].Quarter)
	assert.Equal(t, quarter.Label("2000q4"), w[2].Quarter)
}
