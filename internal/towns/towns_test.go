package towns

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/states"
	"collegetowns/internal/types"
)

const sample = `Alabama[edit]
Auburn (Auburn University)[1]
Florence (University of North Alabama)
Michigan[edit]
Ann Arbor, Michigan[5]
Ypsilanti (Eastern Michigan University)[6]

New York[edit]
New York (multiple universities)
  Ithaca (Cornell University)[14]
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sample), states.Default())
	require.NoError(t, err)

	want := []types.UniversityTown{
		{State: "Alabama", RegionName: "Auburn"},
		{State: "Alabama", RegionName: "Florence"},
		{State: "Michigan", RegionName: "Ann Arbor, Michigan"},
		{State: "Michigan", RegionName: "Ypsilanti"},
		{State: "New York", RegionName: "Ithaca"},
	}
	// "New York (multiple universities)" cleans to a state name and is a header.
	assert.Equal(t, want, got)
}

func TestParseIsIdempotent(t *testing.T) {
	names := states.Default()
	first, err := Parse(strings.NewReader(sample), names)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, first))

	second, err := Parse(&buf, names)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseTownBeforeHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("Springfield\nOhio[edit]\n"), states.Default())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeParsing))
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"Michigan[edit]":                   "Michigan",
		"Ann Arbor, Michigan[5]":           "Ann Arbor, Michigan",
		"  Auburn (Auburn University)[1] ": "Auburn",
		"Fairbanks":                        "Fairbanks",
		"(no name)":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Clean(in), in)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "university_towns.txt"), states.Default())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTypeFileNotFound))
}

func TestSetDeduplicates(t *testing.T) {
	set := Set([]types.UniversityTown{
		{State: "Ohio", RegionName: "Athens"},
		{State: "Ohio", RegionName: "Athens"},
		{State: "Georgia", RegionName: "Athens"},
	})
	assert.Len(t, set, 2)
}
