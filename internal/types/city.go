package types

import "collegetowns/internal/quarter"

// CityKey identifies a city row in the housing table.
type CityKey struct {
	State      string // full state name, e.g. "Michigan"
	RegionName string
}

// UniversityTown is one entry of the college-town list.
type UniversityTown struct {
	State      string
	RegionName string
}

// Key returns the town's housing-table key.
func (u UniversityTown) Key() CityKey {
	return CityKey{State: u.State, RegionName: u.RegionName}
}

// GDPPoint holds one quarter of US GDP in billions of dollars.
type GDPPoint struct {
	Quarter quarter.Label
	Current float64 // current dollars
	Chained float64 // chained 2009 dollars
}

// Recession is the window detected from the chained GDP series.
type Recession struct {
	Start  quarter.Label
	End    quarter.Label
	Bottom quarter.Label
}

// Group labels for the t-test outcome.
const (
	GroupUniversity    = "university town"
	GroupNonUniversity = "non-university town"
)

// Result is the outcome of the university-town hypothesis test.
type Result struct {
	Different bool    // p-value below the significance level
	Statistic float64 // t statistic, university minus other
	PValue    float64
	Better    string // group whose mean price ratio is lower

	UniversityMean float64
	OtherMean      float64
	UniversityN    int
	OtherN         int

	BeforeRecession quarter.Label
	Recession       Recession
}

// Tuple returns the (different, statistic, better) triple.
func (r Result) Tuple() (bool, float64, string) {
	return r.Different, r.Statistic, r.Better
}
