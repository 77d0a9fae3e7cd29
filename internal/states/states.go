// Package states maps two-letter US state and territory abbreviations to the
// full names used by the university-town list.
package states

import (
	"sort"
	"strings"
)

// Names is an immutable abbreviation -> full name mapping.
type Names struct {
	byAbbr map[string]string
	byName map[string]string
}

// New copies m into a Names value; later changes to m are not observed.
func New(m map[string]string) Names {
	n := Names{
		byAbbr: make(map[string]string, len(m)),
		byName: make(map[string]string, len(m)),
	}
	for abbr, name := range m {
		n.byAbbr[abbr] = name
		n.byName[name] = abbr
	}
	return n
}

// Default returns the mapping used for the Zillow city dataset.
func Default() Names {
	return New(map[string]string{
		"OH": "Ohio", "KY": "Kentucky", "AS": "American Samoa", "NV": "Nevada",
		"WY": "Wyoming", "NA": "National", "AL": "Alabama", "MD": "Maryland",
		"AK": "Alaska", "UT": "Utah", "OR": "Oregon", "MT": "Montana",
		"IL": "Illinois", "TN": "Tennessee", "DC": "District of Columbia", "VT": "Vermont",
		"ID": "Idaho", "AR": "Arkansas", "ME": "Maine", "WA": "Washington",
		"HI": "Hawaii", "WI": "Wisconsin", "MI": "Michigan", "IN": "Indiana",
		"NJ": "New Jersey", "AZ": "Arizona", "GU": "Guam", "MS": "Mississippi",
		"PR": "Puerto Rico", "NC": "North Carolina", "TX": "Texas", "SD": "South Dakota",
		"MP": "Northern Mariana Islands", "IA": "Iowa", "MO": "Missouri", "CT": "Connecticut",
		"WV": "West Virginia", "SC": "South Carolina", "LA": "Louisiana", "KS": "Kansas",
		"NY": "New York", "NE": "Nebraska", "OK": "Oklahoma", "FL": "Florida",
		"CA": "California", "CO": "Colorado", "PA": "Pennsylvania", "DE": "Delaware",
		"NM": "New Mexico", "RI": "Rhode Island", "MN": "Minnesota", "VI": "Virgin Islands",
		"NH": "New Hampshire", "MA": "Massachusetts", "GA": "Georgia", "ND": "North Dakota",
		"VA": "Virginia",
	})
}

// Name returns the full name for abbr.
func (n Names) Name(abbr string) (string, bool) {
	name, ok := n.byAbbr[abbr]
	return name, ok
}

// Abbr returns the abbreviation for a full name.
func (n Names) Abbr(name string) (string, bool) {
	abbr, ok := n.byName[name]
	return abbr, ok
}

// IsName reports whether s is exactly one of the full names.
func (n Names) IsName(s string) bool {
	_, ok := n.byName[s]
	return ok
}

// FullNames returns the full names in sorted order.
func (n Names) FullNames() []string {
	out := make([]string, 0, len(n.byName))
	for name := range n.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the full name for s, which may be an abbreviation or a full
// name in any letter case.
func (n Names) Resolve(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if name, ok := n.byAbbr[strings.ToUpper(s)]; ok {
		return name, true
	}
	for _, name := range n.FullNames() {
		if strings.EqualFold(name, s) {
			return name, true
		}
	}
	return "", false
}
