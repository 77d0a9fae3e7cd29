// Package towns parses the copy-pasted list of US college towns.
//
// The list interleaves state header lines ("Michigan[edit]") with town lines
// ("Ann Arbor (University of Michigan)[5]"). Each town is attached to the most
// recent header above it.
package towns

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/states"
	"collegetowns/internal/types"
)

// Load reads and parses the town list at path.
func Load(path string, names states.Names) ([]types.UniversityTown, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFileNotFoundError(path, err)
	}
	defer f.Close()

	towns, err := Parse(f, names)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return towns, nil
}

// Parse turns the raw list into (state, town) pairs. A line whose cleaned text is
// exactly a full state name in names is a header, even if a town shares the name.
func Parse(r io.Reader, names states.Names) ([]types.UniversityTown, error) {
	var (
		towns []types.UniversityTown
		state string
		line  int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		name := Clean(scanner.Text())
		if name == "" {
			continue
		}
		if names.IsName(name) {
			state = name
			continue
		}
		if state == "" {
			return nil, apperrors.NewParseError(fmt.Sprintf("line %d: town %q appears before any state header", line, name), nil)
		}
		towns = append(towns, types.UniversityTown{State: state, RegionName: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewParseError("read town list", err)
	}
	return towns, nil
}

// Clean drops everything from the first "(" and then from the first "[" and
// trims the remainder.
func Clean(s string) string {
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "["); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Write renders towns back into the list format, emitting a "State[edit]"
// header whenever the state changes.
func Write(w io.Writer, towns []types.UniversityTown) error {
	bw := bufio.NewWriter(w)
	state := ""
	for _, t := range towns {
		if t.State != state || state == "" {
			if _, err := fmt.Fprintf(bw, "%s[edit]\n", t.State); err != nil {
				return err
			}
			state = t.State
		}
		if _, err := fmt.Fprintln(bw, t.RegionName); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Set returns the distinct keys of towns.
func Set(towns []types.UniversityTown) map[types.CityKey]struct{} {
	set := make(map[types.CityKey]struct{}, len(towns))
	for _, t := range towns {
		set[t.Key()] = struct{}{}
	}
	return set
}
