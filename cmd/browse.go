package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"

	"collegetowns/internal/analysis"
	"collegetowns/internal/types"
)

// browseLines lists every city with a usable ratio, university towns first,
// each group ordered from the smallest ratio.
func browseLines(rep *analysis.Report) ([]types.CityKey, []string) {
	var keys []types.CityKey
	var lines []string
	add := func(tag string, ratios []analysis.CityRatio) {
		for _, r := range lowestRatios(ratios, 0) {
			keys = append(keys, r.Key)
			lines = append(lines, fmt.Sprintf("[%s] %-40s %-16s %.4f", tag, r.Key.RegionName, r.Key.State, r.Ratio))
		}
	}
	add("U", rep.University)
	add(" ", rep.Other)
	return keys, lines
}

// showCity prints a city's quarterly values from the quarter before the
// recession through its end.
func showCity(w io.Writer, rep *analysis.Report, key types.CityKey) {
	row, ok := rep.Table.Find(key)
	if !ok {
		fmt.Fprintf(w, "no housing row for %s, %s\n", key.RegionName, key.State)
		return
	}
	fmt.Fprintf(w, "%s, %s\n", key.RegionName, key.State)
	renderQuarters(w, rep.Table.Quarters, row.Values, rep.Result.BeforeRecession, rep.Result.Recession.End)
}

// browseCities lets the user move through the city list with the arrow keys
// and press Enter to see a city's quarterly values. Keys are read from stdin;
// everything is drawn on w.
func browseCities(w io.Writer, rep *analysis.Report) {
	keys, lines := browseLines(rep)
	if len(keys) == 0 {
		return
	}

	if runtime.GOOS == "windows" {
		enableVT()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(w, "(interactive browsing not supported on this terminal)")
		return
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(os.Stdin)
	selected := 0

	redraw := func() {
		fmt.Fprint(w, "\033[H\033[2J")
		for i, l := range lines {
			prefix := "  "
			if i == selected {
				prefix = "> "
			}
			fmt.Fprint(w, prefix+l+"\r\n")
		}
		fmt.Fprint(w, "(↑/↓ to navigate, Enter to view quarters, Esc to quit)\r\n")
	}

	// show leaves raw mode for the detail view and returns false when raw
	// mode cannot be restored.
	show := func() bool {
		term.Restore(fd, oldState)
		fmt.Fprintln(w)
		showCity(w, rep, keys[selected])

		fmt.Fprint(w, "\n(press Enter to return)")
		_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

		oldState, err = term.MakeRaw(fd)
		if err != nil {
			return false
		}
		reader = bufio.NewReader(os.Stdin)
		redraw()
		return true
	}

	up := func() {
		if selected > 0 {
			selected--
			redraw()
		}
	}
	down := func() {
		if selected < len(keys)-1 {
			selected++
			redraw()
		}
	}

	redraw()

	for {
		b1, err := reader.ReadByte()
		if err != nil {
			return
		}
		// Windows console arrow sequences (0 or 224, then code)
		if b1 == 0 || b1 == 224 {
			b2, _ := reader.ReadByte()
			switch b2 {
			case 72:
				up()
			case 80:
				down()
			case 13:
				if !show() {
					return
				}
			}
			continue
		}

		switch b1 {
		case 27: // ESC or ANSI sequence
			if reader.Buffered() == 0 {
				fmt.Fprint(w, "\r\n")
				return
			}
			b2, _ := reader.ReadByte()
			if b2 != '[' || reader.Buffered() == 0 {
				continue
			}
			b3, _ := reader.ReadByte()
			switch b3 {
			case 'A':
				up()
			case 'B':
				down()
			}
		case '\r', '\n':
			if !show() {
				return
			}
		case 3: // Ctrl-C
			fmt.Fprint(w, "\r\n")
			return
		}
	}
}
