package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"collegetowns/internal/analysis"
	"collegetowns/internal/quarter"
	"collegetowns/internal/states"
	"collegetowns/internal/stats"
	"collegetowns/internal/types"
)

// useColor reports whether w is a terminal that should get ANSI colours.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	if runtime.GOOS == "windows" {
		enableVT()
	}
	return true
}

func paint(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return color + s + colorReset
}

// renderResult prints the test outcome in the same label/value layout as the
// city details.
func renderResult(w io.Writer, res types.Result, alpha float64, color bool) {
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Recession start    : %s\n", res.Recession.Start)
	fmt.Fprintf(w, "Recession bottom   : %s\n", res.Recession.Bottom)
	fmt.Fprintf(w, "Recession end      : %s\n", res.Recession.End)
	fmt.Fprintf(w, "Quarter before     : %s\n", res.BeforeRecession)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "University towns   : n=%d  mean ratio %.4f\n", res.UniversityN, res.UniversityMean)
	fmt.Fprintf(w, "Other towns        : n=%d  mean ratio %.4f\n", res.OtherN, res.OtherMean)
	fmt.Fprintf(w, "t statistic        : %.4f\n", res.Statistic)
	fmt.Fprintf(w, "p-value            : %.3g\n", res.PValue)
	fmt.Fprintln(w)

	verdict := paint("no", colorRed, color)
	if res.Different {
		verdict = paint("yes", colorGreen, color)
	}
	fmt.Fprintf(w, "Different (p<%g) : %s\n", alpha, verdict)
	fmt.Fprintf(w, "Better             : %s\n", res.Better)
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

// lowestRatios returns up to n ratios in ascending order, skipping NaN.
func lowestRatios(ratios []analysis.CityRatio, n int) []analysis.CityRatio {
	var usable []analysis.CityRatio
	for _, r := range ratios {
		if !math.IsNaN(r.Ratio) {
			usable = append(usable, r)
		}
	}
	sort.SliceStable(usable, func(i, j int) bool { return usable[i].Ratio < usable[j].Ratio })
	if n > 0 && len(usable) > n {
		usable = usable[:n]
	}
	return usable
}

func ratioValues(ratios []analysis.CityRatio) []float64 {
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		out[i] = r.Ratio
	}
	return out
}

func renderRatios(w io.Writer, title string, ratios []analysis.CityRatio, n int) {
	rows := lowestRatios(ratios, n)
	mean, std := stats.MeanStd(ratioValues(ratios))
	fmt.Fprintf(w, "\n%s (%d lowest of %d)\n", title, len(rows), len(ratios))
	fmt.Fprintf(w, "Mean ratio %.4f ± %.4f\n", mean, std)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"State", "Region", "Before", "Bottom", "Ratio"})
	for _, r := range rows {
		table.Append([]string{
			r.Key.State,
			r.Key.RegionName,
			fmt.Sprintf("%.0f", r.Before),
			fmt.Sprintf("%.0f", r.Bottom),
			fmt.Sprintf("%.4f", r.Ratio),
		})
	}
	table.Render()
}

func renderRecession(w io.Writer, rec types.Recession, window []types.GDPPoint) {
	fmt.Fprintf(w, "Recession %s - %s, bottom %s\n", rec.Start, rec.End, rec.Bottom)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Quarter", "GDP (current $bn)", "GDP (chained 2009 $bn)", ""})
	for _, p := range window {
		var mark string
		switch p.Quarter {
		case rec.Start:
			mark = "start"
		case rec.Bottom:
			mark = "bottom"
		case rec.End:
			mark = "end"
		}
		table.Append([]string{
			p.Quarter.String(),
			fmt.Sprintf("%.1f", p.Current),
			fmt.Sprintf("%.1f", p.Chained),
			mark,
		})
	}
	table.Render()
}

func renderTowns(w io.Writer, list []types.UniversityTown, names states.Names) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"State", "Abbr", "Town"})
	for _, t := range list {
		abbr, _ := names.Abbr(t.State)
		table.Append([]string{t.State, abbr, t.RegionName})
	}
	table.Render()
	fmt.Fprintf(w, "%d towns\n", len(list))
}

// renderQuarters prints quarterly values, limited to [from, to] when both are set.
func renderQuarters(w io.Writer, quarters []quarter.Label, values []float64, from, to quarter.Label) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Quarter", "Mean value"})
	for i, q := range quarters {
		if from != "" && q.Before(from) || to != "" && to.Before(q) {
			continue
		}
		v := "-"
		if !math.IsNaN(values[i]) {
			v = fmt.Sprintf("%.0f", values[i])
		}
		table.Append([]string{q.String(), v})
	}
	table.Render()
}
