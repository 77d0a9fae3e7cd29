package main

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"collegetowns/internal/analysis"
)

const histogramBins = 20

func finiteRatios(ratios []analysis.CityRatio) plotter.Values {
	var v plotter.Values
	for _, r := range ratios {
		if !math.IsNaN(r.Ratio) && !math.IsInf(r.Ratio, 0) {
			v = append(v, r.Ratio)
		}
	}
	return v
}

// writeHistogram saves overlaid, normalised ratio histograms of both groups
// as an image; the format follows the file extension.
func writeHistogram(path string, rep *analysis.Report) error {
	p := plot.New()
	p.Title.Text = "Price ratio (quarter before recession / bottom)"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Ratio"
	p.Y.Label.Text = "Density"

	groups := []struct {
		name   string
		ratios []analysis.CityRatio
		fill   color.Color
	}{
		{"Non-university towns", rep.Other, color.RGBA{R: 70, G: 130, B: 180, A: 140}},
		{"University towns", rep.University, color.RGBA{R: 220, G: 80, B: 60, A: 160}},
	}

	added := 0
	for _, g := range groups {
		values := finiteRatios(g.ratios)
		if len(values) == 0 {
			continue
		}
		h, err := plotter.NewHist(values, histogramBins)
		if err != nil {
			return err
		}
		h.Normalize(1)
		h.FillColor = g.fill
		h.LineStyle.Width = vg.Length(0)
		p.Add(h)
		p.Legend.Add(g.name, h)
		added++
	}
	if added == 0 {
		return errors.New("no finite ratios to plot")
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
