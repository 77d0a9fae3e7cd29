package analysis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"collegetowns/internal/gdp"
	"collegetowns/internal/housing"
	"collegetowns/internal/states"
	"collegetowns/internal/towns"
	"collegetowns/internal/types"
)

// Runner loads every source fresh on each call and runs the analysis.
type Runner struct {
	Names      states.Names
	TownsPath  string
	GDPPath    string
	GDPOptions gdp.LoadOptions
	Housing    housing.Source

	Alpha         float64
	EqualVariance bool

	Logger *zap.Logger
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Towns loads the university-town list.
func (r *Runner) Towns() ([]types.UniversityTown, error) {
	start := time.Now()
	list, err := towns.Load(r.TownsPath, r.Names)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("university towns loaded",
		zap.String("path", r.TownsPath),
		zap.Int("towns", len(list)),
		zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))
	return list, nil
}

// GDP loads the quarterly GDP series.
func (r *Runner) GDP() ([]types.GDPPoint, error) {
	start := time.Now()
	series, err := gdp.Load(r.GDPPath, r.GDPOptions)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("gdp series loaded",
		zap.String("path", r.GDPPath),
		zap.Int("quarters", len(series)),
		zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))
	return series, nil
}

// Recession loads the GDP series and detects the recession window. The
// series is returned with it.
func (r *Runner) Recession() (types.Recession, []types.GDPPoint, error) {
	series, err := r.GDP()
	if err != nil {
		return types.Recession{}, nil, err
	}
	rec, err := gdp.Detect(series)
	if err != nil {
		return types.Recession{}, nil, err
	}
	return rec, series, nil
}

// HousingTable loads and reshapes the city table.
func (r *Runner) HousingTable(ctx context.Context) (*housing.Table, error) {
	if r.Housing == nil {
		return nil, fmt.Errorf("no housing source configured")
	}
	start := time.Now()
	tbl, err := housing.LoadTable(ctx, r.Housing, r.Names)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("housing table reshaped",
		zap.Int("cities", len(tbl.Rows)),
		zap.Int("quarters", len(tbl.Quarters)),
		zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))
	return tbl, nil
}

// Run loads all three sources and runs the test.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	townList, err := r.Towns()
	if err != nil {
		return nil, fmt.Errorf("load university towns: %w", err)
	}
	series, err := r.GDP()
	if err != nil {
		return nil, fmt.Errorf("load gdp: %w", err)
	}
	tbl, err := r.HousingTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load housing: %w", err)
	}

	rep, err := Analyze(Inputs{
		Towns:         townList,
		GDP:           series,
		Housing:       tbl,
		Alpha:         r.Alpha,
		EqualVariance: r.EqualVariance,
	})
	if err != nil {
		return nil, err
	}

	res := rep.Result
	r.logger().Info("hypothesis test complete",
		zap.String("recession_start", res.Recession.Start.String()),
		zap.String("recession_bottom", res.Recession.Bottom.String()),
		zap.String("recession_end", res.Recession.End.String()),
		zap.Int("university_towns", res.UniversityN),
		zap.Int("other_towns", res.OtherN),
		zap.Float64("t", res.Statistic),
		zap.Float64("p", res.PValue),
		zap.Bool("different", res.Different))
	return rep, nil
}
