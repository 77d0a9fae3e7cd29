package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/gdp"
	"collegetowns/internal/towns"
	"collegetowns/internal/types"
)

func newRunCmd() *cobra.Command {
	var (
		top      int
		plotPath string
		browse   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the university-town t-test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			runner, cleanup, err := newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			start := time.Now()
			rep, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			color := useColor(out)
			fmt.Fprintf(out, "Analysis finished in %v\n", time.Since(start).Truncate(time.Millisecond))
			renderResult(out, rep.Result, cfg.Alpha, color)

			if top > 0 {
				renderRatios(out, "University towns", rep.University, top)
				renderRatios(out, "Other towns", rep.Other, top)
			}
			if plotPath != "" {
				if err := writeHistogram(plotPath, rep); err != nil {
					return fmt.Errorf("write histogram: %w", err)
				}
				fmt.Fprintf(out, "Histogram written to %s\n", plotPath)
			}
			if browse {
				browseCities(out, rep)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "list the N cities with the lowest ratio in each group")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write a PNG histogram of the ratios")
	cmd.Flags().BoolVar(&browse, "browse", false, "browse cities interactively after the test")
	return cmd
}

func newRecessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recession",
		Short: "Show the recession window detected in the GDP series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			runner, cleanup, err := newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, series, err := runner.Recession()
			if err != nil {
				return err
			}
			renderRecession(cmd.OutOrStdout(), rec, gdp.Window(series, rec.Start.Prev(), rec.End))
			return nil
		},
	}
}

func newTownsCmd() *cobra.Command {
	var (
		state string
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "towns",
		Short: "List the parsed university towns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			runner, cleanup, err := newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := runner.Towns()
			if err != nil {
				return err
			}
			if state != "" {
				full, ok := runner.Names.Resolve(state)
				if !ok {
					return apperrors.NewLookupError(fmt.Sprintf("unknown state %q", state))
				}
				var filtered []types.UniversityTown
				for _, t := range list {
					if t.State == full {
						filtered = append(filtered, t)
					}
				}
				list = filtered
			}
			if raw {
				return towns.Write(cmd.OutOrStdout(), list)
			}
			renderTowns(cmd.OutOrStdout(), list, runner.Names)
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "only towns in this state (name or abbreviation)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print in the source list format")
	return cmd
}

func newQuartersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quarters <state> <region>",
		Long: `Show one city's quarterly mean home values. The state may be a full name
or an abbreviation; state and region match regardless of letter case.`,
		Short: "Show one city's quarterly mean home values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			runner, cleanup, err := newRunner(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			tbl, err := runner.HousingTable(cmd.Context())
			if err != nil {
				return err
			}
			state, ok := runner.Names.Resolve(args[0])
			if !ok {
				return apperrors.NewLookupError(fmt.Sprintf("unknown state %q", args[0]))
			}
			key := types.CityKey{State: state, RegionName: strings.TrimSpace(args[1])}
			row, ok := tbl.Find(key)
			if !ok {
				return apperrors.NewLookupError(fmt.Sprintf("no housing row for %s, %s", key.RegionName, key.State))
			}
			renderQuarters(cmd.OutOrStdout(), tbl.Quarters, row.Values, "", "")
			return nil
		},
	}
}
