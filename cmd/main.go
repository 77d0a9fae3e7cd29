package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"collegetowns/internal/analysis"
	"collegetowns/internal/config"
	"collegetowns/internal/database"
	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/gdp"
	"collegetowns/internal/housing"
	"collegetowns/internal/states"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger
	logger = zap.NewNop()
)

const (
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "collegetowns: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps the failure kind of err to the process exit status.
func exitCode(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeConfig:
		return 2
	case apperrors.ErrTypeFileNotFound:
		return 3
	case apperrors.ErrTypeParsing:
		return 4
	case apperrors.ErrTypeNoRecession:
		return 5
	case apperrors.ErrTypeLookup:
		return 6
	case apperrors.ErrTypeStorage:
		return 7
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "collegetowns",
		Short: "Did university towns keep their home values through the recession?",
		Long: `collegetowns reads the US college-town list, quarterly GDP and Zillow city
home values, finds the recession in the GDP series and runs a t-test on the
price ratio (quarter before the recession / recession bottom) of university
towns against every other town.

Input files are read from the data directory (COLLEGETOWNS_DATA_DIR, default ./data).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRunCmd(), newRecessionCmd(), newTownsCmd(), newQuartersCmd())
	return root
}

func initLogger(debug bool) error {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// loadConfig reads the configuration; verbose in the config turns on debug
// logging as --verbose does.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose && !verbose {
		verbose = true
		if err := initLogger(true); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newRunner wires the configured sources into an analysis runner. The returned
// cleanup closes the database when the housing table comes from one.
func newRunner(ctx context.Context, cfg *config.Config) (*analysis.Runner, func(), error) {
	r := &analysis.Runner{
		Names:     states.Default(),
		TownsPath: cfg.TownsPath(),
		GDPPath:   cfg.GDPPath(),
		GDPOptions: gdp.LoadOptions{
			Sheet:      cfg.GDPSheet,
			HeaderRows: cfg.GDPHeaderRows,
			Start:      cfg.Start(),
		},
		Alpha:         cfg.Alpha,
		EqualVariance: cfg.EqualVariance,
		Logger:        logger,
	}

	cleanup := func() {}
	switch cfg.HousingSource {
	case config.SourceDatabase:
		db, err := database.NewDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		r.Housing = database.HousingSource{DB: db, Table: cfg.Database.Table}
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Warn("closing housing database", zap.Error(err))
			}
		}
	default:
		r.Housing = housing.CSVSource{Path: cfg.HousingPath()}
	}
	return r, cleanup, nil
}
