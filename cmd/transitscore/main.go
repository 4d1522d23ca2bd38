package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/config"
	"github.com/David-Botos/transit-ingress/pkg/logging"
	"github.com/David-Botos/transit-ingress/pkg/pipeline"
)

var (
	// Global flags
	configPath string
	verbose    bool
	outFormat  string
	outPath    string
	limit      int

	cfg    *config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "transitscore",
		Short: "Score transit candidates from TESS, Kepler or uploaded catalogs",
		Long: `transitscore ranks exoplanet transit candidates.

Rows are read from a file, the NASA Exoplanet Archive or a catalog database,
scored from stellar magnitude, transit depth, orbital period and transit
duration, and labelled CP (confirmed planet), PC (planet candidate) or APC
(ambiguous planet candidate).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			logger, err = logging.New(level, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			zap.ReplaceGlobals(logger)

			switch outFormat {
			case "table", "json", "csv":
			default:
				return fmt.Errorf("unknown output format %q", outFormat)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "table", "Output format: table, json or csv")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Also export results to a .xlsx, .csv or .json file (a directory gets a timestamped .xlsx)")
	rootCmd.PersistentFlags().IntVarP(&limit, "limit", "n", 0, "Rows to display in table output (default DISPLAY_LIMIT)")

	rootCmd.AddCommand(newFileCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newSQLCmd())
	rootCmd.AddCommand(newCalcCmd())
	return rootCmd
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Workers:   cfg.WorkerPoolSize,
		ChunkSize: cfg.ChunkSize,
		Verify:    cfg.VerifyResults,
	}, nil, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
