package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/gsea/internal/config"
)

var (
	// Global flags.
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gsea-bench",
	Short: "Benchmark gene set enrichment on simulated data",
	Long: `gsea-bench simulates expression data with planted gene sets, runs
enrichment analysis over it and reports how well the statistics are
calibrated.

Settings come from an optional YAML file, then GSEA_* environment
variables (a .env file in the working directory is loaded), then flags.

Examples:
  # Run the default scenario
  gsea-bench run

  # Stronger effect, more replicates, Markdown report compressed with zstd
  gsea-bench run --effect 1.5 --replicates 5 --format markdown --output report.md.zst

  # Show the effective configuration
  gsea-bench config --config gsea.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// loadConfig reads the layered configuration and applies --verbose.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if verbose {
		cfg.Engine.Verbose = true
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
