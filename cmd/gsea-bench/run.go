package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/gsea"
	"github.com/discochess/gsea/benchmark/analysis"
	"github.com/discochess/gsea/benchmark/reporting"
	"github.com/discochess/gsea/benchmark/simulation"
	"github.com/discochess/gsea/internal/codec"
	"github.com/discochess/gsea/internal/stats/logger"
	"github.com/discochess/gsea/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the calibration benchmark",
	Long: `Simulate replicate experiments, analyse each with the configured
permutation scheme and report null p-value calibration, false positive
rate and detection power.

Output compression follows the file extension: .zst uses zstd, .gz gzip.`,
	RunE: runBenchmark,
}

var reportExtension = map[string]string{
	"text":     ".txt",
	"markdown": ".md",
	"html":     ".html",
}

var writers = map[string]func(io.Writer, *reporting.Benchmark) error{
	"text":     reporting.WriteText,
	"markdown": reporting.WriteMarkdown,
	"html":     reporting.WriteHTML,
}

var (
	scenario     = simulation.DefaultScenario()
	replicates   int
	alpha        float64
	permutations int
	outputFormat string
	outputFile   string
	showProgress bool
	publishTo    string
	publishCodec string
)

func init() {
	f := runCmd.Flags()
	f.IntVar(&scenario.Genes, "genes", scenario.Genes, "number of genes")
	f.IntVar(&scenario.SamplesPerClass, "samples", scenario.SamplesPerClass, "samples per class")
	f.IntVar(&scenario.SetSize, "set-size", scenario.SetSize, "genes per gene set")
	f.IntVar(&scenario.UpSets, "up", scenario.UpSets, "planted up-regulated sets")
	f.IntVar(&scenario.DownSets, "down", scenario.DownSets, "planted down-regulated sets")
	f.IntVar(&scenario.NullSets, "null", scenario.NullSets, "null sets")
	f.Float64Var(&scenario.Effect, "effect", scenario.Effect, "planted shift in standard deviations")
	f.Uint64Var(&scenario.Seed, "seed", scenario.Seed, "simulation seed")
	f.IntVarP(&replicates, "replicates", "r", 3, "simulated experiments")
	f.Float64Var(&alpha, "alpha", 0.05, "significance level")
	f.IntVarP(&permutations, "permutations", "n", 0, "permutations per run (default: from configuration)")
	f.StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown, html")
	f.StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	f.BoolVar(&showProgress, "progress", false, "show permutation progress on stderr")
	f.StringVar(&publishTo, "publish", "", "also store the report in a directory, s3://bucket/prefix or gs://bucket/prefix")
	f.StringVar(&publishCodec, "publish-compression", "zst", "compression of published reports: zst, gz, none")

	rootCmd.AddCommand(runCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if replicates < 1 {
		return fmt.Errorf("replicates must be at least 1, got %d", replicates)
	}
	if err := scenario.Validate(); err != nil {
		return err
	}
	write, ok := writers[outputFormat]
	if !ok {
		return fmt.Errorf("unknown format %q", outputFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runCfg := cfg.Run
	runCfg.Mode = gsea.ModeGSEA
	if permutations > 0 {
		runCfg.Permutations = permutations
	}

	log, err := newLogger(cfg.Engine.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	opts := append(cfg.Engine.Options(),
		gsea.WithLogger(log),
		gsea.WithStats(logger.New(log)),
	)
	if showProgress {
		opts = append(opts, gsea.WithProgress(gsea.WriterProgress(os.Stderr)))
	}
	engine, err := gsea.New(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("starting benchmark",
		zap.Int("genes", scenario.Genes),
		zap.Int("replicates", replicates),
		zap.Int("permutations", runCfg.Permutations),
		zap.String("permutationType", string(runCfg.PermutationType)),
	)

	start := time.Now()
	outcomes, err := simulation.NewSimulator(engine, runCfg).Simulate(ctx, scenario, replicates)
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	b := &reporting.Benchmark{
		Scenario:    scenario,
		Config:      runCfg,
		Replicates:  replicates,
		Elapsed:     time.Since(start),
		Outcomes:    outcomes,
		Calibration: analysis.Calibrate(outcomes, alpha),
	}

	var buf bytes.Buffer
	if err := write(&buf, b); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err := writeOutput(cmd.OutOrStdout(), buf.Bytes()); err != nil {
		return err
	}
	if publishTo == "" {
		return nil
	}

	st, err := openStore(ctx, publishTo, publishCodec)
	if err != nil {
		return fmt.Errorf("opening report store: %w", err)
	}
	defer st.Close()

	name, err := publish(ctx, st, buf.Bytes())
	if err != nil {
		return err
	}
	log.Info("published report", zap.String("store", publishTo), zap.String("name", name))
	return nil
}

// writeOutput writes the rendered report to --output or to stdout.
func writeOutput(stdout io.Writer, report []byte) error {
	if outputFile == "" {
		_, err := stdout.Write(report)
		return err
	}
	w, err := codec.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if _, err := w.Write(report); err != nil {
		w.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return w.Close()
}

// publish stores the report under a fresh name and returns the name.
func publish(ctx context.Context, st store.Store, report []byte) (string, error) {
	name := "bench-" + uuid.NewString() + reportExtension[outputFormat]
	if err := st.WriteReport(ctx, name, report); err != nil {
		return "", fmt.Errorf("publishing report: %w", err)
	}
	return name, nil
}
