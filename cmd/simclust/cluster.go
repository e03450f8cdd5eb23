package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/steveyegge/simclust/internal/cluster"
	"github.com/steveyegge/simclust/internal/deduplication"
	"github.com/steveyegge/simclust/internal/metric"
	"github.com/steveyegge/simclust/internal/records"
)

// ioFlags are the input and output flags shared by every metric subcommand.
type ioFlags struct {
	file   string
	output string
	irs    string
	ofs    string
	ors    string
	dedupe bool
}

func addIOFlags(cmd *cobra.Command, f *ioFlags) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Input file (default stdin)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&f.irs, "irs", "R", "", "Input record separator: line|l, paragraph|p, null|n|0")
	cmd.Flags().StringVar(&f.ofs, "ofs", "", "Output field separator: line|l, 0, :")
	cmd.Flags().StringVar(&f.ors, "ors", "", "Output record separator: double|d, line|l, 0")
	cmd.Flags().BoolVar(&f.dedupe, "dedupe", false, "Collapse identical records before clustering")
}

// overlay applies the flags the user set on top of the loaded configuration.
func (f *ioFlags) overlay(cmd *cobra.Command, a *app) {
	flags := cmd.Flags()
	if flags.Changed("irs") {
		a.cfg.InputSeparator = f.irs
	}
	if flags.Changed("ofs") {
		a.cfg.FieldSeparator = f.ofs
	}
	if flags.Changed("ors") {
		a.cfg.RecordSeparator = f.ors
	}
	if flags.Changed("dedupe") {
		a.cfg.Dedupe = f.dedupe
	}
}

// runCluster reads records, clusters them with the metric in params and
// writes the partition. Configuration problems are reported before any
// file is touched.
func (a *app) runCluster(cmd *cobra.Command, params metric.Params, f *ioFlags) error {
	oracle, err := metric.New(params)
	if err != nil {
		return usageError(err)
	}

	f.overlay(cmd, a)
	if err := a.cfg.Validate(); err != nil {
		return usageError(err)
	}
	mode, _ := records.ParseInputMode(a.cfg.InputSeparator)
	ofs, _ := records.ParseFieldSeparator(a.cfg.FieldSeparator)
	ors, _ := records.ParseRecordSeparator(a.cfg.RecordSeparator)

	logger := a.logger.With(zap.String("metric", string(params.Kind)))
	start := time.Now()

	in, closeIn, err := a.openInput(f.file)
	if err != nil {
		return err
	}
	recs, err := records.ReadAll(in, mode)
	closeIn()
	if err != nil {
		return ioError(err)
	}
	logger.Debug("read records",
		zap.Int("records", len(recs)),
		zap.Stringer("irs", mode))

	var dedup *deduplication.Result
	if a.cfg.Dedupe {
		dedup = deduplication.Collapse(recs)
		if err := dedup.Validate(); err != nil {
			return fmt.Errorf("collapsing duplicates: %w", err)
		}
		for _, pos := range dedup.DuplicatePositions() {
			logger.Debug("dropped duplicate record",
				zap.Int("position", pos),
				zap.Int("first", dedup.Duplicates[pos]))
		}
		logger.Debug("collapsed duplicate records",
			zap.Int("total", dedup.Stats.TotalRecords),
			zap.Int("unique", dedup.Stats.UniqueCount),
			zap.Ints("kept", dedup.Positions))
		recs = dedup.Unique
	}

	engine := cluster.NewEngine(oracle,
		cluster.WithWorkers(a.cfg.Workers),
		cluster.WithBatchSize(a.cfg.BatchSize),
		cluster.WithLogger(logger),
	)
	result, err := engine.Cluster(cmd.Context(), recs)
	if err != nil {
		return fmt.Errorf("clustering records: %w", err)
	}

	out, closeOut, err := a.createOutput(f.output)
	if err != nil {
		return err
	}
	werr := records.NewWriter(out, ofs, ors).WritePartition(result.Partition.Records(recs))
	if cerr := closeOut(); werr == nil && cerr != nil {
		werr = fmt.Errorf("closing %s: %w", f.output, cerr)
	}
	if werr != nil {
		return ioError(werr)
	}

	logger.Debug("wrote clusters",
		zap.Int("clusters", result.Stats.Clusters),
		zap.String("output", outputName(f.output)),
		zap.Duration("total", time.Since(start)))

	if a.stats {
		var ds *deduplication.Stats
		if dedup != nil {
			ds = &dedup.Stats
		}
		printStats(a.stderr, params.Kind, result.Stats, ds)
	}
	return nil
}

// openInput returns stdin for "" or "-", otherwise the named file.
func (a *app) openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return a.stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, openError(path, err)
	}
	return file, func() { _ = file.Close() }, nil
}

// createOutput returns stdout for "" or "-", otherwise a truncated file.
func (a *app) createOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return a.stdout, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, createError(path, err)
	}
	return file, file.Close, nil
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
