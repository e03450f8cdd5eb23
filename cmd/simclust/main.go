package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/steveyegge/simclust/internal/config"
)

var version = "0.3.0"

// app carries the state shared by the root command and its subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Global flags
	configPath string
	verbose    bool
	workers    int
	stats      bool

	cfg    config.Config
	logger *zap.Logger
	runID  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zap.NewNop(),
	}

	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	_ = a.logger.Sync()
	if err == nil {
		return 0
	}

	fmt.Fprintln(stderr, userMessage(err))
	code := exitCodeFor(err)
	if code == exitUsage {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
	}
	return code
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simclust",
		Short: "Cluster similar records from a text stream",
		Long: `simclust groups records (lines, null-separated tokens or paragraphs) into
clusters of similar records. Every pair of records is judged by a string
metric; records linked by accepted pairs, directly or through other records,
end up in the same cluster. Records that match nothing are printed alone.

Examples:
  # Cluster lines whose Jaro-Winkler similarity exceeds 0.9
  simclust jaro --ratio 0.9 --winkler < names.txt

  # Cluster paragraphs within 3 edits of each other, one cluster per line
  simclust levenshtein -t 3 --irs paragraph --ofs : --ors line -f notes.txt

  # Collapse identical lines first and show a summary
  simclust --stats osa -t 2 --dedupe -f words.txt -o clusters.txt`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return usageError(errNoCommand)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $SIMCLUST_CONFIG)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().IntVar(&a.workers, "workers", 0, "Number of pair evaluation workers (0 = number of CPUs)")
	cmd.PersistentFlags().BoolVar(&a.stats, "stats", false, "Print a clustering summary to stderr")

	cmd.AddCommand(
		newJaroCmd(a),
		newLevenshteinCmd(a),
		newNormalizedLevenshteinCmd(a),
		newOSACmd(a),
	)
	return cmd
}

// setup layers the configuration and builds the logger before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("SIMCLUST_CONFIG")
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return usageError(fmt.Errorf("loading config %s: %w", path, err))
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return usageError(err)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = a.workers
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("invalid configuration: %w", err))
	}
	a.cfg = cfg

	logger, err := newLogger(a.stderr, cfg.LogLevel)
	if err != nil {
		return usageError(err)
	}
	a.runID = uuid.NewString()
	a.logger = logger.With(zap.String("run_id", a.runID))
	a.logger.Debug("effective configuration",
		zap.String("command", cmd.Name()),
		zap.String("config_file", path),
		zap.Stringer("config", cfg))
	return nil
}

// newLogger returns a production-style JSON logger writing to w.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}

var errNoCommand = errors.New("a metric subcommand is required (jaro, levenshtein, normalized-levenshtein, osa)")
