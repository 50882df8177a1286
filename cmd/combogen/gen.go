package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/combogen-dev/combogen/engine"
)

var (
	threadsFlag  int
	limitFlag    uint64
	outputFlag   string
	charsetFlag  string
	batchFlag    int
	resumeFlag   string
	profileFlag  string
	compressFlag bool
	memoryFlag   bool
	dryRunFlag   bool
	verboseFlag  bool
)

var genCmd = &cobra.Command{
	Use:   "gen [LENGTH]",
	Short: "Generate all combinations of the given length",
	Args:  cobra.MaximumNArgs(1),
	Run:   genCommand,
}

func init() {
	genCmd.Flags().IntVar(&threadsFlag, "threads", 0, "Worker count (default: host parallelism)")
	genCmd.Flags().Uint64Var(&limitFlag, "limit", engine.NoLimit, "Maximum combinations to emit")
	genCmd.Flags().StringVar(&outputFlag, "output", "combos.txt", "Output path, '-' for stdout, or 'discard'")
	genCmd.Flags().StringVar(&charsetFlag, "charset", "", "Alphabet override (default: printable ASCII 33-126)")
	genCmd.Flags().IntVar(&batchFlag, "batch", engine.DefaultBatchSize, "Output buffer size in bytes")
	genCmd.Flags().StringVar(&resumeFlag, "resume", "", "Checkpoint file path for resume")
	genCmd.Flags().StringVar(&profileFlag, "profile", "", "TOML run profile; explicit flags override it")
	genCmd.Flags().BoolVar(&compressFlag, "compress", false, "Gzip the output file")
	genCmd.Flags().BoolVar(&memoryFlag, "memory", false, "Collect combinations in memory instead of streaming")
	genCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Enumerate without rendering or writing")
	genCmd.Flags().BoolVar(&verboseFlag, "verbose", false, "Progress output and memory-mode samples")
	genCmd.Flags().Lookup("limit").DefValue = "unlimited"
}

// buildConfig merges defaults, the optional TOML profile, and explicit
// flags, in increasing precedence. The positional LENGTH always wins over a
// profile length.
func buildConfig(cmd *cobra.Command, args []string) (engine.Config, error) {
	cfg := engine.Config{Limit: engine.NoLimit}

	if profileFlag != "" {
		p, err := engine.LoadProfile(profileFlag)
		if err != nil {
			return cfg, err
		}
		p.Apply(&cfg)
	}

	fl := cmd.Flags()
	if fl.Changed("threads") || cfg.Workers == 0 {
		cfg.Workers = threadsFlag
	}
	if fl.Changed("limit") {
		cfg.Limit = limitFlag
	}
	if fl.Changed("output") || cfg.Output == "" {
		cfg.Output = outputFlag
	}
	if fl.Changed("charset") {
		// An explicitly empty charset must reach validation and fail fast,
		// not fall back to the default alphabet.
		cfg.Alphabet = []byte(charsetFlag)
	}
	if fl.Changed("batch") || cfg.BatchSize == 0 {
		cfg.BatchSize = batchFlag
	}
	if fl.Changed("resume") {
		cfg.Resume = resumeFlag
	}
	cfg.Compress = cfg.Compress || compressFlag
	cfg.Memory = cfg.Memory || memoryFlag
	cfg.DryRun = cfg.DryRun || dryRunFlag
	cfg.Verbose = cfg.Verbose || verboseFlag

	if len(args) == 1 {
		length, err := strconv.Atoi(args[0])
		if err != nil {
			return cfg, fmt.Errorf("length must be an integer, got %q", args[0])
		}
		cfg.Length = length
	}
	if cfg.Length == 0 {
		return cfg, fmt.Errorf("combination length required (positional argument or profile)")
	}
	return cfg, nil
}

func genCommand(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't construct the combination space")
	}
	if cfg.Verbose {
		eng.Reporter = &engine.ColorReporter{Writer: os.Stderr}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := eng.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Run failed")
	}

	// Streaming to stdout would corrupt the data stream with the summary, so
	// route it to stderr in that case.
	summaryOut := os.Stdout
	if cfg.Output == "-" && !cfg.Memory && !cfg.DryRun {
		summaryOut = os.Stderr
	}
	fmt.Fprint(summaryOut, engine.FormatSummary(result, cfg.Length))

	if result.Collected != nil {
		fmt.Fprintf(summaryOut, "Collected in memory: %d combinations\n", result.Collected.Len())
		if cfg.Verbose {
			fmt.Fprintln(summaryOut, "Samples:")
			for i, combo := range result.Collected.Sample(5) {
				fmt.Fprintf(summaryOut, "  %d: %s\n", i+1, combo)
			}
		}
	}

	if result.Produced == result.Effective-result.Resumed {
		fmt.Fprintln(os.Stderr, color.Green.Sprint("✓ Generation complete"))
	}
}
