// ABOUTME: Entry point for the IAMF decoder conformance harness
// ABOUTME: Decodes every test vector with iamfdec and scores it against the golden renderings
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iamf-tools/iamf-conformance/internal/config"
	"github.com/iamf-tools/iamf-conformance/internal/decoder"
	"github.com/iamf-tools/iamf-conformance/internal/exclusion"
	"github.com/iamf-tools/iamf-conformance/internal/harness"
	"github.com/iamf-tools/iamf-conformance/internal/metadata"
	"github.com/iamf-tools/iamf-conformance/internal/report"
	"github.com/iamf-tools/iamf-conformance/internal/ui"
	"github.com/iamf-tools/iamf-conformance/internal/version"
)

const (
	exitFailure     = 1
	exitSetup       = 2
	exitInterrupted = 130
)

var (
	testFileDir    string
	workDir        string
	decoderPath    string
	preserveOutput bool
	regexFilter    string
	verbose        bool
	csvSummaryFile string
	configFile     string
	jobs           int
	logFile        string
	noProgress     bool
	useTUI         bool
	captureOutput  bool
)

// exitError carries a process exit code out of RunE
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.err != nil {
				fmt.Fprintln(os.Stderr, "Error:", ee.err)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitSetup)
	}
}

var rootCmd = &cobra.Command{
	Use:   "iamf-conformance",
	Short: "Run the IAMF decoder conformance tests",
	Long: `Decodes every IAMF test vector described by the .textproto files in the
test file directory, once per (mix presentation, sub-mix, layout), and compares
each rendering against its golden WAV file by PSNR.

Lossy vectors (Opus, AAC-LC) pass at 30 dB, all others at 80 dB. The command
exits 1 when any case fails or crashes the decoder and 2 on setup errors.

Examples:
  iamf-conformance -t testdata -w /tmp/iamf -l ./iamfdec
  iamf-conformance -t testdata -w /tmp/iamf -l ./iamfdec -r 'test_0007' -c results.csv
  iamf-conformance --config conformance.yaml --jobs 4`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConformance,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&testFileDir, "test_file_directory", "t", "", "Directory with .textproto, .iamf and golden .wav files (required)")
	f.StringVarP(&workDir, "working_directory", "w", "", "Directory for generated .wav files (required)")
	f.StringVarP(&decoderPath, "iamfdec_path", "l", "", "Path to the iamfdec binary (required)")
	f.BoolVarP(&preserveOutput, "preserve_output_files", "p", false, "Preserve output files in working directory")
	f.StringVarP(&regexFilter, "regex_filter", "r", "", "Regex filter to apply to textproto filenames")
	f.BoolVarP(&verbose, "verbose_test_summary", "v", false, "Print verbose test summary")
	f.StringVarP(&csvSummaryFile, "csv_summary_file", "c", "", "Path to CSV file to log test results")
	f.StringVar(&configFile, "config", "", "YAML configuration file")
	f.IntVar(&jobs, "jobs", 1, "Number of decoders to run concurrently within one test vector")
	f.StringVar(&logFile, "log-file", "", "Also write logs to this file")
	f.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	f.BoolVar(&useTUI, "tui", false, "Show a full-screen run display; logs go to --log-file only")
	f.BoolVar(&captureOutput, "capture-decoder-output", false, "Log decoder stdout and stderr")
}

// loadConfig layers changed flags over the configuration file
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("test_file_directory") {
		cfg.TestFileDir = testFileDir
	}
	if flags.Changed("working_directory") {
		cfg.WorkDir = workDir
	}
	if flags.Changed("iamfdec_path") {
		cfg.DecoderPath = decoderPath
	}
	if flags.Changed("preserve_output_files") {
		cfg.PreserveOutput = preserveOutput
	}
	if flags.Changed("regex_filter") {
		cfg.RegexFilter = regexFilter
	}
	if flags.Changed("verbose_test_summary") {
		cfg.Verbose = verbose
	}
	if flags.Changed("csv_summary_file") {
		cfg.CSVSummaryFile = csvSummaryFile
	}
	if flags.Changed("jobs") {
		cfg.Jobs = jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging mirrors logs to logFile when set. In TUI mode logs only go to
// the file. The returned closer is nil when no file was opened.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	path := logFile
	if useTUI && path == "" {
		path = filepath.Join(cfg.WorkDir, "iamf-conformance.log")
	}
	if path == "" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	if useTUI {
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return f, nil
}

func runConformance(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return &exitError{code: exitSetup, err: err}
	}

	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return &exitError{code: exitSetup, err: fmt.Errorf("failed to create working directory: %w", err)}
	}

	logCloser, err := setupLogging(cfg)
	if err != nil {
		return &exitError{code: exitSetup, err: err}
	}
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	filter, err := cfg.Filter()
	if err != nil {
		return &exitError{code: exitSetup, err: err}
	}
	files, err := metadata.FindDescriptors(cfg.TestFileDir, filter)
	if err != nil {
		return &exitError{code: exitSetup, err: err}
	}
	log.Printf("Found %d test vector descriptors in %s", len(files), cfg.TestFileDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	h := &harness.Harness{
		RunID: runID,
		Jobs:  cfg.Jobs,
		Evaluator: &harness.Evaluator{
			Exclusions:     exclusion.NewFilter(cfg.Rules()),
			Decoder:        decoder.New(cfg.DecoderPath, cfg.TestFileDir, cfg.WorkDir, decoderOptions(cfg)),
			TestFileDir:    cfg.TestFileDir,
			WorkDir:        cfg.WorkDir,
			PreserveOutput: cfg.PreserveOutput,
			Thresholds:     cfg.Thresholds,
			Verbose:        cfg.Verbose,
		},
	}

	summary, runErr := runWithObserver(ctx, stop, h, files)

	if err := summary.WriteConsole(os.Stdout); err != nil {
		log.Printf("Failed to print summary: %v", err)
	}
	if cfg.Verbose {
		_ = summary.WriteDetails(os.Stdout)
	}
	if cfg.CSVSummaryFile != "" {
		if err := summary.SaveCSV(cfg.CSVSummaryFile); err != nil {
			log.Printf("Failed to write CSV summary: %v", err)
		} else {
			log.Printf("Wrote CSV summary to %s", cfg.CSVSummaryFile)
		}
	}

	switch {
	case errors.Is(runErr, harness.ErrSetup):
		return &exitError{code: exitSetup, err: runErr}
	case errors.Is(runErr, context.Canceled):
		return &exitError{code: exitInterrupted, err: errors.New("interrupted")}
	case runErr != nil:
		return &exitError{code: exitSetup, err: runErr}
	case summary.Failed():
		return &exitError{code: exitFailure}
	}
	return nil
}

// decoderOptions logs decoder output on request or in verbose runs
func decoderOptions(cfg *config.Config) decoder.Options {
	return decoder.Options{CaptureOutput: captureOutput || cfg.Verbose}
}

// runWithObserver runs h with the TUI, a progress bar or no display
func runWithObserver(ctx context.Context, cancel context.CancelFunc, h *harness.Harness, files []string) (*report.Summary, error) {
	switch {
	case useTUI:
		t := ui.NewTUI(h.RunID, tea.WithAltScreen())
		h.Observer = t

		tuiDone := make(chan struct{})
		go func() {
			defer close(tuiDone)
			if err := t.Start(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
		go func() {
			select {
			case <-t.QuitChan():
				log.Printf("Received quit signal from TUI")
				cancel()
			case <-ctx.Done():
			}
		}()

		summary, err := h.Run(ctx, files)
		t.Stop()
		<-tuiDone
		return summary, err

	case !noProgress:
		p := ui.NewProgress(os.Stderr, len(files))
		h.Observer = p
		summary, err := h.Run(ctx, files)
		_ = p.Finish()
		return summary, err
	}

	return h.Run(ctx, files)
}
