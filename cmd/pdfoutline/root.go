package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/pdfoutline/config"
	"github.com/tsawler/pdfoutline/logging"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/pipeline"
)

// version is reported by --version
const version = "1.0.0"

// errNoSuccess marks a run in which no document was processed successfully
var errNoSuccess = errors.New("no document processed successfully")

type options struct {
	configPath string
	envFile    string
	dpi        int
	output     string
	inputDir   string
	outputDir  string
	modelDirs  []string
	details    bool
	verbose    bool
	logFile    string
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errNoSuccess) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pdfoutline [file.pdf]",
		Short: "Extract a heading outline from PDF documents",
		Long: `Extract the title and H1-H4 headings of PDF documents.

Pages are rendered, layout regions are detected with a YOLO document layout
model, heading candidates are read with Tesseract OCR and classified by
level. Without a model a fixed fallback layout is used.

Examples:
  pdfoutline report.pdf
  pdfoutline report.pdf -o outline.json --dpi 150 --details
  pdfoutline --config pdfoutline.yaml        # every PDF in input_dir`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&opts.envFile, "env-file", ".env", "file with PDFOUTLINE_* variables")
	f.IntVar(&opts.dpi, "dpi", pipeline.DefaultDPI, "page rendering resolution")
	f.StringVarP(&opts.output, "output", "o", "", "output JSON file for a single document")
	f.StringVar(&opts.inputDir, "input-dir", "", "directory scanned in batch mode")
	f.StringVar(&opts.outputDir, "output-dir", "", "directory for batch results")
	f.StringSliceVar(&opts.modelDirs, "model-dir", nil, "layout model directory (repeatable)")
	f.BoolVar(&opts.details, "details", false, "include bbox and confidence in the output")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging and a per-level summary")
	f.StringVar(&opts.logFile, "log-file", "", "also write the log to this file")

	return cmd
}

func runOutline(cmd *cobra.Command, opts *options, args []string) error {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logOpts := cfg.LogOptions()
	logOpts.Output = cmd.ErrOrStderr()
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}

	setup, err := pipeline.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer setup.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		result := setup.Pipeline.ProcessDocument(ctx, args[0], cfg.Output)
		printResult(out, args[0], cfg.Output, result, opts.verbose)
		if !result.Success {
			return errNoSuccess
		}
		return nil
	}

	items, err := setup.Pipeline.Batch(ctx, cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return err
	}
	for _, it := range items {
		printResult(out, it.Path, it.Output, it.Result, opts.verbose)
	}

	ok := pipeline.Succeeded(items)
	fmt.Fprintf(out, "Processed %d of %d documents successfully\n", ok, len(items))
	logger.WithFields(logrus.Fields{"documents": len(items), "succeeded": ok}).Info("batch finished")
	if ok == 0 {
		return errNoSuccess
	}
	return nil
}

// applyFlags overrides configuration values with flags set on the command
// line
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("dpi") {
		cfg.DPI = opts.dpi
	}
	if f.Changed("output") {
		cfg.Output = opts.output
	}
	if f.Changed("input-dir") {
		cfg.InputDir = opts.inputDir
	}
	if f.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if f.Changed("model-dir") {
		cfg.ModelDirs = opts.modelDirs
	}
	if f.Changed("details") {
		cfg.OutputDetails = opts.details
	}
	if f.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
}

func printResult(w io.Writer, path, dest string, result *model.Result, verbose bool) {
	if !result.Success {
		fmt.Fprintf(w, "%s: failed: %s\n", path, result.Error)
		return
	}

	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  Title:    %s\n", result.Title)
	fmt.Fprintf(w, "  Pages:    %d\n", result.PageCount)
	fmt.Fprintf(w, "  Headings: %d\n", len(result.Headings))
	fmt.Fprintf(w, "  Time:     %s\n", result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  Output:   %s\n", dest)

	if !verbose {
		return
	}
	counts := result.CountByLevel()
	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		fmt.Fprintf(w, "    %s: %d\n", level, counts[level])
	}
}
