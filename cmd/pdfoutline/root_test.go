package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/pdfoutline/config"
	"github.com/tsawler/pdfoutline/model"
)

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), version) {
		t.Errorf("output %q does not contain version %s", stdout.String(), version)
	}
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, flag := range []string{"--dpi", "--output", "--verbose", "--model-dir"} {
		if !strings.Contains(stdout.String(), flag) {
			t.Errorf("help is missing %s", flag)
		}
	}
}

func TestMissingDocumentExitCode(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{
		filepath.Join(dir, "missing.pdf"),
		"-o", filepath.Join(dir, "out.json"),
		"--model-dir", dir,
		"--env-file", filepath.Join(dir, ".env"),
	}, &stdout, &stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "failed") {
		t.Errorf("output %q does not report the failure", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "out.json")); !os.IsNotExist(err) {
		t.Error("output written for a failed document")
	}
}

func TestBatchWithoutDocuments(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{
		"--input-dir", dir,
		"--output-dir", filepath.Join(dir, "out"),
		"--model-dir", dir,
		"--env-file", filepath.Join(dir, ".env"),
	}, &stdout, &stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "no PDF documents") {
		t.Errorf("stderr %q does not explain the failure", stderr.String())
	}
}

func TestInvalidDPI(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{"doc.pdf", "--dpi", "5", "--env-file", filepath.Join(dir, ".env")}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "DPI") {
		t.Errorf("stderr %q does not mention DPI", stderr.String())
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--dpi", "300", "--model-dir", "a", "--model-dir", "b", "--details", "-v"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	opts := &options{}
	opts.dpi, _ = cmd.Flags().GetInt("dpi")
	opts.modelDirs, _ = cmd.Flags().GetStringSlice("model-dir")
	opts.details, _ = cmd.Flags().GetBool("details")
	opts.verbose, _ = cmd.Flags().GetBool("verbose")
	applyFlags(cmd, opts, &cfg)

	if cfg.DPI != 300 {
		t.Errorf("DPI = %d, want 300", cfg.DPI)
	}
	if strings.Join(cfg.ModelDirs, ",") != "a,b" {
		t.Errorf("ModelDirs = %v, want [a b]", cfg.ModelDirs)
	}
	if !cfg.OutputDetails {
		t.Error("OutputDetails = false, want true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Output != config.Default().Output {
		t.Errorf("Output changed without the flag: %q", cfg.Output)
	}
}

func TestPrintResultVerbose(t *testing.T) {
	result := &model.Result{
		Title:   "Report",
		Success: true,
		Headings: []model.HeadingInfo{
			{Level: "H2", Text: "Results"},
			{Level: "H1", Text: "Introduction"},
			{Level: "H2", Text: "Discussion"},
		},
	}

	var buf bytes.Buffer
	printResult(&buf, "report.pdf", "out/report.json", result, true)

	out := buf.String()
	for _, want := range []string{"Title:    Report", "Headings: 3", "H1: 1", "H2: 2", "out/report.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "H1: 1") > strings.Index(out, "H2: 2") {
		t.Error("levels not listed in order")
	}
}
