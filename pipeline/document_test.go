package pipeline

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/pdfoutline/config"
	"github.com/tsawler/pdfoutline/detector"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/output"
)

// memPages is an in-memory document of blank pages
type memPages struct {
	count    int
	failAt   int
	rendered []int
	closed   bool
	dpiSeen  int
	width    int
	height   int
}

func (m *memPages) PageCount() int { return m.count }

func (m *memPages) RenderPage(index, dpi int) (image.Image, error) {
	if m.failAt > 0 && index+1 == m.failAt {
		return nil, errors.New("mupdf: cannot render page")
	}
	m.rendered = append(m.rendered, index)
	m.dpiSeen = dpi
	return blankPage(m.width, m.height), nil
}

func (m *memPages) Close() error {
	m.closed = true
	return nil
}

func opener(pages *memPages) OpenFunc {
	return func(string) (Pages, error) { return pages, nil }
}

// recordingWriter captures every write
type recordingWriter struct {
	dests []string
	err   error
}

func (w *recordingWriter) write(result *model.Result, dest string) error {
	w.dests = append(w.dests, dest)
	return w.err
}

func noTitle(string) (string, error) { return "", nil }

func twoPageDocument() (*fakeDetector, *countingOCR, *memPages) {
	det := detections(
		model.NewDetection(100, 50, 900, 150, 0.95, detector.ClassTitle, "title"),
		model.NewDetection(100, 400, 600, 450, 0.8, detector.ClassParagraphTitle, "paragraph_title"),
	)
	rec := &countingOCR{texts: []string{"Introduction", "Results", "Executive Summary", "Discussion"}}
	return det, rec, &memPages{count: 2, width: 1000, height: 1200}
}

func TestProcessDocument(t *testing.T) {
	det, rec, pages := twoPageDocument()
	w := &recordingWriter{}

	p := New(det, rec,
		WithDPI(150),
		WithOpener(opener(pages)),
		WithTitle(func(string) (string, error) { return "  Quarterly Review ", nil }),
		WithWriter(w.write),
	)
	result := p.ProcessDocument(context.Background(), "docs/q3.pdf", "out/q3.json")

	if !result.Success {
		t.Fatalf("Success = false, error %q", result.Error)
	}
	if result.Title != "Quarterly Review" {
		t.Errorf("Title = %q, want %q", result.Title, "Quarterly Review")
	}
	if result.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", result.PageCount)
	}
	if pages.dpiSeen != 150 {
		t.Errorf("rendered at %d dpi, want 150", pages.dpiSeen)
	}
	if !pages.closed {
		t.Error("document was not closed")
	}

	var got []string
	for _, h := range result.Headings {
		got = append(got, h.Level+":"+h.Text+":"+string(rune('0'+h.Page)))
	}
	want := "H1:Introduction:1 H2:Results:1 H1:Executive Summary:2 H2:Discussion:2"
	if strings.Join(got, " ") != want {
		t.Errorf("headings = %v, want %s", got, want)
	}

	if len(w.dests) != 1 || w.dests[0] != "out/q3.json" {
		t.Errorf("writes = %v, want one write to out/q3.json", w.dests)
	}
	if result.Elapsed <= 0 {
		t.Error("Elapsed not recorded")
	}
}

func TestProcessDocumentTitleFromFilename(t *testing.T) {
	det, rec, pages := twoPageDocument()
	p := New(det, rec,
		WithOpener(opener(pages)),
		WithTitle(func(string) (string, error) { return "", errors.New("no info dict") }),
	)

	result := p.ProcessDocument(context.Background(), "/data/annual_report-2024.pdf", "")
	if result.Title != "Annual Report 2024" {
		t.Errorf("Title = %q, want %q", result.Title, "Annual Report 2024")
	}
}

func TestProcessDocumentOpenFailure(t *testing.T) {
	w := &recordingWriter{}
	p := New(detections(), &countingOCR{},
		WithOpener(func(string) (Pages, error) { return nil, errors.New("document not found: x.pdf") }),
		WithWriter(w.write),
	)

	result := p.ProcessDocument(context.Background(), "x.pdf", "out/x.json")

	if result.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(result.Error, "not found") {
		t.Errorf("Error = %q, want the open error", result.Error)
	}
	if len(w.dests) != 0 {
		t.Error("output written for a failed document")
	}
}

func TestProcessDocumentRenderFailure(t *testing.T) {
	det, rec, pages := twoPageDocument()
	pages.failAt = 2
	w := &recordingWriter{}

	p := New(det, rec, WithOpener(opener(pages)), WithTitle(noTitle), WithWriter(w.write))
	result := p.ProcessDocument(context.Background(), "doc.pdf", "out/doc.json")

	if result.Success {
		t.Error("Success = true, want false")
	}
	if len(result.Headings) != 0 {
		t.Errorf("failed document kept %d headings", len(result.Headings))
	}
	if len(w.dests) != 0 {
		t.Error("output written for a failed document")
	}
	if !pages.closed {
		t.Error("document was not closed after failure")
	}
}

func TestProcessDocumentPageFailureContained(t *testing.T) {
	det, _, pages := twoPageDocument()
	rec := &countingOCR{panic: true}

	p := New(det, rec, WithOpener(opener(pages)), WithTitle(noTitle))
	result := p.ProcessDocument(context.Background(), "doc.pdf", "")

	if !result.Success {
		t.Errorf("Success = false (%s), want true: page failures are contained", result.Error)
	}
	if len(pages.rendered) != 2 {
		t.Errorf("rendered pages %v, want both", pages.rendered)
	}
}

func TestProcessDocumentWriteFailure(t *testing.T) {
	det, rec, pages := twoPageDocument()
	w := &recordingWriter{err: errors.New("disk full")}

	p := New(det, rec, WithOpener(opener(pages)), WithTitle(noTitle), WithWriter(w.write))
	result := p.ProcessDocument(context.Background(), "doc.pdf", "out/doc.json")

	if result.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(result.Error, "disk full") {
		t.Errorf("Error = %q, want the write error", result.Error)
	}
}

func TestProcessDocumentNoDestination(t *testing.T) {
	det, rec, pages := twoPageDocument()
	w := &recordingWriter{}

	p := New(det, rec, WithOpener(opener(pages)), WithTitle(noTitle), WithWriter(w.write))
	if result := p.ProcessDocument(context.Background(), "doc.pdf", ""); !result.Success {
		t.Fatalf("Success = false: %s", result.Error)
	}
	if len(w.dests) != 0 {
		t.Errorf("writes = %v, want none without a destination", w.dests)
	}
}

func TestProcessDocumentCancelled(t *testing.T) {
	det, rec, pages := twoPageDocument()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(det, rec, WithOpener(opener(pages)), WithTitle(noTitle))
	result := p.ProcessDocument(ctx, "doc.pdf", "")

	if result.Success {
		t.Error("Success = true for a cancelled run")
	}
	if len(pages.rendered) != 0 {
		t.Errorf("rendered %v after cancellation", pages.rendered)
	}
}

func TestProcessDocumentWritesJSON(t *testing.T) {
	det, rec, pages := twoPageDocument()
	dest := filepath.Join(t.TempDir(), "out", "doc.json")

	p := New(det, rec, WithOpener(opener(pages)), WithTitle(noTitle))
	result := p.ProcessDocument(context.Background(), "my-doc.pdf", dest)
	if !result.Success {
		t.Fatalf("Success = false: %s", result.Error)
	}

	back, err := output.Read(dest)
	if err != nil {
		t.Fatalf("output.Read() error = %v", err)
	}
	if back.Title != "My Doc" || len(back.Headings) != len(result.Headings) {
		t.Errorf("written outline = %q with %d headings, want %q with %d",
			back.Title, len(back.Headings), "My Doc", len(result.Headings))
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/docs/annual_report-2024.pdf", "Annual Report 2024"},
		{"file.name.v2.pdf", "File Name V2"},
		{"already Title.pdf", "Already Title"},
		{"résumé__final.pdf", "Résumé Final"},
		{"keepCASE_x.pdf", "KeepCASE X"},
		{"___.pdf", "___"},
		{"noext", "Noext"},
	}

	for _, tt := range tests {
		if got := TitleFromFilename(tt.path); got != tt.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBatch(t *testing.T) {
	in := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt", "broken.pdf"} {
		if err := os.WriteFile(filepath.Join(in, name), []byte("%PDF-1.4"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	outDir := filepath.Join(t.TempDir(), "results")

	det, rec, _ := twoPageDocument()
	w := &recordingWriter{}
	open := func(path string) (Pages, error) {
		if filepath.Base(path) == "broken.pdf" {
			return nil, errors.New("invalid PDF")
		}
		return &memPages{count: 1, width: 1000, height: 1200}, nil
	}

	p := New(det, rec, WithOpener(open), WithTitle(noTitle), WithWriter(w.write))
	items, err := p.Batch(context.Background(), in, outDir)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	var names []string
	for _, it := range items {
		names = append(names, filepath.Base(it.Path))
	}
	if got := strings.Join(names, ","); got != "a.pdf,b.pdf,broken.pdf" {
		t.Errorf("processing order = %s", got)
	}
	if items[0].Output != filepath.Join(outDir, "a.json") {
		t.Errorf("Output = %q, want %q", items[0].Output, filepath.Join(outDir, "a.json"))
	}
	if Succeeded(items) != 2 {
		t.Errorf("Succeeded() = %d, want 2", Succeeded(items))
	}
	if len(w.dests) != 2 {
		t.Errorf("writes = %d, want 2 (none for the broken document)", len(w.dests))
	}
}

func TestBatchEmpty(t *testing.T) {
	p := New(detections(), &countingOCR{})
	if _, err := p.Batch(context.Background(), t.TempDir(), t.TempDir()); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("Batch() error = %v, want ErrNoDocuments", err)
	}
	if _, err := p.Batch(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir()); err == nil {
		t.Error("expected error for missing input directory")
	}
}

func TestBuild(t *testing.T) {
	cfg := config.Default()
	cfg.Detector.Backend = "none"
	cfg.Detector.Fallback = "none"
	cfg.Tables.Enabled = false
	cfg.DPI = 200

	setup, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer setup.Close()

	if setup.Detector.HasModel() {
		t.Error("HasModel() = true with the none backend")
	}
	if setup.Pipeline.DPI() != 200 {
		t.Errorf("DPI() = %d, want 200", setup.Pipeline.DPI())
	}
}

func TestBuildErrors(t *testing.T) {
	cfg := config.Default()
	cfg.OCR.Engine = "easyocr"
	if _, err := Build(cfg, nil); err == nil {
		t.Error("expected error for unknown OCR engine")
	}

	cfg = config.Default()
	cfg.Correction.CustomFile = filepath.Join(t.TempDir(), "missing.txt")
	if _, err := Build(cfg, nil); err == nil {
		t.Error("expected error for missing corrections file")
	}
}
