package pdfoutline

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/logging"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/output"
	"github.com/tsawler/pdfoutline/pipeline"
)

// Extractor provides a fluent interface for extracting outlines from PDFs.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	filename string
	options  ExtractOptions
}

func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
	}
}

// DPI sets the page rendering resolution.
//
// Example:
//
//	result, err := pdfoutline.Open("doc.pdf").DPI(150).Outline()
func (e *Extractor) DPI(dpi int) *Extractor {
	n := e.clone()
	n.options.dpi = dpi
	return n
}

// ModelDir sets the directories searched for the layout model, in order.
// Multiple calls are cumulative.
func (e *Extractor) ModelDir(dirs ...string) *Extractor {
	n := e.clone()
	n.options.modelDirs = append(n.options.modelDirs, dirs...)
	return n
}

// Details includes region boxes and confidences in JSON written by
// WriteJSON.
func (e *Extractor) Details() *Extractor {
	n := e.clone()
	n.options.details = true
	return n
}

// WithoutTables disables table detection, so regions inside tables are
// classified like any other region.
func (e *Extractor) WithoutTables() *Extractor {
	n := e.clone()
	n.options.noTables = true
	return n
}

// Logger sets the logger that receives pipeline messages. The default
// discards them.
func (e *Extractor) Logger(l logrus.FieldLogger) *Extractor {
	n := e.clone()
	n.options.logger = l
	return n
}

// Context sets the context checked between pages.
func (e *Extractor) Context(ctx context.Context) *Extractor {
	n := e.clone()
	n.options.ctx = ctx
	return n
}

// Outline runs the full pipeline over the document and returns its
// outline. The result is returned on failure too, with Success false.
//
// Example:
//
//	result, err := pdfoutline.Open("doc.pdf").Outline()
func (e *Extractor) Outline() (*model.Result, error) {
	return e.run("")
}

// Headings returns only the accepted headings, in page order.
func (e *Extractor) Headings() ([]model.HeadingInfo, error) {
	result, err := e.Outline()
	if err != nil {
		return nil, err
	}
	return result.Headings, nil
}

// WriteJSON extracts the outline and writes it to dest as
// {"title": ..., "outline": [...]}.
//
// Example:
//
//	_, err := pdfoutline.Open("doc.pdf").WriteJSON("out/doc.json")
func (e *Extractor) WriteJSON(dest string) (*model.Result, error) {
	if dest == "" {
		return nil, errors.New("no output path specified")
	}
	return e.run(dest)
}

// Document extracts the outline in its JSON document form.
func (e *Extractor) Document() (output.Document, error) {
	result, err := e.Outline()
	if err != nil {
		return output.Document{}, err
	}
	return output.NewDocument(result, output.Options{Details: e.options.details}), nil
}

func (e *Extractor) run(dest string) (*model.Result, error) {
	if e.filename == "" {
		return nil, errors.New("no filename specified")
	}

	cfg := e.options.resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.OrDiscard(e.options.logger)
	setup, err := pipeline.Build(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer setup.Close()

	ctx := e.options.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	result := setup.Pipeline.ProcessDocument(ctx, e.filename, dest)
	if !result.Success {
		return result, fmt.Errorf("extract outline from %s: %s", e.filename, result.Error)
	}
	return result, nil
}
