package pipeline

import (
	"context"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfoutline/correct"
	"github.com/tsawler/pdfoutline/detector"
	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/logging"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/output"
	"github.com/tsawler/pdfoutline/reader"
	"github.com/tsawler/pdfoutline/tables"
)

// LayoutDetector finds labeled regions on a page image. It never fails;
// degraded results are reported in the outcome.
type LayoutDetector interface {
	Detect(ctx context.Context, img image.Image) detector.Outcome
}

// TextRecognizer returns the text in an image region
type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// TextCorrector normalizes recognized text
type TextCorrector interface {
	Correct(text string) string
}

// RegionClassifier decides the heading level of a region's text
type RegionClassifier interface {
	Classify(text, label string, bbox model.BBox, page int) layout.Decision
}

// TableLocator returns table rectangles in image pixels for a 1-based page
type TableLocator interface {
	Tables(ctx context.Context, path string, page, dpi int) ([]model.BBox, error)
}

// Pages is an open document whose pages are rendered on demand
type Pages interface {
	PageCount() int
	RenderPage(index, dpi int) (image.Image, error)
	Close() error
}

// OpenFunc opens a document for rendering
type OpenFunc func(path string) (Pages, error)

// TitleFunc looks up a document's metadata title; "" means none
type TitleFunc func(path string) (string, error)

// WriteFunc stores a finished result at dest
type WriteFunc func(result *model.Result, dest string) error

// DefaultDPI is the page rendering resolution
const DefaultDPI = 100

// DefaultTableOverlap is the fraction of a region's area that may lie
// inside a table before the region is discarded
const DefaultTableOverlap = 0.3

// DefaultMinTextLength is the shortest recognized text, in characters,
// that is classified
const DefaultMinTextLength = 3

// DefaultLabels are the detector labels whose regions may hold headings
var DefaultLabels = []string{"title", "paragraph_title", "text"}

// Pipeline extracts heading outlines from documents. The detector and the
// other collaborators are shared by every document the pipeline processes.
// A Pipeline is safe for concurrent use when its collaborators are.
type Pipeline struct {
	detector   LayoutDetector
	recognizer TextRecognizer
	corrector  TextCorrector
	classifier RegionClassifier
	tables     TableLocator
	open       OpenFunc
	title      TitleFunc
	write      WriteFunc

	dpi           int
	labels        map[string]bool
	tableOverlap  float64
	minTextLength int
	logger        logrus.FieldLogger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithDPI sets the page rendering resolution
func WithDPI(dpi int) Option {
	return func(p *Pipeline) {
		if dpi > 0 {
			p.dpi = dpi
		}
	}
}

// WithCorrector sets the text corrector
func WithCorrector(c TextCorrector) Option {
	return func(p *Pipeline) { p.corrector = c }
}

// WithClassifier sets the region classifier
func WithClassifier(c RegionClassifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithTables sets the table locator
func WithTables(l TableLocator) Option {
	return func(p *Pipeline) { p.tables = l }
}

// WithOpener sets how documents are opened
func WithOpener(open OpenFunc) Option {
	return func(p *Pipeline) { p.open = open }
}

// WithTitle sets the metadata title lookup
func WithTitle(title TitleFunc) Option {
	return func(p *Pipeline) { p.title = title }
}

// WithWriter sets how results are stored
func WithWriter(write WriteFunc) Option {
	return func(p *Pipeline) { p.write = write }
}

// WithLabels sets the detector labels considered heading candidates
func WithLabels(labels ...string) Option {
	return func(p *Pipeline) {
		p.labels = make(map[string]bool, len(labels))
		for _, l := range labels {
			p.labels[l] = true
		}
	}
}

// WithTableOverlap sets the table overlap fraction above which a region
// is discarded
func WithTableOverlap(fraction float64) Option {
	return func(p *Pipeline) { p.tableOverlap = fraction }
}

// WithLogger sets the logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.logger = logging.OrDiscard(l) }
}

// New creates a pipeline around a layout detector and a text recognizer.
// Unless overridden, documents are opened with reader.Open, titles come from
// reader.MetadataTitle, results are written as JSON with output.Write, text
// is corrected with correct.Default, regions are classified with
// layout.NewClassifier and no tables are excluded.
func New(det LayoutDetector, rec TextRecognizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		detector:      det,
		recognizer:    rec,
		corrector:     correct.Default(),
		classifier:    layout.NewClassifier(),
		tables:        tables.Nop{},
		open:          openPDF,
		title:         reader.MetadataTitle,
		write:         writeJSON,
		dpi:           DefaultDPI,
		tableOverlap:  DefaultTableOverlap,
		minTextLength: DefaultMinTextLength,
		logger:        logging.Discard(),
	}
	WithLabels(DefaultLabels...)(p)

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DPI returns the page rendering resolution
func (p *Pipeline) DPI() int {
	return p.dpi
}

func openPDF(path string) (Pages, error) {
	doc, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeJSON(result *model.Result, dest string) error {
	return output.Write(result, dest, output.Options{})
}
