package reader

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/gen2brain/go-fitz"

	"github.com/tsawler/pdfoutline/format"
)

var (
	// ErrNotFound is returned when the input file does not exist
	ErrNotFound = errors.New("document not found")

	// ErrInvalidPDF is returned when the input cannot be parsed as a PDF
	ErrInvalidPDF = errors.New("invalid PDF")

	// ErrNoPages is returned for a readable document with zero pages
	ErrNoPages = errors.New("document has no pages")
)

// Document is an open PDF whose pages can be rendered
type Document struct {
	mu    sync.Mutex
	path  string
	doc   *fitz.Document
	pages int
}

// Open opens a PDF file for rendering
func Open(filename string) (*Document, error) {
	info, err := os.Stat(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidPDF, filename)
	}

	kind, err := format.DetectFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if kind != format.PDF {
		return nil, fmt.Errorf("%w: %s: missing %%PDF header", ErrInvalidPDF, filename)
	}

	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, filename, err)
	}

	pages := doc.NumPage()
	if pages <= 0 {
		doc.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoPages, filename)
	}

	return &Document{path: filename, doc: doc, pages: pages}, nil
}

// Path returns the file the document was opened from
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.pages
}

// RenderPage renders the page at index (0-based) at the given resolution
func (d *Document) RenderPage(index, dpi int) (image.Image, error) {
	if index < 0 || index >= d.pages {
		return nil, fmt.Errorf("page index %d out of range (0-%d)", index, d.pages-1)
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("invalid dpi %d", dpi)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.doc == nil {
		return nil, errors.New("document is closed")
	}

	img, err := d.doc.ImageDPI(index, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index+1, err)
	}
	return img, nil
}

// Close releases the document
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.doc == nil {
		return nil
	}
	err := d.doc.Close()
	d.doc = nil
	return err
}
