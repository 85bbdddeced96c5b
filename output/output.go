// Package output writes and reads heading outlines as JSON.
//
// The document format is:
//
//	{
//	  "title": "Annual Report",
//	  "outline": [
//	    { "level": "H1", "text": "Introduction", "page": 1 }
//	  ]
//	}
//
// With [Options.Details] each entry also carries "bbox" ([x1, y1, x2, y2]
// in page-image pixels) and "confidence".
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/tsawler/pdfoutline/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the serialized form of a result
type Document struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Entry is one heading in the outline
type Entry struct {
	Level      string      `json:"level"`
	Text       string      `json:"text"`
	Page       int         `json:"page"`
	BBox       *[4]float64 `json:"bbox,omitempty"`
	Confidence *float64    `json:"confidence,omitempty"`
}

// Options controls serialization
type Options struct {
	// Details adds bbox and confidence to every entry
	Details bool

	// Indent is the indentation of the pretty-printed output
	// Default: two spaces
	Indent string
}

// NewDocument converts a result into its serialized form
func NewDocument(result *model.Result, opts Options) Document {
	doc := Document{
		Title:   result.Title,
		Outline: make([]Entry, 0, len(result.Headings)),
	}
	for _, h := range result.Headings {
		e := Entry{Level: h.Level, Text: h.Text, Page: h.Page}
		if opts.Details {
			bbox := [4]float64{h.BBox.Left(), h.BBox.Top(), h.BBox.Right(), h.BBox.Bottom()}
			conf := h.Confidence
			e.BBox, e.Confidence = &bbox, &conf
		}
		doc.Outline = append(doc.Outline, e)
	}
	return doc
}

// Encode writes result as JSON to w
func Encode(w io.Writer, result *model.Result, opts Options) error {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	data, err := json.MarshalIndent(NewDocument(result, opts), "", indent)
	if err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Write saves result to path. Parent directories are created. The file is
// written to a temporary sibling and renamed into place, so an existing
// file is never left half-written.
func Write(result *model.Result, path string, opts Options) (err error) {
	if result == nil {
		return fmt.Errorf("write %s: nil result", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, result, opts); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("set output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}
	return nil
}

// Decode parses an outline document from r
func Decode(r io.Reader) (*model.Result, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}

	result := &model.Result{
		Title:    doc.Title,
		Headings: make([]model.HeadingInfo, 0, len(doc.Outline)),
		Success:  true,
	}
	for _, e := range doc.Outline {
		h := model.HeadingInfo{Level: e.Level, Text: e.Text, Page: e.Page}
		if e.BBox != nil {
			h.BBox = model.NewBBoxFromCorners(e.BBox[0], e.BBox[1], e.BBox[2], e.BBox[3])
		}
		if e.Confidence != nil {
			h.Confidence = *e.Confidence
		}
		result.Headings = append(result.Headings, h)
	}
	return result, nil
}

// Read loads an outline document from path
func Read(path string) (*model.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
