// Package pdfoutline provides a fluent API for extracting the heading
// outline (title and H1-H4 headings) of PDF files.
//
// Basic usage:
//
//	result, err := pdfoutline.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	for _, h := range result.Headings {
//	    fmt.Println(h.Level, h.Text, h.Page)
//	}
//
// With options:
//
//	result, err := pdfoutline.Open("report.pdf").
//	    DPI(150).
//	    ModelDir("models/yolo_layout").
//	    Details().
//	    WriteJSON("out/report.json")
//
// For batch processing and full control over the stages, use the pipeline
// package directly.
package pdfoutline

import (
	"github.com/tsawler/pdfoutline/config"
)

// Open returns an Extractor for the PDF at filename. Nothing is read until a
// terminal operation such as Outline is called.
//
// Example:
//
//	result, err := pdfoutline.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromConfig returns an Extractor configured from cfg, for example one
// loaded with config.Load. Fluent options applied afterwards override it.
func FromConfig(filename string, cfg config.Config) *Extractor {
	e := Open(filename)
	e.options.config = cfg
	e.options = e.options.clone()
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	headings := pdfoutline.Must(pdfoutline.Open("document.pdf").Headings())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
