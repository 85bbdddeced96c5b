// Package ocr recognizes text in page-image regions with Tesseract.
//
// Two engines implement [Engine]:
//
//   - [Command] runs the tesseract binary, one process per region
//   - [Client] uses the gosseract binding, compiled in with the "ocr" tag
//
// Tesseract must be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"strings"
)

// Engine recognizes the text in an image. An image without text yields ""
// and no error.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Engine names accepted by NewEngine
const (
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"
)

// PSMSingleBlock treats the region as a single uniform block of text
const PSMSingleBlock = 6

// Options configures an engine
type Options struct {
	// Binary is the tesseract executable used by Command
	// Default: "tesseract"
	Binary string

	// Language is a "+" separated list of Tesseract languages
	// Default: "eng"
	Language string

	// PageSegMode is the Tesseract page segmentation mode
	// Default: 6 (single block)
	PageSegMode int
}

// DefaultOptions returns the standard engine settings
func DefaultOptions() Options {
	return Options{
		Binary:      "tesseract",
		Language:    "eng",
		PageSegMode: PSMSingleBlock,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Binary == "" {
		o.Binary = d.Binary
	}
	if o.Language == "" {
		o.Language = d.Language
	}
	if o.PageSegMode == 0 {
		o.PageSegMode = d.PageSegMode
	}
	return o
}

// NewEngine returns the engine registered under name
func NewEngine(name string, opts Options) (Engine, error) {
	switch strings.ToLower(name) {
	case "", EngineTesseract:
		return NewCommand(opts), nil
	case EngineGosseract:
		c, err := NewClient(opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", name)
	}
}

// Crop returns the part of img inside rect. Images that support SubImage
// share pixels with the original; others are copied.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Intersect(img.Bounds())
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}

// Clean turns raw Tesseract output into a single line: line breaks become
// spaces and surrounding blanks are trimmed.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\f", "")
	return strings.TrimSpace(text)
}
