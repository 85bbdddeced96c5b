package detector

import (
	"fmt"
	"strings"

	"github.com/tsawler/pdfoutline/model"
)

// FallbackMode selects what the detector returns when it has no usable model
type FallbackMode int

const (
	// FallbackHeuristic returns fixed proportional regions
	FallbackHeuristic FallbackMode = iota

	// FallbackNone returns no regions at all
	FallbackNone
)

// String returns the configuration name of the mode
func (m FallbackMode) String() string {
	switch m {
	case FallbackNone:
		return "none"
	default:
		return "heuristic"
	}
}

// ParseFallbackMode parses "heuristic" or "none"
func ParseFallbackMode(s string) (FallbackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heuristic":
		return FallbackHeuristic, nil
	case "none":
		return FallbackNone, nil
	default:
		return FallbackHeuristic, fmt.Errorf("unknown fallback mode %q", s)
	}
}

// Confidences of fallback regions. They are low to mark degraded output.
const (
	FallbackTitleConfidence = 0.30
	FallbackBandConfidence  = 0.20
)

// fallbackBandStarts are the top edges of the paragraph_title bands as a
// fraction of page height
var fallbackBandStarts = []float64{0.35, 0.55, 0.75}

// FallbackDetections returns the fixed layout used without a model: a title
// band across the top of the page and three paragraph_title bands below it,
// all proportional to the image size.
func FallbackDetections(width, height int, mode FallbackMode) []model.Detection {
	if mode == FallbackNone || width <= 0 || height <= 0 {
		return nil
	}

	w, h := float64(width), float64(height)
	results := []model.Detection{
		model.NewDetection(0.1*w, 0.05*h, 0.9*w, 0.15*h,
			FallbackTitleConfidence, ClassTitle, DocLayNetLabels[ClassTitle]),
	}

	for _, y := range fallbackBandStarts {
		results = append(results, model.NewDetection(0.1*w, y*h, 0.7*w, (y+0.05)*h,
			FallbackBandConfidence, ClassParagraphTitle, DocLayNetLabels[ClassParagraphTitle]))
	}

	return results
}
