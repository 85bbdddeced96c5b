package tables

import (
	"context"

	"github.com/tsawler/pdfoutline/model"
)

// Locator finds table rectangles on one page of a document. Pages are
// 1-based; rectangles are in image pixels for a page rendered at dpi.
type Locator interface {
	Tables(ctx context.Context, path string, page, dpi int) ([]model.BBox, error)
}

// Nop is a Locator that never finds tables
type Nop struct{}

// Tables returns no rectangles
func (Nop) Tables(context.Context, string, int, int) ([]model.BBox, error) {
	return nil, nil
}

// Config holds detection parameters. Distances are in points.
type Config struct {
	// Minimum number of text blocks in a cluster
	MinBlocks int

	// Minimum number of columns
	MinColumns int

	// Minimum number of blocks in a column for it to count
	MinColumnBlocks int

	// Tolerance for left-edge alignment of a column
	ColumnTolerance float64

	// Vertical gap that separates two clusters
	ClusterGap float64

	// Horizontal gap, in multiples of the font size, that splits a text
	// line into separate blocks
	BlockGap float64

	// Columns whose median block width exceeds this fraction of the page
	// width are treated as running text, not table columns
	MaxColumnWidth float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinBlocks:       6,
		MinColumns:      2,
		MinColumnBlocks: 2,
		ColumnTolerance: 10,
		ClusterGap:      50,
		BlockGap:        1.0,
		MaxColumnWidth:  0.4,
	}
}
