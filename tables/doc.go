// Package tables locates table regions on PDF pages so that layout regions
// inside tables can be excluded from heading extraction.
//
// # Locators
//
// Table lookup is performed by types implementing the [Locator] interface.
// The package provides:
//
//   - [Nop] - never reports a table
//   - [TextLocator] - uses spatial analysis of the page's positioned text
//
// # Geometric Detection
//
// [Detect] works on text blocks in page space (points, Y down):
//
//  1. Vertical clustering of blocks (a gap above [Config.ClusterGap] starts
//     a new cluster)
//  2. Row analysis: only rows holding two or more blocks count as tabular
//  3. Column analysis: tabular blocks are grouped by left edge within
//     [Config.ColumnTolerance]
//  4. A cluster with enough blocks and enough narrow, populated columns is
//     reported as its bounding box
//
// # Configuration
//
// Detection is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinBlocks = 8
//	locator := tables.NewTextLocator(config)
//	defer locator.Close()
//	boxes, err := locator.Tables(ctx, "paper.pdf", 1, 150)
//
// Rectangles are returned in page-image pixels at the requested DPI, the
// same space the layout detector works in.
package tables
