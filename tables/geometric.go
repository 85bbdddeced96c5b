package tables

import (
	"math"
	"sort"

	"github.com/tsawler/pdfoutline/model"
)

// Detect finds tables among text blocks. Blocks are in page space (points,
// Y down) on a page pageWidth points wide; the returned rectangles are in
// the same space.
func Detect(blocks []model.BBox, pageWidth float64, config Config) []model.BBox {
	if len(blocks) == 0 {
		return nil
	}

	var tables []model.BBox
	for _, cluster := range clusterBlocks(blocks, config.ClusterGap) {
		if table, ok := detectTableInCluster(cluster, pageWidth, config); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// clusterBlocks groups blocks by vertical proximity. Blocks separated by
// more than gap points vertically start new clusters.
func clusterBlocks(blocks []model.BBox, gap float64) [][]model.BBox {
	sorted := make([]model.BBox, len(blocks))
	copy(sorted, blocks)

	// Sort by top edge (top to bottom)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top() < sorted[j].Top()
	})

	var clusters [][]model.BBox
	current := []model.BBox{sorted[0]}
	bottom := sorted[0].Bottom()

	for _, b := range sorted[1:] {
		if b.Top()-bottom > gap {
			clusters = append(clusters, current)
			current = []model.BBox{b}
			bottom = b.Bottom()
			continue
		}
		current = append(current, b)
		bottom = math.Max(bottom, b.Bottom())
	}

	return append(clusters, current)
}

// detectTableInCluster checks a cluster for tabular structure and returns
// the bounding box of its tabular blocks.
func detectTableInCluster(cluster []model.BBox, pageWidth float64, config Config) (model.BBox, bool) {
	if len(cluster) < config.MinBlocks {
		return model.BBox{}, false
	}

	cells := multiBlockRows(cluster)
	if len(cells) < config.MinBlocks {
		return model.BBox{}, false
	}

	columns := 0
	for _, col := range groupColumns(cells, config.ColumnTolerance) {
		if len(col) < config.MinColumnBlocks {
			continue
		}
		if pageWidth > 0 && medianWidth(col) > config.MaxColumnWidth*pageWidth {
			continue
		}
		columns++
	}
	if columns < config.MinColumns {
		return model.BBox{}, false
	}

	bounds := cells[0]
	for _, b := range cells[1:] {
		bounds = bounds.Union(b)
	}
	return bounds, true
}

// multiBlockRows returns the blocks that share a row with at least one
// other block. Two blocks share a row when their vertical centers lie
// within half the smaller block's height.
func multiBlockRows(blocks []model.BBox) []model.BBox {
	var rows [][]model.BBox
	for _, b := range blocks {
		placed := false
		for i, row := range rows {
			ref := row[0]
			tol := math.Min(ref.Height, b.Height) / 2
			if math.Abs(ref.Center().Y-b.Center().Y) <= tol {
				rows[i] = append(row, b)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []model.BBox{b})
		}
	}

	var cells []model.BBox
	for _, row := range rows {
		if len(row) >= 2 {
			cells = append(cells, row...)
		}
	}
	return cells
}

// groupColumns groups blocks whose left edges lie within tolerance of the
// column's first block
func groupColumns(blocks []model.BBox, tolerance float64) [][]model.BBox {
	sorted := make([]model.BBox, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Left() < sorted[j].Left()
	})

	var columns [][]model.BBox
	for _, b := range sorted {
		n := len(columns)
		if n > 0 && b.Left()-columns[n-1][0].Left() <= tolerance {
			columns[n-1] = append(columns[n-1], b)
			continue
		}
		columns = append(columns, []model.BBox{b})
	}
	return columns
}

func medianWidth(blocks []model.BBox) float64 {
	widths := make([]float64, len(blocks))
	for i, b := range blocks {
		widths[i] = b.Width
	}
	sort.Float64s(widths)
	return widths[len(widths)/2]
}

// ToImage converts a page-space rectangle in points to pixels at dpi
func ToImage(b model.BBox, dpi int) model.BBox {
	s := float64(dpi) / 72
	return b.Scale(s, s)
}
