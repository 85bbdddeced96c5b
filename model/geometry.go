package model

import "math"

// Point represents a 2D point in page-image pixel space.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents an axis-aligned bounding box in page-image pixel space.
// The origin is the top-left corner of the image and Y grows downward.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from its top-left corner and size
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromCorners creates a bounding box from two opposite corners.
// The corners may be given in any order.
func NewBBoxFromCorners(x1, y1, x2, y2 float64) BBox {
	return BBox{
		X:      math.Min(x1, x2),
		Y:      math.Min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Intersection returns the overlapping region of two boxes. Boxes that do
// not overlap, or only touch along an edge, yield the zero BBox.
func (b BBox) Intersection(other BBox) BBox {
	x1 := math.Max(b.Left(), other.Left())
	y1 := math.Max(b.Top(), other.Top())
	x2 := math.Min(b.Right(), other.Right())
	y2 := math.Min(b.Bottom(), other.Bottom())

	if x2 <= x1 || y2 <= y1 {
		return BBox{}
	}

	return BBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Union returns the smallest box containing both boxes
func (b BBox) Union(other BBox) BBox {
	x1 := math.Min(b.Left(), other.Left())
	y1 := math.Min(b.Top(), other.Top())
	x2 := math.Max(b.Right(), other.Right())
	y2 := math.Max(b.Bottom(), other.Bottom())

	return BBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Area returns the area of the bounding box. Degenerate boxes have zero area.
func (b BBox) Area() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// IoU returns the intersection-over-union of two boxes, a value in [0, 1].
// A zero union area yields 0.
func (b BBox) IoU(other BBox) float64 {
	inter := b.Intersection(other).Area()
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// CoveredBy returns the fraction of b's own area that lies inside other.
// A box with zero area is never covered.
func (b BBox) CoveredBy(other BBox) float64 {
	area := b.Area()
	if area == 0 {
		return 0
	}
	return b.Intersection(other).Area() / area
}

// Clip restricts the box to the rectangle [0,width) x [0,height). Corners are
// truncated to whole pixels first, the way a crop rectangle is addressed.
// The result may be empty; check it with IsEmpty.
func (b BBox) Clip(width, height int) BBox {
	x1 := math.Max(math.Trunc(b.Left()), 0)
	y1 := math.Max(math.Trunc(b.Top()), 0)
	x2 := math.Min(math.Trunc(b.Left())+math.Trunc(b.Width), float64(width))
	y2 := math.Min(math.Trunc(b.Top())+math.Trunc(b.Height), float64(height))

	return BBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Scale multiplies every coordinate by independent x and y factors
func (b BBox) Scale(sx, sy float64) BBox {
	return BBox{X: b.X * sx, Y: b.Y * sy, Width: b.Width * sx, Height: b.Height * sy}
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
