package model

// Detection is one candidate region produced by the layout detector for a
// page image. Coordinates are corner-format pixels in the original image
// space with X1 <= X2 and Y1 <= Y2.
type Detection struct {
	X1, Y1, X2, Y2 float64

	// Confidence is the winning per-class score in [0, 1]
	Confidence float64

	// ClassID indexes the detector's class table
	ClassID int

	// Label is the human readable class name, e.g. "title" or "table"
	Label string
}

// NewDetection creates a detection from two corners, normalizing them so
// that the first corner is top-left.
func NewDetection(x1, y1, x2, y2, confidence float64, classID int, label string) Detection {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Detection{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		Confidence: confidence,
		ClassID:    classID,
		Label:      label,
	}
}

// Width returns the horizontal extent of the detection
func (d Detection) Width() float64 {
	return d.X2 - d.X1
}

// Height returns the vertical extent of the detection
func (d Detection) Height() float64 {
	return d.Y2 - d.Y1
}

// BBox returns the detection rectangle as a BBox
func (d Detection) BBox() BBox {
	return BBox{X: d.X1, Y: d.Y1, Width: d.X2 - d.X1, Height: d.Y2 - d.Y1}
}

// IoU returns the intersection-over-union of two detections
func (d Detection) IoU(other Detection) float64 {
	return d.BBox().IoU(other.BBox())
}

// Region re-expresses the detection as a LayoutRegion for the classifier
func (d Detection) Region() LayoutRegion {
	return LayoutRegion{
		BBox:       d.BBox(),
		Label:      d.Label,
		Confidence: d.Confidence,
	}
}

// LayoutRegion is the classifier's view of a detection: a rectangle, its
// semantic label and the detector confidence. It carries no detector
// internals such as class ids.
type LayoutRegion struct {
	BBox       BBox
	Label      string
	Confidence float64
}
