// Package model provides the plain data types shared by the outline
// extraction stages.
//
// # Geometry
//
// [BBox] is an axis-aligned rectangle in page-image pixel space (origin at the
// top-left, Y grows downward). It provides intersection, union,
// intersection-over-union ([BBox.IoU]), own-area coverage ([BBox.CoveredBy])
// and clipping to image bounds ([BBox.Clip]).
//
// # Detections
//
// A [Detection] is one labeled rectangle produced by the layout detector. It
// is page scoped and discarded after the page is processed. A
// [LayoutRegion] is the same rectangle seen by the heading classifier:
//
//	det := model.NewDetection(100, 50, 900, 150, 0.95, 10, "title")
//	region := det.Region()
//
// # Outline
//
// Accepted headings become [HeadingInfo] values, collected in page order
// into a document level [Result].
package model
