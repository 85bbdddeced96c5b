package model

import "time"

// HeadingInfo is one accepted heading in a document outline. Values are
// created once per accepted region and never modified afterwards.
type HeadingInfo struct {
	// Level is the heading level rendered as a string ("H1".."H4")
	Level string

	// Text is the corrected OCR text of the region
	Text string

	// Page is the 1-based page number
	Page int

	// BBox is the clipped region in page-image pixels
	BBox BBox

	// Confidence is inherited from the source detection
	Confidence float64
}

// Result is the outcome of processing one document.
//
// Headings are kept in page order, then detection order within a page.
// Consumers rely on that ordering.
type Result struct {
	Title    string
	Headings []HeadingInfo
	Success  bool
	Error    string
	Elapsed  time.Duration

	// PageCount is the number of pages that were processed
	PageCount int
}

// CountByLevel returns the number of headings per level string
func (r *Result) CountByLevel() map[string]int {
	counts := make(map[string]int)
	if r == nil {
		return counts
	}
	for _, h := range r.Headings {
		counts[h.Level]++
	}
	return counts
}

// Fail marks the result as failed with the given error
func (r *Result) Fail(err error) {
	r.Success = false
	if err != nil {
		r.Error = err.Error()
	}
}
