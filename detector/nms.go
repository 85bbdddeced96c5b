package detector

import (
	"sort"

	"github.com/tsawler/pdfoutline/model"
)

// NMS performs non-maximum suppression. Boxes are visited in descending
// confidence order; each kept box suppresses every later box whose IoU
// with it exceeds threshold. The survivors are returned in that visiting
// order. The input slice is not modified.
func NMS(detections []model.Detection, threshold float64) []model.Detection {
	if len(detections) == 0 {
		return nil
	}

	order := make([]int, len(detections))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return detections[order[a]].Confidence > detections[order[b]].Confidence
	})

	suppressed := make([]bool, len(detections))
	kept := make([]model.Detection, 0, len(detections))

	for i, idx := range order {
		if suppressed[idx] {
			continue
		}
		kept = append(kept, detections[idx])

		box := detections[idx].BBox()
		for _, later := range order[i+1:] {
			if suppressed[later] {
				continue
			}
			if box.IoU(detections[later].BBox()) > threshold {
				suppressed[later] = true
			}
		}
	}

	return kept
}
