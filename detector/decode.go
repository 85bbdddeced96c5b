package detector

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsawler/pdfoutline/model"
)

// ErrMalformedOutput is returned when the model output does not have the
// expected [batch, attributes, detections] layout.
var ErrMalformedOutput = errors.New("malformed detector output")

// boxAttributes is the number of leading box parameters per detection:
// center x, center y, width, height
const boxAttributes = 4

// Tensor is a raw float32 model output with its shape
type Tensor struct {
	Shape []int64   `json:"shape"`
	Data  []float32 `json:"data"`
}

// DecodeParams controls how a raw output tensor becomes detections
type DecodeParams struct {
	ConfidenceThreshold float64
	ClassNames          []string

	// ScaleX and ScaleY map model input pixels to original image pixels
	// (original dimension / model input dimension)
	ScaleX, ScaleY float64
}

// Decode turns a [batch, attributes, detections] output into detections in
// original image space. Only the first batch entry is read. The value of
// attribute a for detection i is at Data[a*N+i]; attributes 0-3 are the
// center-format box and the rest are per-class scores.
//
// Candidates whose best class score is below the threshold are dropped.
// The result is not yet de-duplicated; see NMS.
func Decode(t Tensor, p DecodeParams) ([]model.Detection, error) {
	if len(t.Shape) != 3 {
		return nil, fmt.Errorf("%w: want 3 dimensions, got shape %v", ErrMalformedOutput, t.Shape)
	}
	batch, attrs, n := t.Shape[0], int(t.Shape[1]), int(t.Shape[2])
	if batch < 1 || attrs <= boxAttributes || n < 0 {
		return nil, fmt.Errorf("%w: unusable shape %v", ErrMalformedOutput, t.Shape)
	}
	if len(t.Data) < attrs*n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrMalformedOutput, len(t.Data), t.Shape)
	}

	numClasses := attrs - boxAttributes
	data := t.Data
	var detections []model.Detection

	for i := 0; i < n; i++ {
		cx := float64(data[0*n+i])
		cy := float64(data[1*n+i])
		w := float64(data[2*n+i])
		h := float64(data[3*n+i])

		best := -1
		maxConf := 0.0
		for c := 0; c < numClasses; c++ {
			conf := calibrate(float64(data[(boxAttributes+c)*n+i]))
			if conf > maxConf {
				maxConf = conf
				best = c
			}
		}

		if maxConf < p.ConfidenceThreshold {
			continue
		}

		detections = append(detections, model.NewDetection(
			(cx-w/2)*p.ScaleX,
			(cy-h/2)*p.ScaleY,
			(cx+w/2)*p.ScaleX,
			(cy+h/2)*p.ScaleY,
			maxConf,
			best,
			LabelFor(best, p.ClassNames),
		))
	}

	return detections, nil
}

// calibrate converts a raw class score into a confidence. Models that
// already apply a sigmoid produce values in [0,1] which pass through;
// values above 1 are treated as logits.
func calibrate(raw float64) float64 {
	if raw > 1.0 {
		return sigmoid(raw)
	}
	return raw
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
