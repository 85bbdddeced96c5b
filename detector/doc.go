// Package detector finds labeled layout regions on page images with a YOLO
// document layout model.
//
// # Pipeline
//
// [Detector.Detect] resizes the page to the model input ([Preprocess]), runs
// one inference through a [Session], decodes the [batch, attributes,
// detections] output ([Decode]) and removes duplicates ([NMS]). Labels come
// from the DocLayNet table ([DocLayNetLabels]) unless the model
// configuration lists its own class names.
//
// # Sessions
//
// Two backends are available:
//
//   - ONNX Runtime, compiled in with the onnx build tag ([OpenONNX])
//   - a remote HTTP inference service ([RemoteSession])
//
// # Fallback
//
// The detector never fails. Whenever no model session is usable, or an
// inference call fails, [Detector.Detect] returns [FallbackDetections] and
// reports the cause in the [Outcome]:
//
//	d := detector.New(detector.DefaultOptions())
//	d.Initialize()
//	out := d.Detect(ctx, page)
//	if out.Fallback {
//		log.Printf("degraded layout: %v", out.Cause)
//	}
package detector
