package detector

import (
	"context"
	"errors"
)

// ErrNoModel is returned when no model file is found in any search directory
var ErrNoModel = errors.New("no layout model found")

// ErrONNXNotEnabled is returned when ONNX support is not compiled in.
// Build with -tags onnx to enable it.
var ErrONNXNotEnabled = errors.New("onnx support not enabled: build with -tags onnx")

// Session runs a loaded detection model. Implementations need not be safe
// for concurrent use; the Detector serializes calls to Run.
type Session interface {
	// InputSize returns the square model input the session expects
	InputSize() (width, height int)

	// Run performs one inference and returns the first output tensor
	Run(ctx context.Context, blob *Blob) (Tensor, error)

	// Close releases the session's resources
	Close() error
}

// Backend names how the detector obtains a session
type Backend string

const (
	// BackendONNX loads an ONNX model file through ONNX Runtime
	BackendONNX Backend = "onnx"

	// BackendRemote sends page images to an HTTP inference service
	BackendRemote Backend = "remote"

	// BackendNone never loads a model; the detector always falls back
	BackendNone Backend = "none"
)

// ModelFileNames are the model files looked for in each search directory,
// in order
var ModelFileNames = []string{"yolo_layout.onnx", "yolov12.onnx"}

// DefaultModelDirs is the model search path used when none is given
var DefaultModelDirs = []string{
	"models/yolo_layout",
	"models/PP-DocLayout-L",
	"models/PP-DocLayout-S",
}
