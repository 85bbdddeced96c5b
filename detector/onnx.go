//go:build onnx

package detector

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortOnce sync.Once
	ortErr  error
)

// initRuntime initializes the process-wide ONNX Runtime environment once.
// libraryPath may be empty to use the platform default.
func initRuntime(libraryPath string) error {
	ortOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortErr = ort.InitializeEnvironment()
	})
	return ortErr
}

// ONNXSession runs a YOLO layout model with ONNX Runtime
type ONNXSession struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
	width      int
	height     int
}

// ONNXAvailable reports whether ONNX support is compiled in
func ONNXAvailable() bool {
	return true
}

// OpenONNX loads the model at path. Dynamic input dimensions are replaced
// with defaultSize.
func OpenONNX(path, libraryPath string, defaultSize int) (Session, error) {
	if err := initRuntime(libraryPath); err != nil {
		return nil, fmt.Errorf("initialize onnxruntime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("read model info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("model %s has no inputs or outputs", path)
	}

	width, height := defaultSize, defaultSize
	if dims := inputs[0].Dimensions; len(dims) == 4 {
		if dims[2] > 0 {
			height = int(dims[2])
		}
		if dims[3] > 0 {
			width = int(dims[3])
		}
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer options.Destroy()
	if err := options.SetIntraOpNumThreads(4); err != nil {
		return nil, fmt.Errorf("set intra-op threads: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, options)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &ONNXSession{
		session:    session,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
		width:      width,
		height:     height,
	}, nil
}

// InputSize returns the model input dimensions
func (s *ONNXSession) InputSize() (int, int) {
	return s.width, s.height
}

// Run performs one inference call
func (s *ONNXSession) Run(ctx context.Context, blob *Blob) (Tensor, error) {
	if err := ctx.Err(); err != nil {
		return Tensor{}, err
	}

	input, err := ort.NewTensor(ort.NewShape(blob.Shape()...), blob.Data)
	if err != nil {
		return Tensor{}, fmt.Errorf("create input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return Tensor{}, fmt.Errorf("run %s: %w", s.outputName, err)
	}
	defer outputs[0].Destroy()

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return Tensor{}, fmt.Errorf("%w: output %s is not a float32 tensor", ErrMalformedOutput, s.outputName)
	}

	// Copy out of runtime-owned memory before the tensor is destroyed
	data := append([]float32(nil), out.GetData()...)
	shape := append([]int64(nil), out.GetShape()...)
	return Tensor{Shape: shape, Data: data}, nil
}

// Close destroys the underlying session
func (s *ONNXSession) Close() error {
	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	return err
}
