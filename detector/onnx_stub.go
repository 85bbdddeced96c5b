//go:build !onnx

package detector

// ONNXAvailable reports whether ONNX support is compiled in
func ONNXAvailable() bool {
	return false
}

// OpenONNX returns ErrONNXNotEnabled when built without the onnx tag
func OpenONNX(path, libraryPath string, defaultSize int) (Session, error) {
	return nil, ErrONNXNotEnabled
}
