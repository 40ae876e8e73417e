//go:build !cgo || !onnx

package main

import (
	"fmt"
)

// Stub implementations when the ONNX runtime is not compiled in

func newONNXBackend(_ string) (EmbedderBackend, error) {
	return nil, fmt.Errorf("ONNX runtime not available (build without CGO or onnx tag)")
}

func isONNXAvailable() bool {
	return false
}
