//go:build cgo && onnx

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// onnxBackend wraps the ONNX runtime for sentence-embedding inference
type onnxBackend struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
}

var onnxInitOnce sync.Once
var onnxInitErr error

func newONNXBackend(modelPath string) (EmbedderBackend, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	onnxInitOnce.Do(func() {
		if !findONNXLibrary() {
			onnxInitErr = fmt.Errorf("ONNX runtime library not found")
			return
		}
		onnxInitErr = ort.InitializeEnvironment()
	})
	if onnxInitErr != nil {
		return nil, onnxInitErr
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	threads := runtime.NumCPU()
	if threads > 2 {
		threads = 2 // prompts are tiny, inference is never the bottleneck
	}
	if err := options.SetIntraOpNumThreads(threads); err != nil {
		return nil, fmt.Errorf("set thread count: %w", err)
	}

	outputNames := []string{"sentence_embedding"}
	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		outputNames,
		options,
	)
	if err != nil {
		// Some exports omit token_type_ids
		session, err = ort.NewDynamicAdvancedSession(
			modelPath,
			[]string{"input_ids", "attention_mask"},
			outputNames,
			options,
		)
		if err != nil {
			return nil, fmt.Errorf("create ONNX session: %w", err)
		}
	}

	return &onnxBackend{session: session}, nil
}

// EmbedBatch runs inference on tokenized inputs
func (b *onnxBackend) EmbedBatch(ctx context.Context, inputIDs, attentionMask []int64, batchSize, seqLen, dim int) ([][]float32, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	shape := ort.Shape{int64(batchSize), int64(seqLen)}

	inputIDsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("create input_ids tensor: %w", err)
	}
	defer func() { _ = inputIDsTensor.Destroy() }()

	attentionTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("create attention_mask tensor: %w", err)
	}
	defer func() { _ = attentionTensor.Destroy() }()

	tokenTypeTensor, err := ort.NewTensor(shape, make([]int64, batchSize*seqLen))
	if err != nil {
		return nil, fmt.Errorf("create token_type_ids tensor: %w", err)
	}
	defer func() { _ = tokenTypeTensor.Destroy() }()

	outputData := make([]float32, batchSize*dim)
	outputTensor, err := ort.NewTensor(ort.Shape{int64(batchSize), int64(dim)}, outputData)
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer func() { _ = outputTensor.Destroy() }()

	err = b.session.Run(
		[]ort.Value{inputIDsTensor, attentionTensor, tokenTypeTensor},
		[]ort.Value{outputTensor},
	)
	if err != nil {
		// Retry without token_type_ids for two-input exports
		err = b.session.Run(
			[]ort.Value{inputIDsTensor, attentionTensor},
			[]ort.Value{outputTensor},
		)
		if err != nil {
			return nil, fmt.Errorf("run inference: %w", err)
		}
	}

	result := make([][]float32, batchSize)
	for i := 0; i < batchSize; i++ {
		embedding := make([]float32, dim)
		copy(embedding, outputData[i*dim:(i+1)*dim])
		result[i] = normalizeL2(embedding)
	}
	return result, nil
}

// Close releases ONNX resources
func (b *onnxBackend) Close() error {
	if b.session != nil {
		_ = b.session.Destroy()
		b.session = nil
	}
	return nil
}

func isONNXAvailable() bool {
	return findONNXLibrary()
}

// findONNXLibrary searches for and configures the ONNX runtime library
func findONNXLibrary() bool {
	libName := onnxLibraryName()
	for _, dir := range onnxSearchPaths() {
		libPath := filepath.Join(dir, libName)
		if _, err := os.Stat(libPath); err == nil {
			ort.SetSharedLibraryPath(libPath)
			return true
		}
	}
	return false
}

func onnxLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "libonnxruntime.so"
	}
}

func onnxSearchPaths() []string {
	var paths []string

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".cmdgen", "lib"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd, filepath.Join(cwd, "lib"))
	}

	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			"/opt/homebrew/lib",
			"/opt/homebrew/opt/onnxruntime/lib",
			"/usr/local/lib",
		)
	case "windows":
		paths = append(paths,
			`C:\Program Files\onnxruntime\lib`,
			`C:\onnxruntime\lib`,
		)
	default:
		paths = append(paths,
			"/usr/lib",
			"/usr/local/lib",
			"/usr/lib/x86_64-linux-gnu",
		)
	}
	return paths
}
