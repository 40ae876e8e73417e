package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
)

const (
	// EmbeddingDim is the output dimension of the retrieval model (BGE-small)
	EmbeddingDim = 384
	// EmbedMaxLength bounds tokenized prompt length; shell requests are short
	EmbedMaxLength = 128
)

// Embedder produces vectors for matching a prompt against the example library.
// With the onnx build tag and a downloaded model it runs a real sentence
// encoder; otherwise it falls back to deterministic pseudo-embeddings, which
// keep retrieval functional (if crude) without native dependencies.
type Embedder struct {
	modelPath     string
	tokenizerPath string
	tokenizer     *BertTokenizer
	backend       EmbedderBackend
	initialized   bool
}

// EmbedderBackend runs model inference on tokenized input
type EmbedderBackend interface {
	EmbedBatch(ctx context.Context, inputIDs, attentionMask []int64, batchSize, seqLen, dim int) ([][]float32, error)
	Close() error
}

// DefaultModelDir returns where embedding model files are looked up
func DefaultModelDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cmdgen", "models")
}

// NewEmbedder creates an embedder reading model files from dir.
// An empty dir always yields the pseudo-embedding fallback.
func NewEmbedder(dir string) *Embedder {
	e := &Embedder{}
	if dir != "" {
		e.modelPath = filepath.Join(dir, "model.onnx")
		e.tokenizerPath = filepath.Join(dir, "tokenizer.json")
	}
	return e
}

// Embed generates an embedding for a single text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if !e.initialized {
		e.init()
	}

	if e.tokenizer != nil && e.backend != nil {
		ids, mask := e.tokenizer.Encode(text)
		vecs, err := e.backend.EmbedBatch(ctx, ids, mask, 1, EmbedMaxLength, EmbeddingDim)
		if err == nil && len(vecs) == 1 {
			return vecs[0], nil
		}
		// Backend failure degrades to the fallback rather than aborting retrieval
	}

	return pseudoEmbedding(text, EmbeddingDim), nil
}

// Close releases backend resources
func (e *Embedder) Close() error {
	if e.backend != nil {
		return e.backend.Close()
	}
	return nil
}

func (e *Embedder) init() {
	e.initialized = true

	if e.tokenizerPath != "" {
		if tok, err := NewBertTokenizer(e.tokenizerPath, EmbedMaxLength); err == nil {
			e.tokenizer = tok
		}
	}
	if e.modelPath != "" {
		if backend, err := newONNXBackend(e.modelPath); err == nil {
			e.backend = backend
		}
	}
}

// pseudoEmbedding creates a deterministic hash-based vector. Not semantic,
// but stable: identical prompts always land on the same examples.
func pseudoEmbedding(text string, dim int) []float32 {
	embedding := make([]float32, dim)

	hash := uint64(0)
	for i, c := range text {
		hash = hash*31 + uint64(c) + uint64(i&0x7FFFFFFF) //nolint:gosec // overflow is intentional for hash
	}

	for i := 0; i < dim; i++ {
		hash = hash*1103515245 + 12345
		embedding[i] = float32(hash%1000)/500.0 - 1.0
	}

	return normalizeL2(embedding)
}

// normalizeL2 normalizes a vector to unit length in place
func normalizeL2(v []float32) []float32 {
	var norm float32
	for _, x := range v {
		norm += x * x
	}
	norm = float32(math.Sqrt(float64(norm)))

	if norm > 0 {
		for i := range v {
			v[i] /= norm
		}
	}
	return v
}

// cosineSimilarity computes the cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// IsONNXAvailable reports whether the native runtime is compiled in
func IsONNXAvailable() bool {
	return isONNXAvailable()
}
