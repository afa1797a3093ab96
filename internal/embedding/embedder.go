// Package embedding provides embedding producers for feeding the vector store.
// Embeddings are opaque to the store; these producers only generate fixed-dimension vectors.
package embedding

import (
	"context"
	"fmt"
)

// Embedder produces fixed-dimension vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// Kind names an Embedder implementation.
type Kind string

const (
	// KindRandom produces uniform random vectors in [0, 1) from a seeded generator; text is ignored.
	KindRandom Kind = "random"
	// KindHash produces a deterministic unit vector per distinct text.
	KindHash Kind = "hash"
)

// NewEmbedder creates an embedder of the given kind. seed only affects KindRandom (0 means
// time-seeded). A positive cacheSize wraps the embedder in an LRU cache keyed by text.
func NewEmbedder(kind string, dimensions int, seed int64, cacheSize int) (Embedder, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	var e Embedder
	switch Kind(kind) {
	case KindRandom, "":
		e = NewRandomEmbedder(dimensions, seed)
	case KindHash:
		e = NewHashEmbedder(dimensions)
	default:
		return nil, fmt.Errorf("unknown embedder kind: %s (supported: random, hash)", kind)
	}
	if cacheSize > 0 {
		e = NewCachedEmbedder(e, cacheSize)
	}
	return e, nil
}

// embedEach calls embed for each text in order.
func embedEach(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}
