package embedding

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// RandomEmbedder generates vectors with components uniform in [0, 1).
// The generator is owned by the embedder, so a fixed seed gives a reproducible sequence.
type RandomEmbedder struct {
	dimensions int
	seed       int64
	rng        *rand.Rand
	mu         sync.Mutex
}

// NewRandomEmbedder returns a random embedder. A zero seed picks one from the clock.
func NewRandomEmbedder(dimensions int, seed int64) *RandomEmbedder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomEmbedder{
		dimensions: dimensions,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed actually in use.
func (e *RandomEmbedder) Seed() int64 {
	return e.seed
}

// Vector returns the next random vector.
func (e *RandomEmbedder) Vector() []float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := make([]float32, e.dimensions)
	for i := range v {
		v[i] = e.rng.Float32()
	}
	return v
}

// Embed ignores text and returns the next random vector.
func (e *RandomEmbedder) Embed(ctx context.Context, _ string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.Vector(), nil
}

// EmbedBatch returns one random vector per text.
func (e *RandomEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, e, texts)
}

// Dimensions returns the embedding dimension.
func (e *RandomEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op.
func (e *RandomEmbedder) Close() error {
	return nil
}
