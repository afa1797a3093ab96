package embedding

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/hyperjump/vecmem/pkg/utils"
)

// HashEmbedder is a deterministic embedder: the same text always yields the same unit vector.
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder returns an embedder producing deterministic vectors of the given dimension.
func NewHashEmbedder(dimensions int) *HashEmbedder {
	return &HashEmbedder{dimensions: dimensions}
}

// Embed derives a vector from the FNV-1a hash of text, components in [-1, 1), L2-normalised.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(int64(hashText(text))))
	emb := make([]float32, e.dimensions)
	for i := range emb {
		emb[i] = rng.Float32()*2 - 1
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each text.
func (e *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, e, texts)
}

// Dimensions returns the embedding dimension.
func (e *HashEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op.
func (e *HashEmbedder) Close() error {
	return nil
}

func hashText(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
