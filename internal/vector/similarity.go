package vector

import (
	"fmt"
	"math"
)

// InnerProduct returns the dot product of a and b accumulated in float64.
// It assumes equal lengths; extra elements of the longer slice are ignored.
func InnerProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// L2Norm returns the Euclidean norm of x.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns dot(a, b) / (|a| * |b|).
// When either vector has zero magnitude the result is exactly 0 rather than NaN or Inf.
// Vectors of different lengths are rejected with ErrDimensionMismatch.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	return cosine(a, b), nil
}

// cosine is CosineSimilarity without the length check; callers guarantee len(a) == len(b).
func cosine(a, b []float32) float32 {
	normA := L2Norm(a)
	normB := L2Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(InnerProduct(a, b) / (normA * normB))
}
