package vector

import "errors"

// Errors returned by the store and the similarity metric. Callers match them with errors.Is.
var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmptyEmbedding    = errors.New("empty embedding")
	ErrInvalidK          = errors.New("k must not be negative")
	ErrInvalidDimensions = errors.New("dimensions must not be negative")
)
