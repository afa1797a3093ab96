// Package vector provides the in-memory embedding store and cosine similarity search.
package vector

import "github.com/google/uuid"

// Index defines embedding storage and top-k similarity search.
type Index interface {
	Insert(id uuid.UUID, embedding []float32) error
	QueryTopK(query []float32, k int) ([]Result, error)
	Len() int
}

// Result is a single ranked hit: the stored identifier and its cosine similarity to the query.
type Result struct {
	ID    uuid.UUID `json:"id"`
	Score float32   `json:"score"`
}

var _ Index = (*Store)(nil)
