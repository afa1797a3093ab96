// Package ident provides identifier generators for store entries.
// The store never creates identifiers itself; callers pick one of these.
package ident

import (
	"io"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// Namespace is the UUID namespace for name-derived identifiers.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/hyperjump/vecmem"))

// Generator produces identifiers that are unique across one store's lifetime.
type Generator interface {
	NewID() (uuid.UUID, error)
}

// RandomGenerator produces version 4 UUIDs.
type RandomGenerator struct {
	source io.Reader // nil means crypto/rand
	mu     sync.Mutex
}

// NewRandomGenerator returns a generator backed by crypto/rand.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewSeededGenerator returns a generator whose sequence is fixed by seed, for reproducible runs.
// Not suitable where identifiers must be unpredictable.
func NewSeededGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{source: rand.New(rand.NewSource(seed))}
}

// NewID returns the next identifier.
func (g *RandomGenerator) NewID() (uuid.UUID, error) {
	if g.source == nil {
		return uuid.NewRandom()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return uuid.NewRandomFromReader(g.source)
}

// FromName returns a stable version 5 UUID for name. Same name always yields the same ID.
func FromName(name string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(name))
}
