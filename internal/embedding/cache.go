package embedding

import (
	"container/list"
	"context"
	"sync"
)

// CachedEmbedder wraps an Embedder with an LRU cache keyed by text, so repeated
// texts map to one vector even when the inner embedder is random.
type CachedEmbedder struct {
	inner    Embedder
	capacity int
	entries  map[string]*list.Element
	lru      *list.List
	hits     int
	misses   int
	mu       sync.Mutex
}

type cacheEntry struct {
	key   string
	value []float32
}

// NewCachedEmbedder caches up to capacity embeddings produced by inner.
func NewCachedEmbedder(inner Embedder, capacity int) *CachedEmbedder {
	if capacity <= 0 {
		capacity = 1
	}
	return &CachedEmbedder{
		inner:    inner,
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Embed returns the cached vector for text or computes and caches it.
// Callers receive their own copy.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.get(text); ok {
		return v, nil
	}
	v, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.set(text, v)
	return clone(v), nil
}

// EmbedBatch calls Embed for each text.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, c, texts)
}

// Dimensions returns the inner embedder's dimension.
func (c *CachedEmbedder) Dimensions() int {
	return c.inner.Dimensions()
}

// Close closes the inner embedder.
func (c *CachedEmbedder) Close() error {
	return c.inner.Close()
}

// Stats returns cache hits and misses so far.
func (c *CachedEmbedder) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *CachedEmbedder) get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.hits++
		c.lru.MoveToFront(elem)
		return clone(elem.Value.(*cacheEntry).value), true
	}
	c.misses++
	return nil, false
}

func (c *CachedEmbedder) set(key string, value []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = clone(value)
		return
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, value: clone(value)})

	if c.lru.Len() > c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
}

func clone(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
