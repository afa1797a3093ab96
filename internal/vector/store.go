package vector

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store is an in-memory embedding store keyed by UUID, searched by brute-force cosine similarity.
// All embeddings in one store share a single dimension. Safe for concurrent use.
type Store struct {
	dimensions int
	vectors    map[uuid.UUID][]float32
	logger     *zap.Logger
	metrics    MetricsCollector
	mu         sync.RWMutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a logger for debug output (dimension adoption, overwrites).
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the collector notified after every insert and query.
func WithMetrics(m MetricsCollector) StoreOption {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewStore creates an empty store. A positive dimensions value fixes the embedding size up front;
// zero lets the first inserted embedding decide it.
func NewStore(dimensions int, opts ...StoreOption) (*Store, error) {
	if dimensions < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimensions, dimensions)
	}
	s := &Store{
		dimensions: dimensions,
		vectors:    make(map[uuid.UUID][]float32),
		logger:     zap.NewNop(),
		metrics:    NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Insert stores a copy of embedding under id. An existing entry for id is overwritten.
func (s *Store) Insert(id uuid.UUID, embedding []float32) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordInsert(time.Since(start), err) }()

	if len(embedding) == 0 {
		return fmt.Errorf("insert %s: %w", id, ErrEmptyEmbedding)
	}
	vec := make([]float32, len(embedding))
	copy(vec, embedding)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimensions == 0 {
		s.dimensions = len(vec)
		s.logger.Debug("store dimension set from first insert", zap.Int("dimensions", s.dimensions))
	}
	if len(vec) != s.dimensions {
		return fmt.Errorf("insert %s: %w: got %d, expected %d", id, ErrDimensionMismatch, len(vec), s.dimensions)
	}
	if _, exists := s.vectors[id]; exists {
		s.logger.Debug("overwriting embedding", zap.String("id", id.String()))
	}
	s.vectors[id] = vec
	return nil
}

// QueryTopK scores every stored embedding against query and returns the k best by descending
// cosine similarity. Fewer than k results are returned when the store holds fewer entries.
// An empty store or k == 0 yields an empty, non-nil slice.
func (s *Store) QueryTopK(query []float32, k int) (results []Result, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordQuery(k, len(results), time.Since(start), err) }()

	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.vectors) == 0 {
		return []Result{}, nil
	}
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("query %w: got %d, expected %d", ErrDimensionMismatch, len(query), s.dimensions)
	}
	if k == 0 {
		return []Result{}, nil
	}

	scored := make([]Result, 0, len(s.vectors))
	for id, vec := range s.vectors {
		scored = append(scored, Result{ID: id, Score: cosine(query, vec)})
	}
	sortByScore(scored)

	n := k
	if n > len(scored) {
		n = len(scored)
	}
	results = make([]Result, n)
	copy(results, scored[:n])
	return results, nil
}

// QueryBatch runs QueryTopK for each query concurrently. results[i] answers queries[i].
// The first failing query or a cancelled ctx aborts the batch.
func (s *Store) QueryBatch(ctx context.Context, queries [][]float32, k int) ([][]Result, error) {
	results := make([][]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.QueryTopK(q, k)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Get returns a copy of the embedding stored under id.
func (s *Store) Get(id uuid.UUID) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vec, ok := s.vectors[id]
	if !ok {
		return nil, false
	}
	out := make([]float32, len(vec))
	copy(out, vec)
	return out, true
}

// Len returns the number of stored embeddings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Dimension returns the embedding dimension, or 0 if it has not been set yet.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimensions
}

// sortByScore orders results by descending score.
// NaN scores compare equal to each other and rank below every number, so malformed
// input still sorts without error and never displaces a real score.
func sortByScore(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return compareScores(results[i].Score, results[j].Score) < 0
	})
}

// compareScores returns -1 when a ranks before b, 1 when after, 0 when tied.
func compareScores(a, b float32) int {
	aNaN, bNaN := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
