// Package main is the vecmem CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/vecmem/internal/cli"
	"github.com/hyperjump/vecmem/internal/config"
	"github.com/hyperjump/vecmem/internal/embedding"
	"github.com/hyperjump/vecmem/internal/ident"
	"github.com/hyperjump/vecmem/internal/metrics"
	"github.com/hyperjump/vecmem/internal/vector"
	"github.com/hyperjump/vecmem/pkg/utils"
)

var version = "dev"

const randomQueryLabel = "random query"

// demoFlags holds raw flag values; only flags the user set override the config.
type demoFlags struct {
	configPath string
	debug      bool
	dimensions int
	seed       int64
	phrase     string
	topK       int
	queries    []string
	embedder   string
	cacheSize  int
	output     string
	metrics    bool
	stableIDs  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &demoFlags{}
	run := func(cmd *cobra.Command, _ []string) error {
		return runDemo(cmd, flags)
	}

	root := &cobra.Command{
		Use:   "vecmem",
		Short: "In-memory cosine similarity vector store",
		Long: `vecmem stores fixed-dimension embeddings keyed by UUID and returns the k most
similar entries to a query vector under cosine similarity.

Without a subcommand it runs the demo: one embedding per word of a phrase is
inserted, then each query (or one random vector) is ranked against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          run,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file path (YAML); defaults apply when empty")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.IntVar(&flags.dimensions, "dimensions", 0, "embedding dimension (default 768)")
	pf.Int64Var(&flags.seed, "seed", 0, "seed for embeddings and identifiers; 0 picks one from the clock")
	pf.StringVar(&flags.phrase, "phrase", "", "phrase whose words are inserted, one embedding each")
	pf.IntVarP(&flags.topK, "top-k", "k", 0, "number of results per query (default 3)")
	pf.StringArrayVarP(&flags.queries, "query", "q", nil, "query text; repeatable. A random vector is used when absent")
	pf.StringVar(&flags.embedder, "embedder", "", "embedding producer: random or hash (default random)")
	pf.IntVar(&flags.cacheSize, "cache-size", 0, "embedding cache entries; negative disables (default 1024)")
	pf.StringVarP(&flags.output, "output", "o", "", "output format: text, compact, or json (default text)")
	pf.BoolVar(&flags.metrics, "metrics", false, "print Prometheus metrics to stderr after the run")
	pf.BoolVar(&flags.stableIDs, "stable-ids", false, "derive identifiers from words so repeated words overwrite")

	root.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Insert the words of a phrase and rank them against queries",
		Args:  cobra.NoArgs,
		RunE:  run,
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vecmem version %s\n", version)
		},
	})
	return root
}

// resolveConfig loads the config file (or defaults) and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, f *demoFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("debug") {
		cfg.Debug = f.debug
	}
	if changed("dimensions") {
		cfg.Embedding.Dimensions = f.dimensions
		cfg.Store.Dimensions = f.dimensions
	}
	if changed("seed") {
		cfg.Embedding.Seed = f.seed
	}
	if changed("phrase") {
		cfg.Demo.Phrase = f.phrase
	}
	if changed("top-k") {
		cfg.Demo.TopK = f.topK
	}
	if changed("query") {
		cfg.Demo.Queries = f.queries
	}
	if changed("embedder") {
		cfg.Embedding.Kind = f.embedder
	}
	if changed("cache-size") {
		cfg.Embedding.CacheSize = f.cacheSize
	}
	if changed("output") {
		cfg.Output.Format = f.output
	}
	if changed("metrics") {
		cfg.Metrics.Enabled = f.metrics
	}
	if changed("stable-ids") {
		cfg.Demo.StableIDs = f.stableIDs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDemo(cmd *cobra.Command, f *demoFlags) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	labels, err := populate(ctx, components, utils.Words(cfg.Demo.Phrase), cfg.Demo.StableIDs)
	if err != nil {
		return err
	}
	logger.Debug("store populated",
		zap.Int("entries", components.Store.Len()),
		zap.Int("dimensions", components.Store.Dimension()),
	)

	reports, err := runQueries(ctx, components, cfg.Demo.Queries, cfg.Demo.TopK, cfg.Embedding.Seed, labels)
	if err != nil {
		return err
	}
	if err := cli.WriteReports(cmd.OutOrStdout(), reports, format); err != nil {
		return fmt.Errorf("output failed: %w", err)
	}
	if components.Metrics != nil {
		if err := components.Metrics.WriteText(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	return nil
}

// Components holds initialized services.
type Components struct {
	Store    *vector.Store
	Embedder embedding.Embedder
	IDs      ident.Generator
	Metrics  *metrics.Prometheus // nil when metrics are disabled
}

func (c *Components) Close() {
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	embedder, err := embedding.NewEmbedder(
		cfg.Embedding.Kind,
		cfg.Embedding.Dimensions,
		cfg.Embedding.Seed,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	storeOpts := []vector.StoreOption{vector.WithLogger(logger)}
	var prom *metrics.Prometheus
	if cfg.Metrics.Enabled {
		prom = metrics.NewPrometheus(cfg.Metrics.Namespace)
		storeOpts = append(storeOpts, vector.WithMetrics(prom))
	}
	store, err := vector.NewStore(cfg.Store.Dimensions, storeOpts...)
	if err != nil {
		_ = embedder.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	var ids ident.Generator = ident.NewRandomGenerator()
	if cfg.Embedding.Seed != 0 {
		ids = ident.NewSeededGenerator(cfg.Embedding.Seed)
	}

	logger.Info("vector store initialized",
		zap.Int("dimensions", cfg.Store.Dimensions),
		zap.String("embedder", cfg.Embedding.Kind),
		zap.Int64("seed", cfg.Embedding.Seed),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)
	return &Components{Store: store, Embedder: embedder, IDs: ids, Metrics: prom}, nil
}

// populate inserts one embedding per word and returns the word behind each identifier.
func populate(ctx context.Context, c *Components, words []string, stableIDs bool) (map[uuid.UUID]string, error) {
	embeddings, err := c.Embedder.EmbedBatch(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	labels := make(map[uuid.UUID]string, len(words))
	for i, word := range words {
		var id uuid.UUID
		if stableIDs {
			id = ident.FromName(word)
		} else if id, err = c.IDs.NewID(); err != nil {
			return nil, fmt.Errorf("identifier generation failed: %w", err)
		}
		if err := c.Store.Insert(id, embeddings[i]); err != nil {
			return nil, fmt.Errorf("insert %q: %w", word, err)
		}
		labels[id] = word
	}
	return labels, nil
}

// runQueries embeds each query (or draws one random vector when there are none) and ranks the store.
// A non-zero seed also fixes the random query.
func runQueries(ctx context.Context, c *Components, queries []string, k int, seed int64, labels map[uuid.UUID]string) ([]*cli.QueryReport, error) {
	names := queries
	var vectors [][]float32
	if len(queries) == 0 {
		names = []string{randomQueryLabel}
		vectors = [][]float32{embedding.NewRandomEmbedder(c.Embedder.Dimensions(), querySeed(seed)).Vector()}
	} else {
		var err error
		if vectors, err = c.Embedder.EmbedBatch(ctx, queries); err != nil {
			return nil, fmt.Errorf("embedding failed: %w", err)
		}
	}

	results, err := c.Store.QueryBatch(ctx, vectors, k)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	size := c.Store.Len()
	reports := make([]*cli.QueryReport, len(results))
	for i, res := range results {
		reports[i] = cli.NewReport(names[i], k, size, res, labels)
	}
	return reports, nil
}

// querySeed derives the random query's seed from the run seed. Zero stays zero (clock
// seeded); any other seed maps to a different non-zero value.
func querySeed(seed int64) int64 {
	if seed == 0 {
		return 0
	}
	if q := ^seed; q != 0 {
		return q
	}
	return 1
}
