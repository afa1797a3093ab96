package config

// DefaultPhrase is the demo input when none is configured: one embedding per word.
const DefaultPhrase = "Ceci est un exemple de phrase"

// DefaultCacheSize bounds the embedding cache. A negative cache_size disables it.
const DefaultCacheSize = 1024

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Embedding.Kind == "" {
		cfg.Embedding.Kind = "random"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 768
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = DefaultCacheSize
	}
	if cfg.Store.Dimensions == 0 {
		cfg.Store.Dimensions = cfg.Embedding.Dimensions
	}
	if cfg.Demo.Phrase == "" {
		cfg.Demo.Phrase = DefaultPhrase
	}
	if cfg.Demo.TopK == 0 {
		cfg.Demo.TopK = 3
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "vecmem"
	}
}
