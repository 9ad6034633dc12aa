// Package config holds the ragd configuration, layered from defaults, an
// optional config.toml, environment variables, and CLI flags.
package config

// Config represents the full ragd configuration. The TOML layout uses
// sections for logical grouping.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Generation  GenerationConfig  `toml:"generation"`
	Cache       CacheConfig       `toml:"cache"`
	Knowledge   KnowledgeConfig   `toml:"knowledge"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// VectorStoreConfig holds vector store settings.
type VectorStoreConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Collection string `toml:"collection,omitempty"`
}

// GenerationConfig holds chat model settings.
type GenerationConfig struct {
	Target      string  `toml:"target,omitempty"`
	Model       string  `toml:"model,omitempty"`
	Temperature float64 `toml:"temperature,omitempty"`
}

// CacheConfig holds answer cache settings.
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr,omitempty"`
	TTLSeconds int    `toml:"ttl_seconds,omitempty"`
}

// KnowledgeConfig holds knowledge base ingestion settings.
type KnowledgeConfig struct {
	Path string `toml:"path,omitempty"`
}
