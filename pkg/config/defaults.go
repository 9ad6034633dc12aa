package config

const (
	defaultListen = ":8080"

	defaultOllamaTarget = "http://localhost:11434"

	defaultEmbeddingModel      = "bge-m3"
	defaultEmbeddingDimensions = 1024

	defaultVectorProvider   = "memory"
	defaultVectorCollection = "faq_rag"

	defaultGenerationModel       = "gemma3:4b"
	defaultGenerationTemperature = 0.1

	defaultCacheAddr       = "localhost:6379"
	defaultCacheTTLSeconds = 3600

	defaultKnowledgePath = "data/faq.md"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: defaultListen,
		},
		Embedding: EmbeddingConfig{
			Provider:   "ollama",
			Target:     defaultOllamaTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		VectorStore: VectorStoreConfig{
			Provider:   defaultVectorProvider,
			Collection: defaultVectorCollection,
		},
		Generation: GenerationConfig{
			Target:      defaultOllamaTarget,
			Model:       defaultGenerationModel,
			Temperature: defaultGenerationTemperature,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Addr:       defaultCacheAddr,
			TTLSeconds: defaultCacheTTLSeconds,
		},
		Knowledge: KnowledgeConfig{
			Path: defaultKnowledgePath,
		},
	}
}
