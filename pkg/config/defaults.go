package config

const (
	defaultTranscriptsPath = "data/sample_transcripts.json"
	defaultInsightsPath    = "data/extracted_insights.json"
	defaultEmbeddingsPath  = "data/embeddings.json"

	defaultVectorProvider = "local"
	defaultCollection     = "coachlens-insights"
	defaultBatchSize      = 100
	defaultTextLimit      = 500
	defaultMindsetLimit   = 300
	defaultSummaryLimit   = 1000

	defaultProvider            = "ollama"
	defaultUpstream            = "http://localhost:11434"
	defaultEmbeddingModel      = "nomic-embed-text"
	defaultEmbeddingDimensions = 768
	defaultExtractionModel     = "llama3.2"

	defaultAPIListen       = ":8081"
	defaultClientAPITarget = "http://localhost:8081"

	defaultSearchTopK = 5
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			TranscriptsPath: defaultTranscriptsPath,
			InsightsPath:    defaultInsightsPath,
			EmbeddingsPath:  defaultEmbeddingsPath,
		},
		VectorStore: VectorStoreConfig{
			Provider:     defaultVectorProvider,
			Collection:   defaultCollection,
			BatchSize:    defaultBatchSize,
			TextLimit:    defaultTextLimit,
			MindsetLimit: defaultMindsetLimit,
			SummaryLimit: defaultSummaryLimit,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultProvider,
			Target:     defaultUpstream,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		Extraction: ExtractionConfig{
			Provider: defaultProvider,
			Target:   defaultUpstream,
			Model:    defaultExtractionModel,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		Search: SearchConfig{
			TopK: defaultSearchTopK,
		},
	}
}
