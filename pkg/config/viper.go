package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/coachlens/coachlens/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the COACHLENS_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound by the commands that register them)
//  2. Environment variables (COACHLENS_API_LISTEN, COACHLENS_VECTOR_STORE_PROVIDER, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: COACHLENS_API_LISTEN, COACHLENS_EMBEDDING_MODEL, etc.
	v.SetEnvPrefix("COACHLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Storage
	v.SetDefault("storage.transcripts_path", d.Storage.TranscriptsPath)
	v.SetDefault("storage.insights_path", d.Storage.InsightsPath)
	v.SetDefault("storage.embeddings_path", d.Storage.EmbeddingsPath)

	// Vector store
	v.SetDefault("vector_store.provider", d.VectorStore.Provider)
	v.SetDefault("vector_store.target", d.VectorStore.Target)
	v.SetDefault("vector_store.collection", d.VectorStore.Collection)
	v.SetDefault("vector_store.batch_size", d.VectorStore.BatchSize)
	v.SetDefault("vector_store.text_limit", d.VectorStore.TextLimit)
	v.SetDefault("vector_store.mindset_limit", d.VectorStore.MindsetLimit)
	v.SetDefault("vector_store.summary_limit", d.VectorStore.SummaryLimit)

	// Embedding
	v.SetDefault("embedding.provider", d.Embedding.Provider)
	v.SetDefault("embedding.target", d.Embedding.Target)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.dimensions", d.Embedding.Dimensions)

	// Extraction
	v.SetDefault("extraction.provider", d.Extraction.Provider)
	v.SetDefault("extraction.target", d.Extraction.Target)
	v.SetDefault("extraction.model", d.Extraction.Model)

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Client
	v.SetDefault("client.api_target", d.Client.APITarget)

	// Search
	v.SetDefault("search.top_k", d.Search.TopK)
}
