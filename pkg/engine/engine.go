// Package engine wires the configured embedder and vector store into the
// components CLI commands and the API server run against.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/config"
	"github.com/coachlens/coachlens/pkg/embeddings"
	"github.com/coachlens/coachlens/pkg/embeddings/ollama"
	"github.com/coachlens/coachlens/pkg/search"
	"github.com/coachlens/coachlens/pkg/vector/facade"
	"github.com/coachlens/coachlens/pkg/vector/localstore"
	"github.com/coachlens/coachlens/pkg/vector/qdrant"
)

// Engine bundles the vector store, embedder, and searcher built from config.
type Engine struct {
	Store    *facade.Store
	Embedder *embeddings.Fallback
	Searcher *search.Searcher
}

// New builds an Engine from the given config. An unreachable remote
// backend degrades to the local JSON store, and embedding failures
// degrade to zero vectors at query time.
func New(cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	store := facade.New(facade.Config{
		UseRemote: cfg.VectorStore.Provider == qdrant.Backend,
		Qdrant: qdrant.Config{
			Addr:         cfg.VectorStore.Target,
			Collection:   cfg.VectorStore.Collection,
			Dimension:    cfg.Embedding.Dimensions,
			BatchSize:    cfg.VectorStore.BatchSize,
			TextLimit:    cfg.VectorStore.TextLimit,
			MindsetLimit: cfg.VectorStore.MindsetLimit,
			SummaryLimit: cfg.VectorStore.SummaryLimit,
		},
		Local: localstore.Config{
			Path: cfg.Storage.EmbeddingsPath,
		},
	}, logger)

	embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{
		BaseURL: cfg.Embedding.Target,
		Model:   cfg.Embedding.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	fallback := embeddings.NewFallback(embedder, cfg.Embedding.Dimensions, logger)

	return &Engine{
		Store:    store,
		Embedder: fallback,
		Searcher: search.NewSearcher(fallback, store, logger),
	}, nil
}

// Close releases the engine's backend resources.
func (e *Engine) Close() error {
	if err := e.Embedder.Close(); err != nil {
		return err
	}
	return e.Store.Close()
}
