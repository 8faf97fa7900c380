// Package facade selects and wraps a vector backend behind a single entry
// point. Callers are backend-agnostic; Stats().Backend is the only supported
// way to tell the active backend apart at runtime.
package facade

import (
	"context"

	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/vector"
	"github.com/coachlens/coachlens/pkg/vector/localstore"
	"github.com/coachlens/coachlens/pkg/vector/qdrant"
)

// Config holds the backend-selection inputs.
type Config struct {
	// UseRemote requests the Qdrant backend. The remote backend is only
	// attempted when this is set and a Qdrant address is configured.
	UseRemote bool

	Qdrant qdrant.Config
	Local  localstore.Config
}

// Store wraps the selected backend. Construction never fails: any remote
// initialization error falls back to the local backend transparently.
type Store struct {
	backend vector.Store
	name    string
	logger  *zap.Logger
}

// New selects a backend. The Qdrant backend is attempted only when remote
// usage was requested and an address is configured; otherwise, or when the
// remote constructor fails for any reason, the local file-backed store is
// used. The fallback is an explicit, logged state transition.
func New(c Config, logger *zap.Logger) *Store {
	if c.UseRemote && c.Qdrant.Addr != "" {
		remote, err := qdrant.New(c.Qdrant, logger)
		if err == nil {
			return &Store{backend: remote, name: qdrant.Backend, logger: logger}
		}
		logger.Warn("qdrant initialization failed, falling back to local storage",
			zap.Error(err),
		)
	}

	local := localstore.New(c.Local, logger)
	logger.Info("using local storage for embeddings", zap.String("path", c.Local.Path))
	return &Store{backend: local, name: localstore.Backend, logger: logger}
}

// ActiveBackend returns the selected backend name, for logs and CLI output.
func (s *Store) ActiveBackend() string {
	return s.name
}

// Upsert delegates to the active backend.
func (s *Store) Upsert(ctx context.Context, records []vector.Record) error {
	return s.backend.Upsert(ctx, records)
}

// Search delegates to the active backend. A per-call backend failure is
// caught here and converted into an empty result with a warning; it never
// propagates as a fault to callers.
func (s *Store) Search(ctx context.Context, embedding []float32, topK int, filter vector.Filter) ([]vector.Result, error) {
	results, err := s.backend.Search(ctx, embedding, topK, filter)
	if err != nil {
		s.logger.Warn("vector search failed, returning empty results",
			zap.String("backend", s.name),
			zap.Error(err),
		)
		return []vector.Result{}, nil
	}
	return results, nil
}

// Delete delegates to the active backend.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, id)
}

// Stats delegates to the active backend. The returned Backend field
// identifies the active implementation.
func (s *Store) Stats(ctx context.Context) (vector.Stats, error) {
	return s.backend.Stats(ctx)
}

// Close releases backend resources.
func (s *Store) Close() error {
	return s.backend.Close()
}

var _ vector.Store = (*Store)(nil)
