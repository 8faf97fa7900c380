package embeddings

import (
	"context"

	"go.uber.org/zap"
)

// Fallback decorates an Embedder with a deterministic degraded mode: when
// the provider is unreachable it yields an all-zero vector of the expected
// dimension instead of failing the request. A zero query vector produces
// low, uniform similarity scores rather than an error.
//
// The fallback is an explicit, logged state transition and EmbedOrZero
// returns it as a status flag, so callers can tell degraded mode apart from
// a real miss.
type Fallback struct {
	inner     Embedder
	dimension int
	logger    *zap.Logger
}

// NewFallback wraps an embedder. dimension is the provider's known output
// size, used to shape the zero vector.
func NewFallback(inner Embedder, dimension int, logger *zap.Logger) *Fallback {
	return &Fallback{
		inner:     inner,
		dimension: dimension,
		logger:    logger,
	}
}

// EmbedOrZero embeds text, degrading to a zero vector on provider failure.
// The second return value reports whether the degraded path was taken.
func (f *Fallback) EmbedOrZero(ctx context.Context, text string) ([]float32, bool) {
	vec, err := f.inner.Embed(ctx, text)
	if err != nil {
		f.logger.Warn("embedding provider unavailable, using zero-vector fallback",
			zap.Int("dimension", f.dimension),
			zap.Error(err),
		)
		return make([]float32, f.dimension), true
	}
	return vec, false
}

// Embed implements Embedder. It never returns an error; failures take the
// zero-vector path.
func (f *Fallback) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, _ := f.EmbedOrZero(ctx, text)
	return vec, nil
}

// Close releases the wrapped embedder's resources.
func (f *Fallback) Close() error {
	return f.inner.Close()
}

var _ Embedder = (*Fallback)(nil)
