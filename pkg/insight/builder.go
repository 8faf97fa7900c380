package insight

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/embeddings"
	"github.com/coachlens/coachlens/pkg/vector"
)

// Builder turns insights into embedding records.
type Builder struct {
	embedder *embeddings.Fallback
	logger   *zap.Logger
}

// NewBuilder creates a Builder over a fallback-wrapped embedder.
func NewBuilder(embedder *embeddings.Fallback, logger *zap.Logger) *Builder {
	return &Builder{
		embedder: embedder,
		logger:   logger,
	}
}

// BuildRecords embeds each insight's searchable text and assembles the
// embedding records. A per-insight provider failure takes the zero-vector
// path rather than aborting the batch; the second return value counts how
// many records were embedded in degraded mode.
func (b *Builder) BuildRecords(ctx context.Context, insights []Insight) ([]vector.Record, int) {
	records := make([]vector.Record, 0, len(insights))
	degraded := 0

	for _, ins := range insights {
		text := ins.SearchableText()
		embedding, wasDegraded := b.embedder.EmbedOrZero(ctx, text)
		if wasDegraded {
			degraded++
		}

		id := ins.ID
		if id == "" {
			id = uuid.NewString()
		}

		records = append(records, vector.Record{
			ID:             id,
			Participant:    ins.Participant,
			SearchableText: text,
			Embedding:      embedding,
			Metadata: vector.Metadata{
				PrimaryGoal:    ins.PrimaryGoal,
				MainBlocker:    ins.MainBlocker,
				BusinessFocus:  ins.BusinessFocus,
				MindsetPattern: ins.MindsetPattern,
				UrgencyLevel:   int(ins.UrgencyLevel),
			},
		})
	}

	if degraded > 0 {
		b.logger.Warn("some records were embedded in degraded mode",
			zap.Int("degraded", degraded),
			zap.Int("total", len(records)),
		)
	}

	return records, degraded
}
