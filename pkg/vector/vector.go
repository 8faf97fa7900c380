// Package vector provides interfaces and implementations for embedding
// storage and similarity search over coaching-session insights.
package vector

import "context"

// Metadata holds the structured insight fields stored alongside each
// embedding. The field set is fixed; backends persist all of it and filters
// evaluate against it.
type Metadata struct {
	// PrimaryGoal is the participant's main business/personal goal.
	PrimaryGoal string `json:"primary_goal"`

	// MainBlocker is the primary obstacle preventing progress.
	MainBlocker string `json:"main_blocker"`

	// BusinessFocus is the industry or business type (e.g. "e-commerce").
	BusinessFocus string `json:"business_focus"`

	// MindsetPattern is the dominant psychological pattern or limiting belief.
	MindsetPattern string `json:"mindset_pattern"`

	// UrgencyLevel is a 1-5 scale of how urgent the situation feels.
	UrgencyLevel int `json:"urgency_level"`
}

// Record is one stored embedding per participant session.
//
// All records within a single store share the same embedding dimension; the
// first record's dimension is authoritative and later mismatches are dropped,
// never padded or truncated.
type Record struct {
	// ID is a unique, stable identifier for the record.
	ID string `json:"id"`

	// Participant is the display name of the session subject. Non-empty.
	Participant string `json:"participant"`

	// SearchableText is the free-form summary the embedding was computed
	// from. Also used for match-explanation heuristics.
	SearchableText string `json:"searchable_text"`

	// Embedding is the vector representation of SearchableText.
	Embedding []float32 `json:"embedding"`

	// Metadata holds the structured insight fields.
	Metadata Metadata `json:"metadata"`
}

// Result is a single search match. Results are ephemeral, recomputed per
// query, and never persisted.
type Result struct {
	ID             string   `json:"id"`
	Participant    string   `json:"participant"`
	Score          float32  `json:"similarity_score"`
	SearchableText string   `json:"searchable_text"`
	Metadata       Metadata `json:"metadata"`

	// Explanation is a human-readable account of why this matched. Filled
	// in by the search engine, not by backends. Purely descriptive: it
	// never affects Score or ranking.
	Explanation string `json:"explanation,omitempty"`
}

// Stats is a point-in-time snapshot of a store.
type Stats struct {
	// Backend identifies the active implementation ("local" or "qdrant").
	// This is the only supported way for callers to distinguish backends
	// at runtime.
	Backend string `json:"backend"`

	TotalVectors int `json:"total_vectors"`
	Dimension    int `json:"dimension"`
}

// Store handles storage and retrieval of embedding records. Implementations
// must behave identically for the operations below regardless of backend.
type Store interface {
	// Upsert adds or replaces records by ID. An update is a
	// delete-then-reinsert with the same ID; records are never partially
	// mutated in place.
	Upsert(ctx context.Context, records []Record) error

	// Search returns the topK most similar records to the given embedding,
	// restricted to records matching the filter. Results are sorted by
	// descending score. topK <= 0 yields an empty result, not an error.
	Search(ctx context.Context, embedding []float32, topK int, filter Filter) ([]Result, error)

	// Delete removes a record by ID. Deleting an absent ID succeeds with
	// no effect.
	Delete(ctx context.Context, id string) error

	// Stats reports the active backend, vector count, and dimension.
	Stats(ctx context.Context) (Stats, error)

	// Close releases any resources held by the store.
	Close() error
}
