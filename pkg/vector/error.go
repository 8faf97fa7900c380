package vector

import "errors"

var (
	// ErrNotFound is returned when a record is not found in the store.
	ErrNotFound = errors.New("record not found")

	// ErrCorruptData is returned when the persisted record set exists but
	// cannot be parsed. Distinct from a legitimately empty store.
	ErrCorruptData = errors.New("corrupt record data")

	// ErrDimensionMismatch is returned when a record's embedding length
	// differs from the store's authoritative dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbedding is returned when embedding generation fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrConnection is returned when the vector store connection fails.
	ErrConnection = errors.New("vector store connection failed")
)
