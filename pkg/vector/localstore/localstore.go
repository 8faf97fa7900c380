// Package localstore provides a file-backed vector store with exact
// linear-scan search. It has no external service dependency and presents the
// same contract as the remote backend.
//
// The record set is persisted as a single JSON document with full-file
// read/replace semantics. Saves are atomic (temp file + rename) but not safe
// against concurrent writers; a single-writer is assumed.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"context"

	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/vector"
)

// Backend is the stats identifier for this store.
const Backend = "local"

// Config holds configuration for the local store.
type Config struct {
	// Path is the JSON document holding the record set.
	Path string
}

// Store implements vector.Store over a JSON record file.
type Store struct {
	path   string
	logger *zap.Logger
}

// New creates a local vector store. Construction never fails: the file is
// only touched on first use.
func New(c Config, logger *zap.Logger) *Store {
	return &Store{
		path:   c.Path,
		logger: logger,
	}
}

// envelope tolerates both a bare record list and a wrapped document.
type envelope struct {
	Embeddings []vector.Record `json:"embeddings"`
}

// load reads the full record set. A missing or empty file is a legitimately
// empty store (nil, nil). A file that exists but cannot be parsed, or whose
// first record has an empty embedding, is corrupt. Records whose dimension
// differs from the first record's are dropped with a warning.
func (s *Store) load() ([]vector.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []vector.Record
	if err := json.Unmarshal(data, &records); err != nil {
		var env envelope
		if err2 := json.Unmarshal(data, &env); err2 != nil || env.Embeddings == nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", vector.ErrCorruptData, s.path, err)
		}
		records = env.Embeddings
	}
	if len(records) == 0 {
		return nil, nil
	}

	dim := len(records[0].Embedding)
	if dim == 0 {
		return nil, fmt.Errorf("%w: first record %q has an empty embedding", vector.ErrCorruptData, records[0].ID)
	}

	valid := records[:0]
	for _, rec := range records {
		if len(rec.Embedding) != dim {
			s.logger.Warn("skipping record with inconsistent embedding dimension",
				zap.String("id", rec.ID),
				zap.String("participant", rec.Participant),
				zap.Int("expected", dim),
				zap.Int("found", len(rec.Embedding)),
			)
			continue
		}
		valid = append(valid, rec)
	}

	return valid, nil
}

// save atomically replaces the full record set. No partial-write visibility:
// the document is written to a temp file and renamed into place.
func (s *Store) save(records []vector.Record) error {
	if records == nil {
		records = []vector.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".embeddings-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	return nil
}

// Upsert adds or replaces records by ID. An existing ID is removed first and
// the incoming record appended, so updated records take a fresh insertion
// position. Incoming records whose dimension disagrees with the working set
// are skipped with a warning, never padded or truncated.
func (s *Store) Upsert(_ context.Context, records []vector.Record) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := s.load()
	if err != nil {
		return fmt.Errorf("loading record set: %w", err)
	}

	incoming := map[string]bool{}
	for _, rec := range records {
		incoming[rec.ID] = true
	}

	merged := make([]vector.Record, 0, len(existing)+len(records))
	for _, rec := range existing {
		if !incoming[rec.ID] {
			merged = append(merged, rec)
		}
	}

	dim := 0
	if len(merged) > 0 {
		dim = len(merged[0].Embedding)
	}

	added := 0
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			s.logger.Warn("skipping record with empty embedding", zap.String("id", rec.ID))
			continue
		}
		if dim == 0 {
			dim = len(rec.Embedding)
		}
		if len(rec.Embedding) != dim {
			s.logger.Warn("skipping record with inconsistent embedding dimension",
				zap.String("id", rec.ID),
				zap.Int("expected", dim),
				zap.Int("found", len(rec.Embedding)),
			)
			continue
		}
		merged = append(merged, rec)
		added++
	}

	if err := s.save(merged); err != nil {
		return err
	}

	s.logger.Info("stored embeddings locally",
		zap.Int("upserted", added),
		zap.Int("total", len(merged)),
	)

	return nil
}

// Search applies the filter, then computes a raw dot product of the query
// against every surviving candidate, sorts by score descending, and returns
// the first topK.
//
// Stored vectors are not length-normalized, so the score is a true cosine
// similarity only when both sides are unit-length; callers wanting cosine
// must normalize before storage. Ties keep insertion order (stable sort).
//
// A corrupt record file degrades to an empty result with a warning; it is
// not distinguishable from an empty store through the return value alone.
func (s *Store) Search(_ context.Context, embedding []float32, topK int, filter vector.Filter) ([]vector.Result, error) {
	if topK <= 0 {
		return []vector.Result{}, nil
	}

	records, err := s.load()
	if err != nil {
		s.logger.Warn("search degraded to empty results", zap.Error(err))
		return []vector.Result{}, nil
	}

	type scored struct {
		score float32
		rec   vector.Record
	}

	candidates := make([]scored, 0, len(records))
	for _, rec := range records {
		if !filter.Matches(rec) {
			continue
		}
		candidates = append(candidates, scored{
			score: dot(embedding, rec.Embedding),
			rec:   rec,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}

	results := make([]vector.Result, 0, topK)
	for _, c := range candidates[:topK] {
		results = append(results, vector.Result{
			ID:             c.rec.ID,
			Participant:    c.rec.Participant,
			Score:          c.score,
			SearchableText: c.rec.SearchableText,
			Metadata:       c.rec.Metadata,
		})
	}

	return results, nil
}

// Delete removes a record by ID via filter-out-and-rewrite. Idempotent:
// deleting an absent ID succeeds with no effect.
func (s *Store) Delete(_ context.Context, id string) error {
	records, err := s.load()
	if err != nil {
		return fmt.Errorf("loading record set: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	if err := s.save(kept); err != nil {
		return err
	}

	s.logger.Info("deleted embedding from local storage", zap.String("id", id))
	return nil
}

// Stats reports the backend name, record count, and dimension of the first
// record (0 when empty).
func (s *Store) Stats(_ context.Context) (vector.Stats, error) {
	stats := vector.Stats{Backend: Backend}

	records, err := s.load()
	if err != nil {
		return stats, err
	}

	stats.TotalVectors = len(records)
	if len(records) > 0 {
		stats.Dimension = len(records[0].Embedding)
	}
	return stats, nil
}

// Close is a no-op for the file-backed store.
func (s *Store) Close() error {
	return nil
}

// dot computes the raw dot product. Length mismatches score zero over the
// missing tail rather than panicking; upstream validation keeps dimensions
// uniform so this only matters for a malformed query vector.
func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := range n {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}

var _ vector.Store = (*Store)(nil)
