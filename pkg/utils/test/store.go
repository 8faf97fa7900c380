package testutils

import (
	"context"

	"github.com/coachlens/coachlens/pkg/vector"
)

// MockStore is a test vector store that records upserts and answers
// queries by applying the filter to its records. Scores descend from 1.0
// in insertion order unless Results is set, in which case Results is
// returned as-is (after filtering by topK).
type MockStore struct {
	Records []vector.Record

	// Results overrides the computed search results when non-nil.
	Results []vector.Result

	// FailSearch causes Search to return an error.
	FailSearch bool

	// Deleted accumulates IDs passed to Delete.
	Deleted []string
}

func NewMockStore() *MockStore {
	return &MockStore{
		Records: make([]vector.Record, 0),
	}
}

func (m *MockStore) Upsert(_ context.Context, recs []vector.Record) error {
	m.Records = append(m.Records, recs...)
	return nil
}

func (m *MockStore) Search(_ context.Context, _ []float32, topK int, filter vector.Filter) ([]vector.Result, error) {
	if m.FailSearch {
		return nil, vector.ErrConnection
	}

	if m.Results != nil {
		if len(m.Results) > topK {
			return m.Results[:topK], nil
		}
		return m.Results, nil
	}

	results := make([]vector.Result, 0)
	score := float32(1.0)
	for _, rec := range m.Records {
		if !filter.Matches(rec) {
			continue
		}
		results = append(results, vector.Result{
			ID:             rec.ID,
			Participant:    rec.Participant,
			Score:          score,
			SearchableText: rec.SearchableText,
			Metadata:       rec.Metadata,
		})
		score -= 0.1
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

func (m *MockStore) Delete(_ context.Context, id string) error {
	m.Deleted = append(m.Deleted, id)
	kept := m.Records[:0]
	for _, rec := range m.Records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	m.Records = kept
	return nil
}

func (m *MockStore) Stats(_ context.Context) (vector.Stats, error) {
	dim := 0
	if len(m.Records) > 0 {
		dim = len(m.Records[0].Embedding)
	}
	return vector.Stats{
		Backend:      "mock",
		TotalVectors: len(m.Records),
		Dimension:    dim,
	}, nil
}

func (m *MockStore) Close() error {
	return nil
}
