// Package search turns free-text queries into ranked, explained insight
// matches. It is used by both the CLI and the REST API.
package search

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/embeddings"
	"github.com/coachlens/coachlens/pkg/vector"
)

// DefaultTopK is the result count used when a caller passes topK <= 0.
const DefaultTopK = 5

// Output is the result of one search operation.
type Output struct {
	Query   string          `json:"query"`
	Results []vector.Result `json:"results"`
	Count   int             `json:"count"`

	// Degraded reports that the query embedding came from the zero-vector
	// fallback. Scores are then low and uniform; this flag is how callers
	// tell degraded mode apart from a genuine miss.
	Degraded bool `json:"degraded,omitempty"`
}

// Searcher combines a query embedder, a vector store, and a
// match-explanation heuristic.
type Searcher struct {
	embedder *embeddings.Fallback
	store    vector.Store
	logger   *zap.Logger
}

// NewSearcher creates a Searcher.
func NewSearcher(embedder *embeddings.Fallback, store vector.Store, logger *zap.Logger) *Searcher {
	return &Searcher{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Search embeds the query, ranks records via the vector store, and attaches
// an explanation to each result. Embedding-provider unavailability degrades
// to a zero query vector instead of failing the request.
func (s *Searcher) Search(ctx context.Context, query string, topK int, filter vector.Filter) (*Output, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	s.logger.Debug("search request",
		zap.String("query", query),
		zap.Int("topK", topK),
	)

	embedding, degraded := s.embedder.EmbedOrZero(ctx, query)

	results, err := s.store.Search(ctx, embedding, topK, filter)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Explanation = Explain(query, results[i])
	}

	return &Output{
		Query:    query,
		Results:  results,
		Count:    len(results),
		Degraded: degraded,
	}, nil
}

// SearchByBusinessTypes runs one filtered search per business type and
// merges the per-type top-k pools: concatenate, re-sort by score, truncate
// to topK. This is a union of pools, not a single combined filter.
func (s *Searcher) SearchByBusinessTypes(ctx context.Context, query string, businessTypes []string, topK int) (*Output, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	merged := &Output{Query: query, Results: []vector.Result{}}
	for _, businessType := range businessTypes {
		out, err := s.Search(ctx, query, topK, vector.Filter{BusinessFocus: businessType})
		if err != nil {
			return nil, err
		}
		merged.Results = append(merged.Results, out.Results...)
		merged.Degraded = merged.Degraded || out.Degraded
	}

	sort.SliceStable(merged.Results, func(i, j int) bool {
		return merged.Results[i].Score > merged.Results[j].Score
	})
	if len(merged.Results) > topK {
		merged.Results = merged.Results[:topK]
	}
	merged.Count = len(merged.Results)

	return merged, nil
}

// SearchByUrgency searches with only an urgency-floor filter.
func (s *Searcher) SearchByUrgency(ctx context.Context, query string, minUrgency, topK int) (*Output, error) {
	return s.Search(ctx, query, topK, vector.Filter{MinUrgency: minUrgency})
}

// SimilarTo finds participants with similar goals and challenges to the
// named one. The participant's stored goal and blocker text become the new
// query; the participant is excluded from the results. An unknown
// participant yields an empty output, not an error.
func (s *Searcher) SimilarTo(ctx context.Context, participant string, topK int) (*Output, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	lookup, err := s.Search(ctx, "", 1, vector.Filter{Participant: participant})
	if err != nil {
		return nil, err
	}
	if lookup.Count == 0 {
		s.logger.Debug("participant not found", zap.String("participant", participant))
		return &Output{Query: participant, Results: []vector.Result{}}, nil
	}

	meta := lookup.Results[0].Metadata
	query := strings.TrimSpace(meta.PrimaryGoal + " " + meta.MainBlocker)

	out, err := s.Search(ctx, query, topK+1, vector.Filter{})
	if err != nil {
		return nil, err
	}

	kept := make([]vector.Result, 0, topK)
	for _, res := range out.Results {
		if strings.EqualFold(res.Participant, participant) {
			continue
		}
		kept = append(kept, res)
		if len(kept) == topK {
			break
		}
	}

	out.Results = kept
	out.Count = len(kept)
	return out, nil
}

// Explain generates a human-readable account of why a record matched a
// query. Purely descriptive: it never affects scores or ranking.
//
// Query words are checked for containment in the goal, blocker, and mindset
// text; the business focus is checked as a substring of the whole query.
// Triggered reasons join with " + "; no trigger falls back to
// "Semantic similarity".
func Explain(query string, res vector.Result) string {
	queryLower := strings.ToLower(query)
	words := strings.Fields(queryLower)
	meta := res.Metadata

	var reasons []string
	if anyWordIn(words, meta.PrimaryGoal) {
		reasons = append(reasons, "Similar goal")
	}
	if anyWordIn(words, meta.MainBlocker) {
		reasons = append(reasons, "Similar challenge")
	}
	if anyWordIn(words, meta.MindsetPattern) {
		reasons = append(reasons, "Similar mindset")
	}
	if focus := strings.ToLower(meta.BusinessFocus); focus != "" && strings.Contains(queryLower, focus) {
		reasons = append(reasons, "Same business type")
	}

	if len(reasons) == 0 {
		return "Semantic similarity"
	}
	return strings.Join(reasons, " + ")
}

func anyWordIn(words []string, text string) bool {
	if text == "" {
		return false
	}
	textLower := strings.ToLower(text)
	for _, word := range words {
		if strings.Contains(textLower, word) {
			return true
		}
	}
	return false
}
