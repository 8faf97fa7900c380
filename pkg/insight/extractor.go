package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LLMCallFunc is the signature for an LLM inference call.
type LLMCallFunc func(ctx context.Context, prompt string) (string, error)

// Source reports which path produced a set of insights, so callers can tell
// a live extraction run apart from the cached-file fallback.
type Source string

const (
	SourceLLM   Source = "llm"
	SourceCache Source = "cache"
)

// Extractor turns raw transcripts into structured insights via an LLM call,
// with a locally cached insights file as the degraded-mode fallback.
type Extractor struct {
	llmCall      LLMCallFunc
	insightsPath string
	logger       *zap.Logger
}

// NewExtractor creates an Extractor. llmCall may be nil, in which case
// ProcessAll always takes the cache path.
func NewExtractor(llmCall LLMCallFunc, insightsPath string, logger *zap.Logger) *Extractor {
	return &Extractor{
		llmCall:      llmCall,
		insightsPath: insightsPath,
		logger:       logger,
	}
}

// ExtractOne runs extraction for a single transcript.
func (e *Extractor) ExtractOne(ctx context.Context, t Transcript) (Insight, error) {
	response, err := e.llmCall(ctx, buildInsightPrompt(t.Transcript))
	if err != nil {
		return Insight{}, fmt.Errorf("llm call: %w", err)
	}

	ins, err := parseInsightResponse(response)
	if err != nil {
		return Insight{}, fmt.Errorf("parse response: %w", err)
	}

	ins.ID = t.ID
	ins.Participant = t.Participant
	return ins, nil
}

// ProcessAll extracts insights from every transcript. A single transcript's
// failure is logged and skipped, never aborting the rest. When no transcript
// can be processed (provider unreachable or unconfigured), the cached
// insights file is used instead; the returned Source flags which path was
// taken. Successful live runs refresh the cache.
func (e *Extractor) ProcessAll(ctx context.Context, transcripts []Transcript) ([]Insight, Source, error) {
	if e.llmCall == nil {
		e.logger.Warn("extraction provider not configured, using cached insights")
		insights, err := e.loadCached()
		return insights, SourceCache, err
	}

	insights := make([]Insight, 0, len(transcripts))
	for _, t := range transcripts {
		ins, err := e.ExtractOne(ctx, t)
		if err != nil {
			e.logger.Warn("skipping transcript after extraction failure",
				zap.String("id", t.ID),
				zap.String("participant", t.Participant),
				zap.Error(err),
			)
			continue
		}
		insights = append(insights, ins)
	}

	if len(insights) == 0 && len(transcripts) > 0 {
		e.logger.Warn("extraction produced no insights, falling back to cached insights")
		cached, err := e.loadCached()
		return cached, SourceCache, err
	}

	if err := e.saveCache(insights); err != nil {
		e.logger.Warn("could not refresh insights cache", zap.Error(err))
	}

	return insights, SourceLLM, nil
}

// loadCached reads the insights file. A missing file is an empty set, not
// an error.
func (e *Extractor) loadCached() ([]Insight, error) {
	data, err := os.ReadFile(e.insightsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading insights cache: %w", err)
	}

	var insights []Insight
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, fmt.Errorf("parsing insights cache %s: %w", e.insightsPath, err)
	}
	return insights, nil
}

func (e *Extractor) saveCache(insights []Insight) error {
	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding insights: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(e.insightsPath), 0o755); err != nil {
		return fmt.Errorf("creating insights directory: %w", err)
	}
	if err := os.WriteFile(e.insightsPath, data, 0o644); err != nil {
		return fmt.Errorf("writing insights cache: %w", err)
	}
	return nil
}

// LoadTranscripts reads a transcript document from disk.
func LoadTranscripts(path string) ([]Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcripts: %w", err)
	}

	var transcripts []Transcript
	if err := json.Unmarshal(data, &transcripts); err != nil {
		return nil, fmt.Errorf("parsing transcripts %s: %w", path, err)
	}
	return transcripts, nil
}

func buildInsightPrompt(transcript string) string {
	return "Analyze this coaching session transcript and extract key insights.\nReturn ONLY valid JSON with exactly these fields:\n\n{\n  \"primary_goal\": \"main business/personal goal (be specific with numbers if mentioned)\",\n  \"main_blocker\": \"primary obstacle or challenge preventing progress\",\n  \"secondary_blockers\": [\"list of additional challenges\"],\n  \"business_focus\": \"industry or business type (e.g. 'e-commerce', 'saas', 'coaching')\",\n  \"mindset_pattern\": \"dominant psychological pattern or limiting belief\",\n  \"current_stage\": \"where they are now (revenue, team size, etc.)\",\n  \"key_emotions\": [\"primary emotions expressed\"],\n  \"urgency_level\": \"1-5 scale of how urgent their situation feels\"\n}\n\nTranscript:\n" + transcript
}
