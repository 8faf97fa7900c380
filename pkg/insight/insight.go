// Package insight extracts structured coaching insights from session
// transcripts and turns them into embedding records.
package insight

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Transcript is one raw coaching-session transcript.
type Transcript struct {
	ID          string `json:"id"`
	Participant string `json:"participant"`
	Transcript  string `json:"transcript"`
}

// Urgency is a 1-5 urgency scale. Extraction models sometimes return it as
// a quoted string, so it unmarshals from either form.
type Urgency int

// UnmarshalJSON accepts both numeric and string-encoded urgency values.
func (u *Urgency) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*u = 3
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}
	*u = Urgency(n)
	return nil
}

// Insight is the structured record extracted from one transcript.
type Insight struct {
	ID                string   `json:"id"`
	Participant       string   `json:"participant"`
	PrimaryGoal       string   `json:"primary_goal"`
	MainBlocker       string   `json:"main_blocker"`
	SecondaryBlockers []string `json:"secondary_blockers,omitempty"`
	BusinessFocus     string   `json:"business_focus"`
	MindsetPattern    string   `json:"mindset_pattern"`
	CurrentStage      string   `json:"current_stage"`
	KeyEmotions       []string `json:"key_emotions,omitempty"`
	UrgencyLevel      Urgency  `json:"urgency_level"`
}

// SearchableText combines the insight fields into the text the embedding is
// computed from. The shape is load-bearing: the explanation heuristics and
// stored summaries both read it.
func (i Insight) SearchableText() string {
	parts := []string{
		"Goal: " + i.PrimaryGoal,
		"Main challenge: " + i.MainBlocker,
		"Business: " + i.BusinessFocus,
		"Mindset: " + i.MindsetPattern,
		"Current stage: " + i.CurrentStage,
	}
	if len(i.SecondaryBlockers) > 0 {
		parts = append(parts, "Other challenges: "+strings.Join(i.SecondaryBlockers, ", "))
	}
	if len(i.KeyEmotions) > 0 {
		parts = append(parts, "Emotions: "+strings.Join(i.KeyEmotions, ", "))
	}
	return strings.Join(parts, " | ")
}

// parseInsightResponse extracts the JSON object from an LLM response that
// may be wrapped in markdown code fences or prose.
func parseInsightResponse(response string) (Insight, error) {
	jsonStr := response
	if idx := strings.Index(response, "{"); idx >= 0 {
		endIdx := strings.LastIndex(response, "}")
		if endIdx > idx {
			jsonStr = response[idx : endIdx+1]
		}
	}

	var ins Insight
	if err := json.Unmarshal([]byte(jsonStr), &ins); err != nil {
		return Insight{}, err
	}
	return ins, nil
}
