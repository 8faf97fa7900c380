package qdrant

import (
	"strings"
	"time"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/coachlens/coachlens/pkg/vector"
)

// Payload field names. The *_lc fields hold lowercased copies used only for
// server-side filtering, so that equality filters stay case-insensitive and
// agree with vector.Filter.Matches.
const (
	fieldRecordID        = "record_id"
	fieldParticipant     = "participant"
	fieldParticipantLC   = "participant_lc"
	fieldPrimaryGoal     = "primary_goal"
	fieldMainBlocker     = "main_blocker"
	fieldBusinessFocus   = "business_focus"
	fieldBusinessFocusLC = "business_focus_lc"
	fieldMindsetPattern  = "mindset_pattern"
	fieldUrgencyLevel    = "urgency_level"
	fieldSearchableText  = "searchable_text"
	fieldCreatedAt       = "created_at"
)

// payload builds the point payload for a record, truncating long text fields
// to the configured limits.
func (s *Store) payload(rec vector.Record) map[string]*pb.Value {
	return map[string]*pb.Value{
		fieldRecordID:        strValue(rec.ID),
		fieldParticipant:     strValue(rec.Participant),
		fieldParticipantLC:   strValue(strings.ToLower(rec.Participant)),
		fieldPrimaryGoal:     strValue(truncate(rec.Metadata.PrimaryGoal, s.cfg.TextLimit)),
		fieldMainBlocker:     strValue(truncate(rec.Metadata.MainBlocker, s.cfg.TextLimit)),
		fieldBusinessFocus:   strValue(rec.Metadata.BusinessFocus),
		fieldBusinessFocusLC: strValue(strings.ToLower(rec.Metadata.BusinessFocus)),
		fieldMindsetPattern:  strValue(truncate(rec.Metadata.MindsetPattern, s.cfg.MindsetLimit)),
		fieldUrgencyLevel:    intValue(int64(rec.Metadata.UrgencyLevel)),
		fieldSearchableText:  strValue(truncate(rec.SearchableText, s.cfg.SummaryLimit)),
		fieldCreatedAt:       strValue(time.Now().UTC().Format(time.RFC3339)),
	}
}

// translateFilter maps a vector.Filter onto Qdrant's native filter
// expression. Equality clauses become keyword matches against the lowercased
// payload fields; the urgency floor becomes a gte range clause. A zero
// filter yields nil (unfiltered query).
func translateFilter(f vector.Filter) *pb.Filter {
	if f.IsZero() {
		return nil
	}

	var must []*pb.Condition

	if f.BusinessFocus != "" {
		must = append(must, keywordCondition(fieldBusinessFocusLC, strings.ToLower(f.BusinessFocus)))
	}
	if f.Participant != "" {
		must = append(must, keywordCondition(fieldParticipantLC, strings.ToLower(f.Participant)))
	}
	if f.MinUrgency > 0 {
		gte := float64(f.MinUrgency)
		must = append(must, &pb.Condition{
			ConditionOneOf: &pb.Condition_Field{
				Field: &pb.FieldCondition{
					Key:   fieldUrgencyLevel,
					Range: &pb.Range{Gte: &gte},
				},
			},
		})
	}

	return &pb.Filter{Must: must}
}

func keywordCondition(key, value string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{
				Key: key,
				Match: &pb.Match{
					MatchValue: &pb.Match_Keyword{Keyword: value},
				},
			},
		},
	}
}

// resultFromPayload rebuilds a vector.Result from a scored point.
func resultFromPayload(match *pb.ScoredPoint) vector.Result {
	payload := match.GetPayload()

	res := vector.Result{
		ID:             payloadString(payload, fieldRecordID),
		Participant:    payloadString(payload, fieldParticipant),
		Score:          match.GetScore(),
		SearchableText: payloadString(payload, fieldSearchableText),
		Metadata: vector.Metadata{
			PrimaryGoal:    payloadString(payload, fieldPrimaryGoal),
			MainBlocker:    payloadString(payload, fieldMainBlocker),
			BusinessFocus:  payloadString(payload, fieldBusinessFocus),
			MindsetPattern: payloadString(payload, fieldMindsetPattern),
			UrgencyLevel:   int(payloadInt(payload, fieldUrgencyLevel)),
		},
	}

	// Points written by other clients may lack a record_id field.
	if res.ID == "" {
		res.ID = match.GetId().GetUuid()
	}

	return res
}

func strValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func intValue(n int64) *pb.Value {
	return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: n}}
}

func payloadString(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func payloadInt(payload map[string]*pb.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		return v.GetIntegerValue()
	}
	return 0
}

// truncate caps a string at limit runes. Lossy and intentional: managed
// indexes bound per-field payload sizes.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
