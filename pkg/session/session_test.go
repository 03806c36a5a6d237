package session

import (
	"encoding/json"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestFeedbackItemUnmarshalNumericScore(t *testing.T) {
	var item FeedbackItem
	data := []byte(`{"question":"Q","answer":"A","evaluation":"E","type":"hr","score":7.5}`)
	if err := json.Unmarshal(data, &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if item.Score == nil || *item.Score != 7.5 {
		t.Errorf("expected score 7.5, got %v", item.Score)
	}
	if item.Type != "hr" {
		t.Errorf("expected type hr, got %q", item.Type)
	}
}

func TestFeedbackItemUnmarshalStringScore(t *testing.T) {
	var item FeedbackItem
	data := []byte(`{"question":"Q","answer":"A","evaluation":"E","type":"technical","score":"8.5"}`)
	if err := json.Unmarshal(data, &item); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if item.Score == nil || *item.Score != 8.5 {
		t.Errorf("expected coerced score 8.5, got %v", item.Score)
	}
}

func TestFeedbackItemUnmarshalBadScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage string", `"excellent"`},
		{"null", `null`},
		{"negative", `-1`},
		{"too large", `11`},
		{"object", `{"value":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item FeedbackItem
			data := []byte(`{"question":"Q","type":"hr","score":` + tt.raw + `}`)
			if err := json.Unmarshal(data, &item); err != nil {
				t.Fatalf("unexpected error for %s: %v", tt.name, err)
			}
			if item.Score != nil {
				t.Errorf("expected absent score for %s, got %v", tt.name, *item.Score)
			}
		})
	}
}

func TestStripOrdinal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3. What is a goroutine?", "What is a goroutine?"},
		{"12) Explain channels.", "Explain channels."},
		{"Q2: Describe your last project.", "Describe your last project."},
		{"q7. Tell me about a conflict.", "Tell me about a conflict."},
		{"What motivates you?", "What motivates you?"},
		{"  5.  padded  ", "padded"},
	}

	for _, tt := range tests {
		if got := StripOrdinal(tt.in); got != tt.want {
			t.Errorf("StripOrdinal(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HR", "hr"},
		{"tech_theory", "technical"},
		{"Tech_Practical", "technical"},
		{"technical", "technical"},
		{"non_technical", "non_technical"},
		{"  Behavioral ", "behavioral"},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestAverageScore(t *testing.T) {
	items := []FeedbackItem{
		{Type: "hr", Score: f64(8)},
		{Type: "hr", Score: f64(7)},
		{Type: "hr"}, // unscored, skipped
	}

	avg, ok := AverageScore(items)
	if !ok {
		t.Fatal("expected a usable average")
	}
	if avg != 7.5 {
		t.Errorf("expected 7.5, got %v", avg)
	}
}

func TestAverageScoreRounding(t *testing.T) {
	items := []FeedbackItem{
		{Score: f64(8)},
		{Score: f64(8)},
		{Score: f64(7)},
	}

	avg, ok := AverageScore(items)
	if !ok {
		t.Fatal("expected a usable average")
	}
	if avg != 7.7 {
		t.Errorf("expected 7.7 after rounding, got %v", avg)
	}
}

func TestAverageScoreNoData(t *testing.T) {
	if _, ok := AverageScore(nil); ok {
		t.Error("expected no average for empty input")
	}
	if _, ok := AverageScore([]FeedbackItem{{Type: "hr"}}); ok {
		t.Error("expected no average when no item has a score")
	}
}

func TestSessionTitle(t *testing.T) {
	s := &Session{Position: "Backend Engineer", CompanyName: "Acme"}
	if got := s.Title(); got != "Backend Engineer at Acme" {
		t.Errorf("expected full title, got %q", got)
	}

	s = &Session{}
	if got := s.Title(); got != "Interview Session" {
		t.Errorf("expected fallback title, got %q", got)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	data := []byte(`{
		"sessionId": "abc-123",
		"company_name": "Acme",
		"position": "SRE",
		"timestamp": "2025-06-01T10:00:00Z",
		"questions": ["Q1", "Q2"],
		"feedback": [
			{"question": "1. Q1", "answer": "A1", "evaluation": "good", "type": "hr", "score": 6},
			{"question": "2. Q2", "answer": "A2", "evaluation": "ok", "type": "tech_theory", "score": "9"}
		],
		"interviewType": "mixed"
	}`)

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if s.ID != "abc-123" {
		t.Errorf("expected id abc-123, got %q", s.ID)
	}
	if len(s.Feedback) != 2 {
		t.Fatalf("expected 2 feedback items, got %d", len(s.Feedback))
	}
	if s.Feedback[1].Score == nil || *s.Feedback[1].Score != 9 {
		t.Errorf("expected coerced score 9, got %v", s.Feedback[1].Score)
	}
}
