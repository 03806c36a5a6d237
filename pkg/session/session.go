// Package session defines the interview session data model consumed by the
// report generator: per-question feedback records, category normalization,
// score parsing, and the statistics shapes exchanged with the rest of the
// application.
package session

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Category tag values produced by the interview backend. The set is open:
// unknown tags are carried through and rendered with neutral styling.
const (
	TypeHR            = "hr"
	TypeTechnical     = "technical"
	TypeTechTheory    = "tech_theory"
	TypeTechPractical = "tech_practical"
	TypeNonTechnical  = "non_technical"
)

// FeedbackItem is one interview question/answer/feedback record.
// Items are created by the backend per answered question and are immutable
// once created.
type FeedbackItem struct {
	// Question may carry a leading ordinal prefix ("3. ", "Q2:") which is
	// stripped for display.
	Question string `json:"question"`

	Answer string `json:"answer"`

	// Evaluation is free-text feedback, optionally containing delimited
	// subsections such as "Strengths" or "Areas for Improvement".
	Evaluation string `json:"evaluation"`

	// Type is the category tag (hr, technical, tech_theory, tech_practical,
	// non_technical, or anything else the backend emits).
	Type string `json:"type"`

	// Score is 0-10 when the backend scored the answer, nil otherwise.
	Score *float64 `json:"score,omitempty"`
}

// feedbackItemWire mirrors FeedbackItem but accepts a score that may arrive
// as a number, a numeric string, or garbage.
type feedbackItemWire struct {
	Question   string          `json:"question"`
	Answer     string          `json:"answer"`
	Evaluation string          `json:"evaluation"`
	Type       string          `json:"type"`
	Score      json.RawMessage `json:"score,omitempty"`
}

// UnmarshalJSON decodes a FeedbackItem, coercing a numeric-string score
// ("8.5") to a number. An unparseable or out-of-range score decodes as
// absent, never as an error.
func (f *FeedbackItem) UnmarshalJSON(data []byte) error {
	var wire feedbackItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	f.Question = wire.Question
	f.Answer = wire.Answer
	f.Evaluation = wire.Evaluation
	f.Type = wire.Type
	f.Score = parseScore(wire.Score)
	return nil
}

// parseScore extracts a usable score from a raw JSON value.
// Accepts numbers and numeric strings in [0, 10]; everything else is nil.
func parseScore(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		num = parsed
	}

	if math.IsNaN(num) || num < 0 || num > 10 {
		return nil
	}
	return &num
}

// HasScore returns true if the item carries a usable score.
func (f *FeedbackItem) HasScore() bool {
	return f.Score != nil
}

// Session is one completed interview rehearsal: the questions asked, the
// ordered feedback records, and identifying metadata. Sessions are written
// to the hand-off store at completion and read back by the report page.
type Session struct {
	ID            string         `json:"sessionId"`
	CompanyName   string         `json:"company_name,omitempty"`
	Position      string         `json:"position,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	Questions     []string       `json:"questions"`
	Feedback      []FeedbackItem `json:"feedback"`
	InterviewType string         `json:"interviewType"`
}

// Title returns a human-readable session title for display and filenames.
func (s *Session) Title() string {
	parts := make([]string, 0, 2)
	if s.Position != "" {
		parts = append(parts, s.Position)
	}
	if s.CompanyName != "" {
		parts = append(parts, s.CompanyName)
	}
	if len(parts) == 0 {
		return "Interview Session"
	}
	return strings.Join(parts, " at ")
}

// ordinalPrefix matches leading ordinals like "3. ", "12) ", "Q2:", "Q7. ".
var ordinalPrefix = regexp.MustCompile(`^\s*(?:[Qq]\s*)?\d+\s*[.):]\s*`)

// StripOrdinal removes a leading ordinal prefix from a question for display.
// Questions without a prefix are returned unchanged (trimmed).
func StripOrdinal(question string) string {
	return strings.TrimSpace(ordinalPrefix.ReplaceAllString(question, ""))
}

// NormalizeCategory lowercases a category tag and maps the technical
// sub-tags onto the umbrella "technical" bucket. Unknown tags pass through
// lowercased so they still group consistently.
func NormalizeCategory(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	switch t {
	case TypeTechTheory, TypeTechPractical, TypeTechnical:
		return TypeTechnical
	default:
		return t
	}
}

// AverageScore computes the average of the usable scores in items, rounded
// to one decimal place. Items without a score in [0, 10] are skipped. The
// second return value reports whether any score contributed; when false the
// average is 0 and should be rendered as "no data" rather than zero.
func AverageScore(items []FeedbackItem) (float64, bool) {
	var total float64
	var scored int

	for _, item := range items {
		if item.Score == nil {
			continue
		}
		s := *item.Score
		if math.IsNaN(s) || s < 0 || s > 10 {
			continue
		}
		total += s
		scored++
	}

	if scored == 0 {
		return 0, false
	}
	return round1(total / float64(scored)), true
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
