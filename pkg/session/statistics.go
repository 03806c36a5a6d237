package session

import "strings"

// Statistics is the pre-aggregated score shape exchanged with the rest of
// the application. The report consumes it when supplied; otherwise the same
// numbers are derived from the raw feedback via ComputeStatistics.
type Statistics struct {
	Scores   ScoreStats   `json:"scores"`
	Progress ProgressStat `json:"progress"`
}

// ScoreStats groups per-category and overall score aggregates.
type ScoreStats struct {
	ByCategory map[string]CategoryStat `json:"by_category"`
	Overall    OverallStat             `json:"overall"`
}

// CategoryStat is one category's pre-aggregated score.
type CategoryStat struct {
	// Score is the average score for the category, one decimal place.
	Score float64 `json:"score"`

	// TotalQuestions is the number of scored answers contributing to Score.
	TotalQuestions int `json:"total_questions"`
}

// OverallStat is the session-wide aggregate.
type OverallStat struct {
	Average       float64 `json:"average"`
	TotalAnswered int     `json:"total_answered"`
}

// ProgressStat tracks how far through the question list the session got.
type ProgressStat struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// ComputeStatistics derives the wire-shape statistics from raw feedback.
// Categories appear in ByCategory under their raw (lowercased) tag so that
// tech_theory and tech_practical stay distinguishable; the report's stats
// panel merges them into the technical umbrella with count weighting.
func ComputeStatistics(s *Session) *Statistics {
	stats := &Statistics{
		Scores: ScoreStats{
			ByCategory: make(map[string]CategoryStat),
		},
	}
	if s == nil {
		return stats
	}

	stats.Progress = ProgressStat{
		Answered: len(s.Feedback),
		Total:    len(s.Questions),
	}
	if stats.Progress.Total < stats.Progress.Answered {
		// Free-form sessions have no fixed question list.
		stats.Progress.Total = stats.Progress.Answered
	}

	byTag := make(map[string][]FeedbackItem)
	for _, item := range s.Feedback {
		tag := rawTag(item.Type)
		byTag[tag] = append(byTag[tag], item)
	}

	var overallTotal float64
	var overallCount int

	for tag, items := range byTag {
		avg, ok := AverageScore(items)
		if !ok {
			continue
		}
		count := scoredCount(items)
		stats.Scores.ByCategory[tag] = CategoryStat{
			Score:          avg,
			TotalQuestions: count,
		}
		overallTotal += avg * float64(count)
		overallCount += count
	}

	if overallCount > 0 {
		stats.Scores.Overall = OverallStat{
			Average:       round1(overallTotal / float64(overallCount)),
			TotalAnswered: overallCount,
		}
	}

	return stats
}

// rawTag lowercases a tag without collapsing the technical sub-tags.
func rawTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// scoredCount returns the number of items with a usable score.
func scoredCount(items []FeedbackItem) int {
	n := 0
	for _, item := range items {
		if item.HasScore() {
			n++
		}
	}
	return n
}
