package session

import (
	"testing"
	"time"
)

func sampleSession() *Session {
	return &Session{
		ID:        "s-1",
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Questions: []string{"Q1", "Q2", "Q3", "Q4"},
		Feedback: []FeedbackItem{
			{Question: "Q1", Type: "hr", Score: f64(6)},
			{Question: "Q2", Type: "tech_theory", Score: f64(8)},
			{Question: "Q3", Type: "tech_theory", Score: f64(8)},
			{Question: "Q4", Type: "tech_practical", Score: f64(6)},
		},
		InterviewType: "mixed",
	}
}

func TestComputeStatisticsByCategory(t *testing.T) {
	stats := ComputeStatistics(sampleSession())

	hr, ok := stats.Scores.ByCategory["hr"]
	if !ok {
		t.Fatal("expected hr category")
	}
	if hr.Score != 6 || hr.TotalQuestions != 1 {
		t.Errorf("expected hr 6.0 (1), got %v (%d)", hr.Score, hr.TotalQuestions)
	}

	// Sub-tags stay distinguishable in the wire shape.
	theory, ok := stats.Scores.ByCategory["tech_theory"]
	if !ok {
		t.Fatal("expected tech_theory category")
	}
	if theory.Score != 8 || theory.TotalQuestions != 2 {
		t.Errorf("expected tech_theory 8.0 (2), got %v (%d)", theory.Score, theory.TotalQuestions)
	}

	practical, ok := stats.Scores.ByCategory["tech_practical"]
	if !ok {
		t.Fatal("expected tech_practical category")
	}
	if practical.Score != 6 || practical.TotalQuestions != 1 {
		t.Errorf("expected tech_practical 6.0 (1), got %v (%d)", practical.Score, practical.TotalQuestions)
	}
}

func TestComputeStatisticsOverall(t *testing.T) {
	stats := ComputeStatistics(sampleSession())

	// item-weighted: (6 + 8 + 8 + 6) / 4 = 7.0
	if stats.Scores.Overall.Average != 7 {
		t.Errorf("expected overall 7.0, got %v", stats.Scores.Overall.Average)
	}
	if stats.Scores.Overall.TotalAnswered != 4 {
		t.Errorf("expected 4 answered, got %d", stats.Scores.Overall.TotalAnswered)
	}
}

func TestComputeStatisticsProgress(t *testing.T) {
	stats := ComputeStatistics(sampleSession())

	if stats.Progress.Answered != 4 || stats.Progress.Total != 4 {
		t.Errorf("expected progress 4/4, got %d/%d", stats.Progress.Answered, stats.Progress.Total)
	}
}

func TestComputeStatisticsUnscoredSkipped(t *testing.T) {
	s := &Session{
		Feedback: []FeedbackItem{
			{Type: "hr"},
			{Type: "hr", Score: f64(4)},
		},
	}
	stats := ComputeStatistics(s)

	hr := stats.Scores.ByCategory["hr"]
	if hr.Score != 4 || hr.TotalQuestions != 1 {
		t.Errorf("expected unscored item skipped, got %v (%d)", hr.Score, hr.TotalQuestions)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(&Session{})
	if len(stats.Scores.ByCategory) != 0 {
		t.Errorf("expected no categories, got %d", len(stats.Scores.ByCategory))
	}
	if stats.Scores.Overall.Average != 0 {
		t.Errorf("expected zero overall, got %v", stats.Scores.Overall.Average)
	}

	stats = ComputeStatistics(nil)
	if stats == nil {
		t.Fatal("expected non-nil statistics for nil session")
	}
}

func TestComputeStatisticsFeedsResolve(t *testing.T) {
	// The derived wire shape must merge into the display categories:
	// tech_theory {8, 2} + tech_practical {6, 1} -> technical 7.33.
	stats := ComputeStatistics(sampleSession())
	rows := Resolve(nil, stats)

	tech := findRow(t, rows, TypeTechnical)
	if tech.AvgScore != 7.3 {
		t.Errorf("expected merged technical 7.3, got %v", tech.AvgScore)
	}
	if tech.Count != 3 {
		t.Errorf("expected merged count 3, got %d", tech.Count)
	}
}
