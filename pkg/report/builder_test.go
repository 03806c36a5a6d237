package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jobmate/reportgen/pkg/session"
)

func testSession() *session.Session {
	return &session.Session{
		ID:          "s-1",
		CompanyName: "Initech",
		Position:    "Backend Engineer",
		Timestamp:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Questions:   []string{"Q1", "Q2", "Q3"},
		Feedback: []session.FeedbackItem{
			{
				Question:   "1. Tell me about yourself.",
				Answer:     "I have five years of backend experience.",
				Evaluation: "Clear and concise.",
				Type:       "hr",
				Score:      f64(7),
			},
			{
				Question:   "2. Explain how a hash map works.",
				Answer:     "Buckets indexed by hash, collisions chained or probed.",
				Evaluation: "Solid fundamentals.",
				Type:       "tech_theory",
				Score:      f64(8.5),
			},
			{
				Question: "3. Any questions for us?",
				Type:     "non_technical",
			},
		},
		InterviewType: "mixed",
	}
}

func pinnedBuilder(opts Options) *Builder {
	b := NewBuilder(opts)
	b.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return b
}

func TestBuildReportSections(t *testing.T) {
	b := pinnedBuilder(DefaultOptions())
	res, err := b.BuildReport(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(res.PDF, []byte("%PDF")) {
		t.Error("expected a PDF header")
	}
	if res.Pages < 1 {
		t.Errorf("expected at least one page, got %d", res.Pages)
	}
	if res.QuestionBlocks != 3 {
		t.Errorf("expected 3 question blocks, got %d", res.QuestionBlocks)
	}
	// Categorical bar, donut, and progression line (two scored answers).
	if res.ChartSections != 3 {
		t.Errorf("expected 3 chart sections, got %d", res.ChartSections)
	}
	if res.SkippedSections != 0 {
		t.Errorf("expected no skipped sections, got %d", res.SkippedSections)
	}
}

func TestBuildIdempotent(t *testing.T) {
	a, err := pinnedBuilder(DefaultOptions()).Build(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := pinnedBuilder(DefaultOptions()).Build(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("expected identical sessions to produce identical documents")
	}
}

func TestBuildNoContentLoss(t *testing.T) {
	s := testSession()
	s.Feedback = nil
	for i := 0; i < 25; i++ {
		s.Feedback = append(s.Feedback, session.FeedbackItem{
			Question:   "Walk me through a production incident you handled end to end.",
			Answer:     strings.Repeat("We triaged, mitigated, and wrote the postmortem. ", 5),
			Evaluation: "Good incident hygiene.",
			Type:       "tech_practical",
			Score:      f64(7),
		})
	}

	res, err := pinnedBuilder(DefaultOptions()).BuildReport(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.QuestionBlocks != 25 {
		t.Errorf("expected all 25 blocks rendered, got %d", res.QuestionBlocks)
	}
	if res.Pages < 2 {
		t.Errorf("expected 25 blocks to need multiple pages, got %d", res.Pages)
	}
}

func TestBuildIncludeFlags(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeCharts = false
	res, err := pinnedBuilder(opts).BuildReport(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ChartSections != 0 {
		t.Errorf("expected no chart sections, got %d", res.ChartSections)
	}

	opts = DefaultOptions()
	opts.IncludeQuestions = false
	res, err = pinnedBuilder(opts).BuildReport(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.QuestionBlocks != 0 {
		t.Errorf("expected no question blocks, got %d", res.QuestionBlocks)
	}
}

func TestBuildAllQuestionsOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.AllQuestions = []session.FeedbackItem{
		{Question: "Only this one.", Type: "hr", Score: f64(5)},
	}

	res, err := pinnedBuilder(opts).BuildReport(testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.QuestionBlocks != 1 {
		t.Errorf("expected the override list to win, got %d blocks", res.QuestionBlocks)
	}
}

func TestBuildPreAggregatedScores(t *testing.T) {
	stats := &session.Statistics{}
	stats.Scores.ByCategory = map[string]session.CategoryStat{
		"tech_theory":    {Score: 8, TotalQuestions: 2},
		"tech_practical": {Score: 6, TotalQuestions: 1},
	}

	opts := DefaultOptions()
	opts.SessionData = stats

	if _, err := pinnedBuilder(opts).BuildReport(testSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildNilSession(t *testing.T) {
	if _, err := pinnedBuilder(DefaultOptions()).BuildReport(nil); err == nil {
		t.Error("expected an error for a nil session")
	}
}

func TestBuildEmptySession(t *testing.T) {
	res, err := pinnedBuilder(DefaultOptions()).BuildReport(&session.Session{})
	if err != nil {
		t.Fatalf("expected an empty session to still produce a document, got %v", err)
	}
	if res.Pages < 1 {
		t.Errorf("expected at least the title page, got %d pages", res.Pages)
	}
}

func TestBuildProgressCallback(t *testing.T) {
	b := pinnedBuilder(DefaultOptions())

	var stages []string
	var lastDone, lastTotal int
	b.Progress = func(stage string, done, total int) {
		stages = append(stages, stage)
		if done <= lastDone {
			t.Errorf("expected done to advance, got %d after %d", done, lastDone)
		}
		lastDone, lastTotal = done, total
	}

	if _, err := b.BuildReport(testSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stages) == 0 {
		t.Fatal("expected progress callbacks")
	}
	if stages[0] != "title" {
		t.Errorf("expected the title stage first, got %q", stages[0])
	}
	if lastDone != lastTotal {
		t.Errorf("expected final done %d to equal total %d", lastDone, lastTotal)
	}
}

func TestGenerateWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report")

	if ok := Generate(testSession(), path, DefaultOptions()); !ok {
		t.Fatal("expected generation to succeed")
	}

	pdfPath := path + ".pdf"
	if _, err := os.Stat(pdfPath); err != nil {
		t.Fatalf("expected %s to exist: %v", pdfPath, err)
	}

	pages, err := VerifyFile(pdfPath)
	if err != nil {
		t.Fatalf("expected a valid document: %v", err)
	}
	if pages < 1 {
		t.Errorf("expected at least one page, got %d", pages)
	}
}

func TestGenerateNilSession(t *testing.T) {
	dir := t.TempDir()
	if ok := Generate(nil, filepath.Join(dir, "report"), DefaultOptions()); ok {
		t.Error("expected generation to fail for a nil session")
	}
}
