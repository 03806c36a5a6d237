package report

import (
	"strings"
	"testing"

	"github.com/jobmate/reportgen/pkg/chart"
	"github.com/jobmate/reportgen/pkg/session"
)

func f64(v float64) *float64 { return &v }

func newTestLayout(t *testing.T) *layout {
	t.Helper()
	l := newLayout(newTestPDF(), DefaultOptions())
	l.cursor = Cursor{Page: 1, Y: l.opts.Margin}
	return l
}

func TestEnsureSpaceBreaks(t *testing.T) {
	l := newTestLayout(t)

	l.cursor.Y = l.pageH - l.opts.Margin - 10
	if !l.ensureSpace(50) {
		t.Fatal("expected a page break near the bottom")
	}
	if l.cursor.Page != 2 {
		t.Errorf("expected page 2, got %d", l.cursor.Page)
	}
	if l.cursor.Y != l.opts.Margin {
		t.Errorf("expected cursor reset to margin, got %v", l.cursor.Y)
	}
}

func TestEnsureSpaceFits(t *testing.T) {
	l := newTestLayout(t)

	if l.ensureSpace(100) {
		t.Error("expected no break when the block fits")
	}
	if l.cursor.Page != 1 {
		t.Errorf("expected to stay on page 1, got %d", l.cursor.Page)
	}
}

func TestEnsureSpaceOverflowGuard(t *testing.T) {
	l := newTestLayout(t)

	// Taller than a full page body while the cursor sits at the top: must
	// not break, or a block taller than a page would loop forever.
	if l.ensureSpace(l.pageH * 2) {
		t.Error("expected overflow instead of a break at the top of a page")
	}
}

func TestQuestionBlockPageBreakInvariant(t *testing.T) {
	l := newTestLayout(t)

	item := session.FeedbackItem{
		Question:   "Describe a project you are proud of and what you learned from it.",
		Answer:     strings.Repeat("I designed the ingestion pipeline and owned the rollout. ", 6),
		Evaluation: strings.Repeat("Good structure, could quantify the impact more. ", 4),
		Type:       "tech_practical",
		Score:      f64(7.5),
	}

	limit := l.pageH - l.opts.Margin
	for i := 1; i <= 30; i++ {
		l.QuestionBlock(item, i)
		if l.cursor.Y > limit+blockSpacing {
			t.Fatalf("block %d left cursor at %v past limit %v", i, l.cursor.Y, limit)
		}
	}
	if l.cursor.Page < 2 {
		t.Error("expected 30 blocks to span multiple pages")
	}
}

func TestQuestionBlockMinimalItem(t *testing.T) {
	l := newTestLayout(t)

	before := l.cursor.Y
	l.QuestionBlock(session.FeedbackItem{Question: "Any questions for us?"}, 1)
	if l.cursor.Y <= before {
		t.Error("expected cursor to advance for a question-only item")
	}
}

func TestChartBlockFitsWidth(t *testing.T) {
	ex := chart.NewExtractor(chart.DefaultExtractorConfig())
	png, err := ex.Extract(&chart.Source{
		Type:   chart.KindBar,
		Labels: []string{"HR", "Technical"},
		Datasets: []chart.Dataset{
			{Label: "Average Score", Data: []chart.PointValue{chart.Number(6), chart.Number(8)}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l := newTestLayout(t)
	before := l.cursor.Y
	if err := l.ChartBlock("Scores by Category", png); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.cursor.Y <= before {
		t.Error("expected cursor to advance past the chart")
	}
	if l.cursor.Y > l.pageH-l.opts.Margin {
		t.Errorf("chart overflowed the page: cursor %v", l.cursor.Y)
	}
}

func TestChartBlockRejectsGarbage(t *testing.T) {
	l := newTestLayout(t)
	if err := l.ChartBlock("Broken", []byte("not a png")); err == nil {
		t.Error("expected an error for a non-PNG payload")
	}
}

func TestChartBlockHeightCap(t *testing.T) {
	ex := chart.NewExtractor(chart.ExtractorConfig{Width: 300, Height: 600})
	png, err := ex.Extract(&chart.Source{
		Type:   chart.KindDonut,
		Labels: []string{"a", "b"},
		Datasets: []chart.Dataset{
			{Data: []chart.PointValue{chart.Number(3), chart.Number(7)}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l := newTestLayout(t)
	// Leave little room so the height cap path re-derives the width.
	l.cursor.Y = l.pageH / 2

	if err := l.ChartBlock("Tall Chart", png); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.cursor.Y > l.pageH-l.opts.Margin+1e-9 {
		t.Errorf("capped chart still overflowed: cursor %v", l.cursor.Y)
	}
}
