package report

import (
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"

	"github.com/jobmate/reportgen/pkg/session"
)

func newTestPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

func TestBadgeForKnownTags(t *testing.T) {
	tests := []struct {
		tag  string
		text string
	}{
		{"hr", "HR"},
		{"technical", "Technical"},
		{"tech_theory", "Technical (Theory)"},
		{"tech_practical", "Technical (Practical)"},
		{"non_technical", "Non-Technical"},
		{"HR", "HR"},
		{"  tech_theory ", "Technical (Theory)"},
	}
	for _, tt := range tests {
		style := badgeFor(tt.tag)
		if style.text != tt.text {
			t.Errorf("badgeFor(%q): expected %q, got %q", tt.tag, tt.text, style.text)
		}
		if style.bg == neutralGray {
			t.Errorf("badgeFor(%q): expected a category color, got neutral gray", tt.tag)
		}
	}
}

func TestBadgeForUnknownTag(t *testing.T) {
	style := badgeFor("system_design")
	if style.text != "System Design" {
		t.Errorf("expected title-cased text, got %q", style.text)
	}
	if style.bg != neutralGray {
		t.Errorf("expected neutral gray for unknown tag, got %v", style.bg)
	}

	if badgeFor("").text != "General" {
		t.Errorf("expected fallback text for empty tag, got %q", badgeFor("").text)
	}
}

func TestBadgeWidthMatchesDraw(t *testing.T) {
	pdf := newTestPDF()

	for _, tag := range []string{"hr", "tech_practical", "something_else"} {
		want := BadgeWidth(pdf, tag, 9)
		got := DrawBadge(pdf, tag, 20, 40, 9)
		if got != want {
			t.Errorf("tag %q: BadgeWidth %v != DrawBadge %v", tag, want, got)
		}
	}
}

func TestBadgeWidthIncludesPadding(t *testing.T) {
	pdf := newTestPDF()
	pdf.SetFont("Helvetica", "B", 9)
	textW := pdf.GetStringWidth("HR")

	if got := BadgeWidth(pdf, "hr", 9); got != textW+2*badgePadX {
		t.Errorf("expected text width plus padding, got %v (text %v)", got, textW)
	}
}

func TestBadgeInlinePlacement(t *testing.T) {
	pdf := newTestPDF()
	opts := DefaultOptions()
	l := newLayout(pdf, opts)

	short := session.FeedbackItem{Question: "Tell me about yourself.", Type: "hr"}
	parts := l.measureQuestion(short, 1)
	if !parts.badgeInline {
		t.Error("expected inline badge after a short question line")
	}

	// Construct a single-line question that nearly fills the content width
	// so the badge cannot fit beside it.
	l.setFont("B", l.questionFontSize(), headingColor)
	mW := pdf.GetStringWidth("M")
	n := int((l.contentWidth() - pdf.GetStringWidth("Q1: ") - mW) / mW)
	long := session.FeedbackItem{Question: strings.Repeat("M", n), Type: "tech_practical"}

	parts = l.measureQuestion(long, 1)
	if len(parts.question) != 1 {
		t.Fatalf("fixture should wrap to one line, got %d", len(parts.question))
	}
	if parts.badgeInline {
		t.Error("expected badge on its own line after a full-width question line")
	}
}

func TestQuestionHeightCountsBadgeLine(t *testing.T) {
	pdf := newTestPDF()
	l := newLayout(pdf, DefaultOptions())

	item := session.FeedbackItem{Question: "Why this company?", Type: "hr"}
	inline := l.measureQuestion(item, 1)
	h1 := l.questionHeight(inline)

	broken := inline
	broken.badgeInline = false
	h2 := l.questionHeight(broken)

	if h2 <= h1 {
		t.Errorf("expected next-line badge to add height, got %v vs %v", h2, h1)
	}
}
