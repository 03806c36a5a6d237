package report

import (
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// badgeStyle is the resolved presentation for one category tag.
type badgeStyle struct {
	text string
	bg   [3]int
	fg   [3]int
}

var white = [3]int{255, 255, 255}

// badgeStyles is the fixed tag lookup. Unknown tags fall through to a
// title-cased rendition on neutral gray.
var badgeStyles = map[string]badgeStyle{
	"hr":             {"HR", [3]int{99, 102, 241}, white},
	"technical":      {"Technical", [3]int{16, 185, 129}, white},
	"tech_theory":    {"Technical (Theory)", [3]int{16, 185, 129}, white},
	"tech_practical": {"Technical (Practical)", [3]int{5, 150, 105}, white},
	"non_technical":  {"Non-Technical", [3]int{245, 158, 11}, white},
}

var neutralGray = [3]int{107, 114, 128}

var titleCaser = cases.Title(language.English)

// badgeFor resolves a category tag to its badge style.
func badgeFor(tag string) badgeStyle {
	t := strings.ToLower(strings.TrimSpace(tag))
	if style, ok := badgeStyles[t]; ok {
		return style
	}
	text := titleCaser.String(strings.ReplaceAll(t, "_", " "))
	if text == "" {
		text = "General"
	}
	return badgeStyle{text: text, bg: neutralGray, fg: white}
}

const (
	badgePadX = 2.0
	badgePadY = 1.2
	// badgeAscent is the fraction of text height the badge box extends above
	// the caller's baseline, so the badge sits aligned with inline text.
	badgeAscent = 0.78
	badgeRadius = 1.5
)

// badgeMetrics selects the badge font and measures the box. Measuring and
// drawing share this one routine so BadgeWidth is exact for DrawBadge.
func badgeMetrics(pdf *fpdf.Fpdf, tag string, size float64) (badgeStyle, float64) {
	style := badgeFor(tag)
	pdf.SetFont("Helvetica", "B", size)
	return style, pdf.GetStringWidth(style.text) + 2*badgePadX
}

// BadgeWidth returns the box width DrawBadge will occupy for the tag at the
// given font size. Callers use it to decide inline versus next-line
// placement before committing ink.
func BadgeWidth(pdf *fpdf.Fpdf, tag string, size float64) float64 {
	_, w := badgeMetrics(pdf, tag, size)
	return w
}

// DrawBadge draws a category badge anchored to the caller's text baseline
// and returns the box width. The font state is left on the badge font.
func DrawBadge(pdf *fpdf.Fpdf, tag string, x, baselineY, size float64) float64 {
	style, w := badgeMetrics(pdf, tag, size)

	textH := size * 25.4 / 72
	boxH := textH + 2*badgePadY
	top := baselineY - textH*badgeAscent - badgePadY

	pdf.SetFillColor(style.bg[0], style.bg[1], style.bg[2])
	pdf.RoundedRect(x, top, w, boxH, badgeRadius, "1234", "F")

	pdf.SetTextColor(style.fg[0], style.fg[1], style.fg[2])
	pdf.Text(x+badgePadX, baselineY, style.text)

	return w
}
