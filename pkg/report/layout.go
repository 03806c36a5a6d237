package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/jobmate/reportgen/pkg/errors"
	"github.com/jobmate/reportgen/pkg/session"
)

// Cursor tracks where the next block will be drawn.
type Cursor struct {
	Page int
	Y    float64
}

// layout is the page-breaking engine. It owns every page break: the
// underlying document has auto page break disabled, and each block is
// measured with the exact fonts it draws with before any ink is committed.
type layout struct {
	pdf    *fpdf.Fpdf
	opts   Options
	pageW  float64
	pageH  float64
	cursor Cursor

	imageCount int
}

const (
	// breakThreshold is how far the cursor must have advanced past the top
	// margin before a non-fitting block triggers a page break. Blocks that
	// do not fit even at the top of a page draw with overflow instead of
	// looping on AddPage.
	breakThreshold = 10.0

	partPadding  = 2.0
	blockSpacing = 6.0
	badgeSpacing = 2.0
)

var (
	bodyColor      = [3]int{55, 65, 81}
	headingColor   = [3]int{17, 24, 39}
	mutedColor     = [3]int{107, 114, 128}
	separatorColor = [3]int{229, 231, 235}
)

func newLayout(pdf *fpdf.Fpdf, opts Options) *layout {
	w, h := pdf.GetPageSize()
	return &layout{pdf: pdf, opts: opts, pageW: w, pageH: h}
}

// lineHeight converts a point size to a millimeter line advance using the
// configured multiplier.
func (l *layout) lineHeight(size float64) float64 {
	return size * 25.4 / 72 * l.opts.LineHeight
}

func (l *layout) contentWidth() float64 {
	return l.pageW - 2*l.opts.Margin
}

func (l *layout) remaining() float64 {
	return l.pageH - l.opts.Margin - l.cursor.Y
}

// newPage starts a fresh page and resets the cursor to the top margin.
func (l *layout) newPage() {
	l.pdf.AddPage()
	l.cursor.Page++
	l.cursor.Y = l.opts.Margin
}

// ensureSpace breaks to a new page when the block does not fit and the
// cursor has advanced past the minimum threshold. Returns true when a break
// happened. A block taller than a full page body draws with overflow.
func (l *layout) ensureSpace(needed float64) bool {
	if needed <= l.remaining() {
		return false
	}
	if l.cursor.Y <= l.opts.Margin+breakThreshold {
		return false
	}
	l.newPage()
	return true
}

// setFont applies a Helvetica variant and text color.
func (l *layout) setFont(style string, size float64, color [3]int) {
	l.pdf.SetFont("Helvetica", style, size)
	l.pdf.SetTextColor(color[0], color[1], color[2])
}

// wrap splits text with the currently selected font. The same call backs
// both measurement and drawing so heights are exact.
func (l *layout) wrap(text string) []string {
	if text == "" {
		return nil
	}
	return l.pdf.SplitText(text, l.contentWidth())
}

// drawLines draws pre-wrapped lines at the cursor, advancing per line.
func (l *layout) drawLines(lines []string, size float64) {
	lh := l.lineHeight(size)
	for _, line := range lines {
		l.cursor.Y += lh
		l.pdf.Text(l.opts.Margin, l.cursor.Y, line)
	}
}

// questionParts is a question block's measured sub-parts. Measurement and
// drawing walk the same struct so the height comparison is exact.
type questionParts struct {
	question   []string
	answer     []string
	evaluation []string
	scoreLine  string

	badgeInline bool
	badgeW      float64
}

func (l *layout) questionFontSize() float64 { return l.opts.FontSize }
func (l *layout) bodyFontSize() float64     { return l.opts.FontSize - 1 }
func (l *layout) badgeFontSize() float64    { return l.opts.FontSize - 3 }

// measureQuestion wraps every sub-part with its drawing font and decides
// badge placement for the last question line.
func (l *layout) measureQuestion(item session.FeedbackItem, n int) questionParts {
	var parts questionParts

	l.setFont("B", l.questionFontSize(), headingColor)
	parts.question = l.wrap(fmt.Sprintf("Q%d: %s", n, session.StripOrdinal(item.Question)))

	if item.Type != "" && len(parts.question) > 0 {
		last := parts.question[len(parts.question)-1]

		// BadgeWidth switches to the badge font; reselect the question font
		// before measuring the line it shares.
		parts.badgeW = BadgeWidth(l.pdf, item.Type, l.badgeFontSize())
		l.setFont("B", l.questionFontSize(), headingColor)
		lastW := l.pdf.GetStringWidth(last)

		parts.badgeInline = lastW+badgeSpacing+parts.badgeW <= l.contentWidth()
	}

	l.setFont("", l.bodyFontSize(), bodyColor)
	if item.Answer != "" {
		parts.answer = l.wrap("Answer: " + item.Answer)
	}
	if item.Evaluation != "" {
		parts.evaluation = l.wrap("Feedback: " + item.Evaluation)
	}

	if item.HasScore() {
		parts.scoreLine = fmt.Sprintf("Score: %.1f/10", *item.Score)
	}

	return parts
}

// height sums per-line heights for every sub-part plus inter-part padding.
func (l *layout) questionHeight(parts questionParts) float64 {
	qlh := l.lineHeight(l.questionFontSize())
	blh := l.lineHeight(l.bodyFontSize())

	h := float64(len(parts.question)) * qlh
	if parts.badgeW > 0 && !parts.badgeInline {
		h += qlh
	}
	if len(parts.answer) > 0 {
		h += partPadding + float64(len(parts.answer))*blh
	}
	if len(parts.evaluation) > 0 {
		h += partPadding + float64(len(parts.evaluation))*blh
	}
	if parts.scoreLine != "" {
		h += partPadding + blh
	}
	return h
}

// QuestionBlock measures one feedback item, breaks the page if needed, and
// draws the question, badge, answer, evaluation and score sequentially. A
// light separator follows when room remains.
func (l *layout) QuestionBlock(item session.FeedbackItem, n int) {
	parts := l.measureQuestion(item, n)
	l.ensureSpace(l.questionHeight(parts) + blockSpacing)

	qlh := l.lineHeight(l.questionFontSize())
	blh := l.lineHeight(l.bodyFontSize())

	l.setFont("B", l.questionFontSize(), headingColor)
	for i, line := range parts.question {
		l.cursor.Y += qlh
		l.pdf.Text(l.opts.Margin, l.cursor.Y, line)

		if parts.badgeW > 0 && parts.badgeInline && i == len(parts.question)-1 {
			lastW := l.pdf.GetStringWidth(line)
			DrawBadge(l.pdf, item.Type, l.opts.Margin+lastW+badgeSpacing, l.cursor.Y, l.badgeFontSize())
		}
	}
	if parts.badgeW > 0 && !parts.badgeInline {
		l.cursor.Y += qlh
		DrawBadge(l.pdf, item.Type, l.opts.Margin, l.cursor.Y, l.badgeFontSize())
	}

	if len(parts.answer) > 0 {
		l.cursor.Y += partPadding
		l.setFont("", l.bodyFontSize(), bodyColor)
		l.drawLines(parts.answer, l.bodyFontSize())
	}
	if len(parts.evaluation) > 0 {
		l.cursor.Y += partPadding
		l.setFont("", l.bodyFontSize(), bodyColor)
		l.drawLines(parts.evaluation, l.bodyFontSize())
	}
	if parts.scoreLine != "" {
		l.cursor.Y += partPadding + blh
		l.setFont("B", l.bodyFontSize(), headingColor)
		l.pdf.Text(l.opts.Margin, l.cursor.Y, parts.scoreLine)
	}

	if l.remaining() > blockSpacing {
		y := l.cursor.Y + blockSpacing/2
		l.pdf.SetDrawColor(separatorColor[0], separatorColor[1], separatorColor[2])
		l.pdf.SetLineWidth(0.2)
		l.pdf.Line(l.opts.Margin, y, l.pageW-l.opts.Margin, y)
	}
	l.cursor.Y += blockSpacing
}

// SectionHeader draws a bold section heading with its own spacing.
func (l *layout) SectionHeader(text string) {
	size := l.opts.FontSize + 3
	lh := l.lineHeight(size)
	l.ensureSpace(lh + blockSpacing)

	l.setFont("B", size, headingColor)
	l.cursor.Y += lh
	l.pdf.Text(l.opts.Margin, l.cursor.Y, text)
	l.cursor.Y += blockSpacing / 2
}

// ChartBlock draws a bold title and the chart image scaled to fit the
// content width and the remaining page height, preserving aspect ratio.
// Images are rescaled, never cropped.
func (l *layout) ChartBlock(title string, png []byte) error {
	l.imageCount++
	name := fmt.Sprintf("chart-%d", l.imageCount)

	info := l.pdf.RegisterImageOptionsReader(name,
		fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	if err := l.pdf.Error(); err != nil {
		return errors.WrapLayout(err, errors.ErrLayoutImageFailed, "chart image rejected").
			WithContext("chart", title)
	}
	if info == nil || info.Height() <= 0 {
		return errors.NewLayoutError(errors.ErrLayoutImageFailed, "chart image has no size").
			WithContext("chart", title)
	}
	aspect := info.Width() / info.Height()

	titleSize := l.opts.FontSize + 1
	titleH := l.lineHeight(titleSize)

	w := l.contentWidth()
	h := w / aspect
	l.ensureSpace(titleH + partPadding + h + blockSpacing)

	// Height cap after a possible break: shrink to the space left,
	// re-deriving width from the aspect ratio.
	if avail := l.remaining() - titleH - partPadding - blockSpacing; h > avail && avail > 0 {
		h = avail
		w = h * aspect
	}

	l.setFont("B", titleSize, headingColor)
	l.cursor.Y += titleH
	l.pdf.Text(l.opts.Margin, l.cursor.Y, title)
	l.cursor.Y += partPadding

	x := l.opts.Margin + (l.contentWidth()-w)/2
	l.pdf.ImageOptions(name, x, l.cursor.Y, w, h, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	l.cursor.Y += h + blockSpacing

	return nil
}
