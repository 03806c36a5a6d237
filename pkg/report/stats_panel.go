package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/jobmate/reportgen/pkg/session"
)

const (
	panelRowHeight   = 13.0
	panelBulletR     = 1.6
	panelTrackHeight = 2.4
	panelLabelSize   = 10.0
	panelScoreSize   = 10.0
	panelOverallSize = 11.0
)

var (
	trackColor      = [3]int{229, 231, 235}
	panelLabelColor = [3]int{55, 65, 81}
	panelMutedColor = [3]int{156, 163, 175}
)

// StatsPanel draws the category score rows starting at (x, y) across width
// w and returns the final Y. All three canonical categories render; a row
// without data shows "N/A" over an unfilled track. An overall average line
// follows when any category has data.
func StatsPanel(pdf *fpdf.Fpdf, x, y, w float64, rows []session.CategoryScore) float64 {
	for _, row := range rows {
		y = statsRow(pdf, x, y, w, row)
	}

	if overall, ok := session.OverallAverage(rows); ok {
		y += 2
		pdf.SetFont("Helvetica", "B", panelOverallSize)
		pdf.SetTextColor(headingColor[0], headingColor[1], headingColor[2])
		line := fmt.Sprintf("Overall Average: %.1f/10", overall)
		y += panelOverallSize * 25.4 / 72
		pdf.Text(x, y, line)
		y += 2
	}

	return y
}

func statsRow(pdf *fpdf.Fpdf, x, y, w float64, row session.CategoryScore) float64 {
	textBase := y + panelLabelSize*25.4/72

	pdf.SetFillColor(row.Color[0], row.Color[1], row.Color[2])
	pdf.Circle(x+panelBulletR, textBase-panelBulletR, panelBulletR, "F")

	label := row.Name
	if row.Count > 0 {
		noun := "answers"
		if row.Count == 1 {
			noun = "answer"
		}
		label = fmt.Sprintf("%s (%d %s)", row.Name, row.Count, noun)
	}
	pdf.SetFont("Helvetica", "", panelLabelSize)
	pdf.SetTextColor(panelLabelColor[0], panelLabelColor[1], panelLabelColor[2])
	pdf.Text(x+2*panelBulletR+2, textBase, label)

	score := "N/A"
	if row.Count > 0 {
		score = fmt.Sprintf("%.1f/10", row.AvgScore)
	}
	pdf.SetFont("Helvetica", "B", panelScoreSize)
	if row.Count == 0 {
		pdf.SetTextColor(panelMutedColor[0], panelMutedColor[1], panelMutedColor[2])
	}
	scoreW := pdf.GetStringWidth(score)
	pdf.Text(x+w-scoreW, textBase, score)

	// Progress track with proportional fill, clamped to the track.
	trackY := textBase + 2
	pdf.SetFillColor(trackColor[0], trackColor[1], trackColor[2])
	pdf.RoundedRect(x, trackY, w, panelTrackHeight, panelTrackHeight/2, "1234", "F")

	if row.Count > 0 {
		frac := row.AvgScore / 10
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		if fill := w * frac; fill > 0 {
			pdf.SetFillColor(row.Color[0], row.Color[1], row.Color[2])
			pdf.RoundedRect(x, trackY, fill, panelTrackHeight, panelTrackHeight/2, "1234", "F")
		}
	}

	return y + panelRowHeight
}

// statsPanelHeight measures the panel for page-break decisions without
// drawing. Mirrors StatsPanel's advancement exactly.
func statsPanelHeight(rows []session.CategoryScore) float64 {
	h := float64(len(rows)) * panelRowHeight
	if _, ok := session.OverallAverage(rows); ok {
		h += 4 + panelOverallSize*25.4/72
	}
	return h
}

// StatsPanelBlock places the panel through the layout engine so it cannot
// straddle a page boundary.
func (l *layout) StatsPanelBlock(rows []session.CategoryScore) {
	h := statsPanelHeight(rows)
	l.ensureSpace(h + blockSpacing)
	l.cursor.Y = StatsPanel(l.pdf, l.opts.Margin, l.cursor.Y, l.contentWidth(), rows)
	l.cursor.Y += blockSpacing
}
