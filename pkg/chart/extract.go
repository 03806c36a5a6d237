package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jobmate/reportgen/pkg/errors"
)

// ExtractorConfig controls the extraction canvas and overlay behavior.
type ExtractorConfig struct {
	// Width and Height are the logical canvas size in display units.
	Width  int
	Height int
	// Oversample is the backing-store upscale factor.
	Oversample int
	// MinSegmentPct is the share below which donut segments get no tooltip.
	MinSegmentPct float64
	// LabelOffset is the radial distance between geometry and its label.
	LabelOffset float64
}

// DefaultExtractorConfig returns the canvas and overlay defaults used for
// report embedding.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Width:         520,
		Height:        300,
		Oversample:    DefaultOversample,
		MinSegmentPct: 5,
		LabelOffset:   14,
	}
}

// Extractor turns chart sources into annotated PNG images. Extraction is
// deterministic: identical input yields identical bytes.
type Extractor struct {
	cfg ExtractorConfig
}

// NewExtractor builds an extractor, filling zero config fields from the
// defaults.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	def := DefaultExtractorConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Oversample < 1 {
		cfg.Oversample = def.Oversample
	}
	if cfg.MinSegmentPct <= 0 {
		cfg.MinSegmentPct = def.MinSegmentPct
	}
	if cfg.LabelOffset <= 0 {
		cfg.LabelOffset = def.LabelOffset
	}
	return &Extractor{cfg: cfg}
}

// Extract renders the source off-screen, annotates every surviving data
// point, and returns the encoded PNG.
func (e *Extractor) Extract(src *Source) ([]byte, error) {
	if src == nil {
		return nil, errors.NewChartError(errors.ErrChartSourceMissing, "nil chart source")
	}

	return RenderStaged(e.cfg.Width, e.cfg.Height, e.cfg.Oversample, func(s *Surface) error {
		scales, err := Render(s, src)
		if err != nil {
			return err
		}
		if src.Type == KindDonut {
			e.annotateDonut(s, src, scales)
		} else {
			e.annotateCartesian(s, src, scales)
		}
		return nil
	})
}

var (
	markerStroke = [3]int{255, 255, 255}
	tooltipBg    = [3]int{31, 41, 55}
	tooltipText  = [3]int{255, 255, 255}
)

// annotateCartesian draws a marker and a value label at every point that
// carries a value and lands on the canvas.
func (e *Extractor) annotateCartesian(s *Surface, src *Source, scales Scales) {
	for d, ds := range src.Datasets {
		color := seriesColor(ds, d)
		for i, p := range ds.Data {
			v, ok := p.Value()
			if !ok {
				continue
			}
			x, y := scales.PixelForValue(d, i, v)
			if !s.Contains(x, y) {
				continue
			}

			s.SetColor(color)
			s.FillCircle(x, y, 3.5)
			s.SetColor(markerStroke)
			s.SetStroke(1.2)
			s.StrokeCircle(x, y, 3.5)

			e.drawValueLabel(s, formatValue(v), x, y-e.cfg.LabelOffset)
		}
	}
}

// drawValueLabel draws a single-line rounded pill centered at (x, y),
// clamped onto the canvas.
func (e *Extractor) drawValueLabel(s *Surface, text string, x, y float64) {
	s.SetFont(true, 9)
	tw, th := s.MeasureText(text)

	const pad = 4.0
	w := tw + 2*pad
	h := th + 2*pad
	bx := clamp(x-w/2, 1, float64(s.DisplayWidth())-w-1)
	by := clamp(y-h/2, 1, float64(s.DisplayHeight())-h-1)

	s.SetColorAlpha(tooltipBg, 235)
	s.FillRoundedRect(bx, by, w, h, 3)
	s.SetColor(tooltipText)
	s.DrawTextAnchored(text, bx+w/2, by+h/2, 0.5, 0.35)
}

// annotateDonut attaches a two-line tooltip to every segment large enough
// to label, anchored at the bisecting angle outside the ring.
func (e *Extractor) annotateDonut(s *Surface, src *Source, scales Scales) {
	meta := scales.SeriesMeta(0)
	if len(meta.Arcs) == 0 {
		return
	}

	total := 0.0
	for _, p := range src.Datasets[0].Data {
		if v, ok := p.Value(); ok && v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return
	}

	arcIdx := 0
	for i, p := range src.Datasets[0].Data {
		v, ok := p.Value()
		if !ok || v <= 0 {
			continue
		}
		if arcIdx >= len(meta.Arcs) {
			break
		}
		arc := meta.Arcs[arcIdx]
		arcIdx++

		pct := v / total * 100
		if pct < e.cfg.MinSegmentPct {
			continue
		}

		label := ""
		if i < len(src.Labels) {
			label = src.Labels[i]
		}
		e.drawSegmentTooltip(s, arc, label, v, pct)
	}
}

func (e *Extractor) drawSegmentTooltip(s *Surface, arc Arc, label string, v, pct float64) {
	mid := arc.Mid()

	// Near the twelve and six o'clock positions a full radial offset pushes
	// the box off the canvas, so pull it in.
	offset := e.cfg.LabelOffset
	if math.Abs(math.Sin(mid)) > 0.85 {
		offset /= 2
	}

	ax := arc.CX + math.Cos(mid)*(arc.Radius+offset)
	ay := arc.CY + math.Sin(mid)*(arc.Radius+offset)
	if !s.Contains(ax, ay) {
		return
	}

	line1 := label
	line2 := fmt.Sprintf("%s (%.0f%%)", formatValue(v), pct)

	s.SetFont(true, 9)
	w1, lh := s.MeasureText(line1)
	s.SetFont(false, 9)
	w2, _ := s.MeasureText(line2)

	const pad = 5.0
	w := math.Max(w1, w2) + 2*pad
	h := 2*lh + 3*pad

	bx := ax - w/2
	if math.Cos(mid) > 0.3 {
		bx = ax
	} else if math.Cos(mid) < -0.3 {
		bx = ax - w
	}
	by := ay - h/2
	bx = clamp(bx, 1, float64(s.DisplayWidth())-w-1)
	by = clamp(by, 1, float64(s.DisplayHeight())-h-1)

	s.SetColorAlpha(tooltipBg, 235)
	s.FillRoundedRect(bx, by, w, h, 4)

	s.SetColor(tooltipText)
	s.SetFont(true, 9)
	s.DrawTextAnchored(line1, bx+pad, by+pad+lh/2, 0, 0.35)
	s.SetFont(false, 9)
	s.DrawTextAnchored(line2, bx+pad, by+2*pad+lh*1.5, 0, 0.35)
}

// formatValue renders a number the way chart labels expect: no exponent,
// at most two decimals, trailing zeros trimmed.
func formatValue(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
