package chart

import (
	"math"

	"github.com/jobmate/reportgen/pkg/errors"
)

// Scales maps data values to display-space pixel positions for a rendered
// chart. Overlay annotation reads geometry only through this interface, so
// annotations align with the drawn chart by construction.
type Scales interface {
	// PixelForValue returns the anchor position for the given point.
	PixelForValue(dataset, index int, v float64) (x, y float64)
	// SeriesMeta describes one dataset's rendered geometry.
	SeriesMeta(dataset int) SeriesMeta
}

// SeriesMeta carries per-dataset render metadata.
type SeriesMeta struct {
	Label string
	// Arcs holds donut segment geometry, indexed by label. Empty for
	// cartesian charts.
	Arcs []Arc
}

// Arc is one donut segment. Angles are radians with 0 at three o'clock and
// positive sweep clockwise in image coordinates.
type Arc struct {
	CX, CY float64
	Start  float64
	End    float64
	Radius float64
}

// Mid returns the bisecting angle of the segment.
func (a Arc) Mid() float64 {
	return (a.Start + a.End) / 2
}

// Render draws the chart source onto the surface and returns the scales
// describing where each point landed.
func Render(s *Surface, src *Source) (Scales, error) {
	if src == nil || len(src.Datasets) == 0 {
		return nil, errors.NewChartError(errors.ErrChartSourceMissing, "chart has no datasets")
	}
	if _, ok := src.MaxValue(); !ok {
		return nil, errors.NewChartError(errors.ErrChartNoData, "chart has no usable data points").
			WithContext("title", src.Title)
	}

	switch src.Type {
	case KindBar, KindLine:
		return renderCartesian(s, src)
	case KindDonut:
		return renderDonut(s, src)
	default:
		return nil, errors.NewChartErrorf(errors.ErrChartUnknownKind,
			"unknown chart kind %q", string(src.Type))
	}
}

const (
	marginLeft   = 44.0
	marginRight  = 16.0
	marginBottom = 30.0
	marginTop    = 16.0
	titleHeight  = 24.0
	gridDivs     = 5
)

var (
	gridColor  = [3]int{229, 231, 235}
	axisColor  = [3]int{107, 114, 128}
	labelColor = [3]int{55, 65, 81}
	titleColor = [3]int{17, 24, 39}
)

// cartesianScales positions bar and line points over a shared category
// axis. Bars anchor at the bar's top center, line points at the vertex.
type cartesianScales struct {
	src     *Source
	kind    Kind
	plotX   float64
	plotY   float64
	plotW   float64
	plotH   float64
	axisMax float64
	groupW  float64
	barW    float64
}

func (c *cartesianScales) PixelForValue(dataset, index int, v float64) (x, y float64) {
	frac := v / c.axisMax
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	y = c.plotY + c.plotH*(1-frac)

	x = c.plotX + (float64(index)+0.5)*c.groupW
	if c.kind == KindBar {
		n := len(c.src.Datasets)
		inner := (c.groupW - float64(n)*c.barW) / 2
		x = c.plotX + float64(index)*c.groupW + inner + (float64(dataset)+0.5)*c.barW
	}
	return x, y
}

func (c *cartesianScales) SeriesMeta(dataset int) SeriesMeta {
	if dataset < 0 || dataset >= len(c.src.Datasets) {
		return SeriesMeta{}
	}
	return SeriesMeta{Label: c.src.Datasets[dataset].Label}
}

func renderCartesian(s *Surface, src *Source) (Scales, error) {
	w := float64(s.DisplayWidth())
	h := float64(s.DisplayHeight())

	top := marginTop
	if src.Title != "" {
		top += titleHeight
	}

	max, _ := src.MaxValue()
	sc := &cartesianScales{
		src:     src,
		kind:    src.Type,
		plotX:   marginLeft,
		plotY:   top,
		plotW:   w - marginLeft - marginRight,
		plotH:   h - top - marginBottom,
		axisMax: niceCeil(max),
	}
	cols := len(src.Labels)
	if cols == 0 {
		cols = maxPoints(src)
	}
	sc.groupW = sc.plotW / float64(cols)
	sc.barW = sc.groupW * 0.7 / float64(len(src.Datasets))

	drawTitle(s, src.Title, w)
	drawGrid(s, sc)

	switch src.Type {
	case KindBar:
		drawBars(s, sc)
	case KindLine:
		drawLines(s, sc)
	}

	drawCategoryLabels(s, sc, h)
	return sc, nil
}

func drawTitle(s *Surface, title string, w float64) {
	if title == "" {
		return
	}
	s.SetFont(true, 14)
	s.SetColor(titleColor)
	s.DrawTextAnchored(title, w/2, marginTop+titleHeight/2, 0.5, 0.35)
}

func drawGrid(s *Surface, sc *cartesianScales) {
	s.SetFont(false, 9)
	s.SetStroke(1)
	for i := 0; i <= gridDivs; i++ {
		frac := float64(i) / gridDivs
		y := sc.plotY + sc.plotH*(1-frac)

		s.SetColor(gridColor)
		s.StrokeLine(sc.plotX, y, sc.plotX+sc.plotW, y)

		s.SetColor(axisColor)
		s.DrawTextAnchored(formatValue(sc.axisMax*frac), sc.plotX-6, y, 1, 0.35)
	}

	s.SetColor(axisColor)
	s.StrokeLine(sc.plotX, sc.plotY, sc.plotX, sc.plotY+sc.plotH)
	s.StrokeLine(sc.plotX, sc.plotY+sc.plotH, sc.plotX+sc.plotW, sc.plotY+sc.plotH)
}

func drawBars(s *Surface, sc *cartesianScales) {
	baseline := sc.plotY + sc.plotH
	for d, ds := range sc.src.Datasets {
		s.SetColor(seriesColor(ds, d))
		for i, p := range ds.Data {
			v, ok := p.Value()
			if !ok {
				continue
			}
			x, y := sc.PixelForValue(d, i, v)
			s.FillRect(x-sc.barW/2, y, sc.barW, baseline-y)
		}
	}
}

func drawLines(s *Surface, sc *cartesianScales) {
	for d, ds := range sc.src.Datasets {
		color := seriesColor(ds, d)
		s.SetColor(color)
		s.SetStroke(2)

		var prevX, prevY float64
		havePrev := false
		for i, p := range ds.Data {
			v, ok := p.Value()
			if !ok {
				// Break the polyline at gaps instead of bridging them.
				havePrev = false
				continue
			}
			x, y := sc.PixelForValue(d, i, v)
			if havePrev {
				s.StrokeLine(prevX, prevY, x, y)
			}
			prevX, prevY = x, y
			havePrev = true
		}

		for i, p := range ds.Data {
			v, ok := p.Value()
			if !ok {
				continue
			}
			x, y := sc.PixelForValue(d, i, v)
			s.FillCircle(x, y, 2.5)
		}
	}
}

func drawCategoryLabels(s *Surface, sc *cartesianScales, h float64) {
	s.SetFont(false, 9)
	s.SetColor(labelColor)
	for i, label := range sc.src.Labels {
		x := sc.plotX + (float64(i)+0.5)*sc.groupW
		s.DrawTextAnchored(label, x, h-marginBottom/2, 0.5, 0.35)
	}
}

// donutScales exposes segment arcs for the single dataset a donut carries.
type donutScales struct {
	src  *Source
	arcs []Arc
}

func (d *donutScales) PixelForValue(dataset, index int, v float64) (x, y float64) {
	if index < 0 || index >= len(d.arcs) {
		return -1, -1
	}
	a := d.arcs[index]
	mid := a.Mid()
	return a.CX + math.Cos(mid)*a.Radius, a.CY + math.Sin(mid)*a.Radius
}

func (d *donutScales) SeriesMeta(dataset int) SeriesMeta {
	meta := SeriesMeta{Arcs: d.arcs}
	if dataset >= 0 && dataset < len(d.src.Datasets) {
		meta.Label = d.src.Datasets[dataset].Label
	}
	return meta
}

const donutHoleRatio = 0.55

func renderDonut(s *Surface, src *Source) (Scales, error) {
	w := float64(s.DisplayWidth())
	h := float64(s.DisplayHeight())

	top := marginTop
	if src.Title != "" {
		top += titleHeight
	}
	drawTitle(s, src.Title, w)

	ds := src.Datasets[0]
	total := 0.0
	for _, p := range ds.Data {
		if v, ok := p.Value(); ok && v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return nil, errors.NewChartError(errors.ErrChartNoData, "donut values sum to zero").
			WithContext("title", src.Title)
	}

	cx := w / 2
	cy := top + (h-top-marginTop)/2
	outer := math.Min(w, h-top-marginTop)/2 - 36

	// Segments start at twelve o'clock and sweep clockwise.
	sc := &donutScales{src: src}
	angle := -math.Pi / 2
	for i, p := range ds.Data {
		v, ok := p.Value()
		if !ok || v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		s.SetColor(segmentColor(i))
		s.FillArcSlice(cx, cy, outer, angle, angle+sweep)
		sc.arcs = append(sc.arcs, Arc{
			CX:     cx,
			CY:     cy,
			Start:  angle,
			End:    angle + sweep,
			Radius: outer,
		})
		angle += sweep
	}

	// Punch the hole.
	s.SetColor([3]int{255, 255, 255})
	s.FillCircle(cx, cy, outer*donutHoleRatio)

	return sc, nil
}

// niceCeil rounds up to a visually clean axis maximum.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	base := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*base >= v {
			return m * base
		}
	}
	return 10 * base
}

func maxPoints(src *Source) int {
	n := 1
	for _, ds := range src.Datasets {
		if len(ds.Data) > n {
			n = len(ds.Data)
		}
	}
	return n
}
