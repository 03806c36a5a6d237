package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/jobmate/reportgen/pkg/errors"
)

func barSource() *Source {
	return &Source{
		Type:   KindBar,
		Title:  "Scores by Category",
		Labels: []string{"HR", "Technical", "Non-Technical"},
		Datasets: []Dataset{
			{Label: "Average Score", Data: []PointValue{Number(6), Number(7.3), Number(5)}},
		},
	}
}

func donutSource() *Source {
	return &Source{
		Type:   KindDonut,
		Labels: []string{"HR", "Technical", "Non-Technical"},
		Datasets: []Dataset{
			{Data: []PointValue{Number(2), Number(5), Number(3)}},
		},
	}
}

func TestRenderBarScalesWithinPlot(t *testing.T) {
	s := NewSurface(520, 300, 2)
	scales, err := Render(s, barSource())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range []float64{6, 7.3, 5} {
		x, y := scales.PixelForValue(0, i, v)
		if !s.Contains(x, y) {
			t.Errorf("point %d maps off-canvas: (%v, %v)", i, x, y)
		}
	}

	// Larger values sit higher on the canvas.
	_, y6 := scales.PixelForValue(0, 0, 6)
	_, y73 := scales.PixelForValue(0, 1, 7.3)
	if y73 >= y6 {
		t.Errorf("expected 7.3 above 6.0, got y=%v vs y=%v", y73, y6)
	}
}

func TestRenderDonutArcs(t *testing.T) {
	s := NewSurface(400, 300, 2)
	scales, err := Render(s, donutSource())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := scales.SeriesMeta(0)
	if len(meta.Arcs) != 3 {
		t.Fatalf("expected 3 arcs, got %d", len(meta.Arcs))
	}

	// Segments tile the full circle starting at twelve o'clock.
	if math.Abs(meta.Arcs[0].Start-(-math.Pi/2)) > 1e-9 {
		t.Errorf("expected first arc to start at -pi/2, got %v", meta.Arcs[0].Start)
	}
	sweep := 0.0
	for i, arc := range meta.Arcs {
		if arc.End <= arc.Start {
			t.Errorf("arc %d has non-positive sweep", i)
		}
		sweep += arc.End - arc.Start
	}
	if math.Abs(sweep-2*math.Pi) > 1e-9 {
		t.Errorf("expected arcs to sum to 2*pi, got %v", sweep)
	}

	// Proportions follow the values: 5/10 of the circle for Technical.
	tech := meta.Arcs[1]
	if math.Abs((tech.End-tech.Start)-math.Pi) > 1e-9 {
		t.Errorf("expected half-circle segment, got sweep %v", tech.End-tech.Start)
	}
}

func TestRenderSkipsInvalidPoints(t *testing.T) {
	src := barSource()
	src.Datasets[0].Data[1] = Invalid()

	s := NewSurface(520, 300, 2)
	if _, err := Render(s, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	s := NewSurface(520, 300, 2)

	if _, err := Render(s, nil); !errors.IsCode(err, errors.ErrChartSourceMissing) {
		t.Errorf("expected CHART_SOURCE_MISSING, got %v", err)
	}

	empty := &Source{Type: KindBar, Datasets: []Dataset{{Data: []PointValue{Invalid()}}}}
	if _, err := Render(s, empty); !errors.IsCode(err, errors.ErrChartNoData) {
		t.Errorf("expected CHART_NO_DATA, got %v", err)
	}

	unknown := barSource()
	unknown.Type = Kind("scatter")
	if _, err := Render(s, unknown); !errors.IsCode(err, errors.ErrChartUnknownKind) {
		t.Errorf("expected CHART_UNKNOWN_KIND, got %v", err)
	}
}

func TestRenderStagedProducesPNG(t *testing.T) {
	data, err := RenderStaged(200, 100, 2, func(s *Surface) error {
		s.SetColor([3]int{99, 102, 241})
		s.FillRect(10, 10, 50, 50)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 200 {
		t.Errorf("expected 400x200 backing store, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderStagedInvalidSize(t *testing.T) {
	if _, err := RenderStaged(0, 100, 2, func(*Surface) error { return nil }); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestSurfaceScale(t *testing.T) {
	s := NewSurface(100, 50, 3)
	if s.ScaleX() != 3 || s.ScaleY() != 3 {
		t.Errorf("expected 3x scale, got %v/%v", s.ScaleX(), s.ScaleY())
	}
	if s.Contains(101, 10) {
		t.Error("expected point past the right edge to be outside")
	}
	if !s.Contains(100, 50) {
		t.Error("expected the corner to be inside")
	}
}

func TestNiceCeil(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{7.3, 10},
		{10, 10},
		{14, 20},
		{23, 25},
		{80, 100},
	}
	for _, tt := range tests {
		if got := niceCeil(tt.in); got != tt.want {
			t.Errorf("niceCeil(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
