package chart

import (
	"bytes"
	"sync"

	"github.com/fogleman/gg"

	"github.com/jobmate/reportgen/pkg/errors"
)

// Surface is an off-screen raster render target whose backing-store pixel
// size exceeds its logical display size by a fixed oversample factor. All
// drawing happens in display coordinates; the surface multiplies by the
// backing/display ratio so output stays sharp at print resolution.
type Surface struct {
	ctx *gg.Context

	displayW int
	displayH int
	backingW int
	backingH int
}

// DefaultOversample is the backing-store upscale applied for output
// sharpness, independent of any display scaling upstream.
const DefaultOversample = 2

// NewSurface creates a surface with the given logical display size. An
// oversample < 1 falls back to DefaultOversample.
func NewSurface(displayW, displayH, oversample int) *Surface {
	if oversample < 1 {
		oversample = DefaultOversample
	}
	s := &Surface{
		displayW: displayW,
		displayH: displayH,
		backingW: displayW * oversample,
		backingH: displayH * oversample,
	}
	s.ctx = gg.NewContext(s.backingW, s.backingH)
	s.Reset()
	return s
}

// DisplayWidth returns the logical width in display units.
func (s *Surface) DisplayWidth() int { return s.displayW }

// DisplayHeight returns the logical height in display units.
func (s *Surface) DisplayHeight() int { return s.displayH }

// BackingWidth returns the pixel width of the backing store.
func (s *Surface) BackingWidth() int { return s.backingW }

// BackingHeight returns the pixel height of the backing store.
func (s *Surface) BackingHeight() int { return s.backingH }

// ScaleX returns the backing/display width ratio.
func (s *Surface) ScaleX() float64 {
	if s.displayW == 0 {
		return 1
	}
	return float64(s.backingW) / float64(s.displayW)
}

// ScaleY returns the backing/display height ratio.
func (s *Surface) ScaleY() float64 {
	if s.displayH == 0 {
		return 1
	}
	return float64(s.backingH) / float64(s.displayH)
}

// Contains reports whether a display-space point lies on the surface.
func (s *Surface) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= float64(s.displayW) && y <= float64(s.displayH)
}

// Reset returns the surface to known presentation defaults: white
// background, black ink, hairline stroke, regular face.
func (s *Surface) Reset() {
	s.ctx.SetRGB255(255, 255, 255)
	s.ctx.Clear()
	s.ctx.SetRGB255(0, 0, 0)
	s.ctx.SetLineWidth(s.ScaleX())
	s.SetFont(false, 12)
}

// SetColor sets the drawing color from an RGB triple.
func (s *Surface) SetColor(c [3]int) {
	s.ctx.SetRGB255(c[0], c[1], c[2])
}

// SetColorAlpha sets the drawing color with an alpha channel.
func (s *Surface) SetColorAlpha(c [3]int, a int) {
	s.ctx.SetRGBA255(c[0], c[1], c[2], a)
}

// SetFont selects the regular or bold face at a display-unit size.
func (s *Surface) SetFont(bold bool, size float64) {
	s.ctx.SetFontFace(face(bold, size*s.ScaleY()))
}

// SetStroke sets the stroke width in display units.
func (s *Surface) SetStroke(w float64) {
	s.ctx.SetLineWidth(w * s.ScaleX())
}

// FillRect fills an axis-aligned rectangle given in display units.
func (s *Surface) FillRect(x, y, w, h float64) {
	sx, sy := s.ScaleX(), s.ScaleY()
	s.ctx.DrawRectangle(x*sx, y*sy, w*sx, h*sy)
	s.ctx.Fill()
}

// FillRoundedRect fills a rounded rectangle given in display units.
func (s *Surface) FillRoundedRect(x, y, w, h, r float64) {
	sx, sy := s.ScaleX(), s.ScaleY()
	s.ctx.DrawRoundedRectangle(x*sx, y*sy, w*sx, h*sy, r*sx)
	s.ctx.Fill()
}

// StrokeLine strokes a line between two display-space points.
func (s *Surface) StrokeLine(x1, y1, x2, y2 float64) {
	sx, sy := s.ScaleX(), s.ScaleY()
	s.ctx.DrawLine(x1*sx, y1*sy, x2*sx, y2*sy)
	s.ctx.Stroke()
}

// FillCircle fills a circle centered at a display-space point.
func (s *Surface) FillCircle(x, y, r float64) {
	s.ctx.DrawCircle(x*s.ScaleX(), y*s.ScaleY(), r*s.ScaleX())
	s.ctx.Fill()
}

// StrokeCircle strokes a circle centered at a display-space point.
func (s *Surface) StrokeCircle(x, y, r float64) {
	s.ctx.DrawCircle(x*s.ScaleX(), y*s.ScaleY(), r*s.ScaleX())
	s.ctx.Stroke()
}

// FillArcSlice fills a filled pie slice from angle a1 to a2 (radians).
func (s *Surface) FillArcSlice(cx, cy, r, a1, a2 float64) {
	sx, sy := s.ScaleX(), s.ScaleY()
	s.ctx.MoveTo(cx*sx, cy*sy)
	s.ctx.DrawArc(cx*sx, cy*sy, r*sx, a1, a2)
	s.ctx.ClosePath()
	s.ctx.Fill()
}

// MeasureText returns the rendered size of a string in display units
// using the currently selected face.
func (s *Surface) MeasureText(text string) (w, h float64) {
	bw, bh := s.ctx.MeasureString(text)
	return bw / s.ScaleX(), bh / s.ScaleY()
}

// DrawTextAnchored draws a string at a display-space point with the given
// anchor (0,0 = top-left of the text box, 0.5,0.5 = centered).
func (s *Surface) DrawTextAnchored(text string, x, y, ax, ay float64) {
	s.ctx.DrawStringAnchored(text, x*s.ScaleX(), y*s.ScaleY(), ax, ay)
}

// EncodePNG serializes the backing store as PNG bytes.
func (s *Surface) EncodePNG() ([]byte, error) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer encodeBuffers.Put(buf)

	if err := s.ctx.EncodePNG(buf); err != nil {
		return nil, errors.WrapChart(err, errors.ErrChartEncodeFailed, "png encode failed")
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// encodeBuffers pools PNG encode buffers across staged renders.
var encodeBuffers = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// RenderStaged acquires a scoped off-screen surface with presentation
// state reset to known defaults, runs fn against it, and extracts the PNG.
// Pooled encode buffers are released on every exit path, including when fn
// fails or panics.
func RenderStaged(displayW, displayH, oversample int, fn func(*Surface) error) ([]byte, error) {
	if displayW <= 0 || displayH <= 0 {
		return nil, errors.NewChartErrorf(errors.ErrChartRenderFailed,
			"invalid surface size %dx%d", displayW, displayH)
	}

	surface := NewSurface(displayW, displayH, oversample)
	if err := fn(surface); err != nil {
		return nil, err
	}
	return surface.EncodePNG()
}
