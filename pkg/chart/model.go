// Package chart renders interview statistics charts to raster images and
// extracts annotated PNGs for embedding in reports. The wire model mirrors
// the Chart.js shape the statistics endpoint emits.
package chart

import (
	"encoding/json"
	"math"
)

// Kind identifies the chart geometry.
type Kind string

const (
	// KindBar is a grouped vertical bar chart.
	KindBar Kind = "bar"
	// KindDonut is a segmented ring chart.
	KindDonut Kind = "donut"
	// KindLine is a cartesian polyline chart.
	KindLine Kind = "line"
)

// Valid returns true for a recognized chart kind.
func (k Kind) Valid() bool {
	switch k {
	case KindBar, KindDonut, KindLine:
		return true
	default:
		return false
	}
}

// Source is one chart's data in the Chart.js-compatible wire format.
type Source struct {
	Type     Kind      `json:"type"`
	Title    string    `json:"title,omitempty"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one data series. Color is RGB; a zero color falls back to the
// package palette by dataset index.
type Dataset struct {
	Label string       `json:"label,omitempty"`
	Data  []PointValue `json:"data"`
	Color [3]int       `json:"-"`
}

// pointKind tags the PointValue union.
type pointKind int

const (
	pointInvalid pointKind = iota
	pointNumber
	pointNamed
	pointPair
)

// PointValue is a tagged union over the three point encodings the wire
// format allows: a bare number, an object with a y field, or a two-element
// [x, y] pair. Invalid points (null, strings, NaN, wrong shapes) carry no
// value and are skipped silently downstream.
type PointValue struct {
	kind pointKind
	x, y float64
}

// Number wraps a bare numeric point.
func Number(v float64) PointValue {
	return PointValue{kind: pointNumber, y: v}
}

// NamedPoint wraps an object-encoded point ({y: v}).
func NamedPoint(y float64) PointValue {
	return PointValue{kind: pointNamed, y: y}
}

// Pair wraps an [x, y] pair point.
func Pair(x, y float64) PointValue {
	return PointValue{kind: pointPair, x: x, y: y}
}

// Invalid returns a point that carries no value.
func Invalid() PointValue {
	return PointValue{}
}

// Value normalizes the union to a single numeric value. The second return
// is false for invalid points and for non-finite values.
func (p PointValue) Value() (float64, bool) {
	if p.kind == pointInvalid {
		return 0, false
	}
	if math.IsNaN(p.y) || math.IsInf(p.y, 0) {
		return 0, false
	}
	return p.y, true
}

// X returns the pair x coordinate; ok is false unless the point is a pair.
func (p PointValue) X() (float64, bool) {
	if p.kind != pointPair {
		return 0, false
	}
	return p.x, true
}

// UnmarshalJSON accepts the three point encodings. Anything else decodes as
// an invalid point, never as an error: a malformed data point must not
// abort the whole chart.
func (p *PointValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*p = Number(num)
		return nil
	}

	var named struct {
		Y *float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &named); err == nil && named.Y != nil {
		*p = NamedPoint(*named.Y)
		return nil
	}

	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil && len(pair) == 2 {
		*p = Pair(pair[0], pair[1])
		return nil
	}

	*p = Invalid()
	return nil
}

// MarshalJSON writes the point back in its original encoding. Invalid
// points serialize as null.
func (p PointValue) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case pointNumber:
		return json.Marshal(p.y)
	case pointNamed:
		return json.Marshal(struct {
			Y float64 `json:"y"`
		}{p.y})
	case pointPair:
		return json.Marshal([2]float64{p.x, p.y})
	default:
		return []byte("null"), nil
	}
}

// MaxValue returns the largest usable value across all datasets.
// The second return is false when no point carries a value.
func (s *Source) MaxValue() (float64, bool) {
	var max float64
	found := false
	for _, ds := range s.Datasets {
		for _, p := range ds.Data {
			v, ok := p.Value()
			if !ok {
				continue
			}
			if !found || v > max {
				max = v
				found = true
			}
		}
	}
	return max, found
}

// palette is the default series color rotation.
var palette = [][3]int{
	{99, 102, 241},  // indigo
	{16, 185, 129},  // emerald
	{245, 158, 11},  // amber
	{239, 68, 68},   // red
	{59, 130, 246},  // blue
	{168, 85, 247},  // purple
}

// seriesColor returns the dataset color, falling back to the palette.
func seriesColor(ds Dataset, idx int) [3]int {
	if ds.Color != [3]int{} {
		return ds.Color
	}
	return palette[idx%len(palette)]
}

// segmentColor returns the color for a donut segment by label index.
func segmentColor(idx int) [3]int {
	return palette[idx%len(palette)]
}
