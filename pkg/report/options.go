// Package report assembles interview session reports into PDF documents:
// chart sections with annotated images, a category statistics panel, and
// one laid-out block per question/answer/feedback group.
package report

import (
	"encoding/json"

	"github.com/jobmate/reportgen/pkg/errors"
	"github.com/jobmate/reportgen/pkg/session"
)

// Options configures one report generation.
type Options struct {
	// Title is the document title drawn on the first page.
	Title string

	// Margin is the page margin in millimeters.
	Margin float64

	// FontSize is the base body font size in points.
	FontSize float64

	// LineHeight is the line height multiplier applied to the font size.
	LineHeight float64

	// IncludeCharts controls the chart sections.
	IncludeCharts bool

	// IncludeQuestions controls the question/answer blocks.
	IncludeQuestions bool

	// AllQuestions overrides the session feedback list when non-empty.
	AllQuestions []session.FeedbackItem

	// SessionData supplies pre-aggregated scores. When nil the same numbers
	// are derived from the raw feedback.
	SessionData *session.Statistics

	// ChartFontsDir points at replacement TTFs for chart labels.
	ChartFontsDir string
}

// DefaultOptions returns the standard report configuration.
func DefaultOptions() Options {
	return Options{
		Title:            "Interview Report",
		Margin:           20,
		FontSize:         12,
		LineHeight:       1.5,
		IncludeCharts:    true,
		IncludeQuestions: true,
	}
}

// normalized fills zero-value fields from the defaults.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Title == "" {
		o.Title = def.Title
	}
	if o.Margin <= 0 {
		o.Margin = def.Margin
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	if o.LineHeight <= 0 {
		o.LineHeight = def.LineHeight
	}
	return o
}

// optionsWire mirrors Options for JSON decoding. The booleans are pointers
// so an absent field can default to true; unrecognized fields are ignored.
type optionsWire struct {
	Title            string                 `json:"title"`
	Margin           float64                `json:"margin"`
	FontSize         float64                `json:"fontSize"`
	LineHeight       float64                `json:"lineHeight"`
	IncludeCharts    *bool                  `json:"includeCharts"`
	IncludeQuestions *bool                  `json:"includeQuestions"`
	AllQuestions     []session.FeedbackItem `json:"allQuestions"`
	SessionData      *session.Statistics    `json:"sessionData"`
	ChartFontsDir    string                 `json:"chartFontsDir"`
}

// ParseOptions decodes a JSON options object, applying defaults for unset
// fields. An empty payload yields DefaultOptions.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if len(data) == 0 {
		return opts, nil
	}

	var wire optionsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return opts, errors.WrapLayout(err, errors.ErrLayoutInvalidOptions, "invalid report options")
	}

	if wire.Title != "" {
		opts.Title = wire.Title
	}
	if wire.Margin > 0 {
		opts.Margin = wire.Margin
	}
	if wire.FontSize > 0 {
		opts.FontSize = wire.FontSize
	}
	if wire.LineHeight > 0 {
		opts.LineHeight = wire.LineHeight
	}
	if wire.IncludeCharts != nil {
		opts.IncludeCharts = *wire.IncludeCharts
	}
	if wire.IncludeQuestions != nil {
		opts.IncludeQuestions = *wire.IncludeQuestions
	}
	opts.AllQuestions = wire.AllQuestions
	opts.SessionData = wire.SessionData
	opts.ChartFontsDir = wire.ChartFontsDir

	return opts, nil
}
