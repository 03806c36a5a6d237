package report

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jobmate/reportgen/pkg/chart"
	"github.com/jobmate/reportgen/pkg/errors"
	"github.com/jobmate/reportgen/pkg/session"
)

// ProgressFunc receives per-section advancement during a build.
type ProgressFunc func(stage string, done, total int)

// Builder assembles one session into a PDF document. A Builder is not safe
// for concurrent builds; each generation should use its own instance.
type Builder struct {
	// Progress, when set, is called after each completed section.
	Progress ProgressFunc

	opts      Options
	extractor *chart.Extractor
	now       func() time.Time
}

// Result carries the generated document and section counts.
type Result struct {
	PDF             []byte
	Pages           int
	ChartSections   int
	QuestionBlocks  int
	SkippedSections int
}

// NewBuilder creates a builder with normalized options.
func NewBuilder(opts Options) *Builder {
	opts = opts.normalized()
	if opts.ChartFontsDir != "" {
		if err := chart.LoadFontsDir(opts.ChartFontsDir); err != nil {
			log.Printf("[report] chart fonts from %s: %v", opts.ChartFontsDir, err)
		}
	}
	return &Builder{
		opts:      opts,
		extractor: chart.NewExtractor(chart.DefaultExtractorConfig()),
		now:       time.Now,
	}
}

// Build generates the report and returns the PDF bytes.
func (b *Builder) Build(s *session.Session) ([]byte, error) {
	res, err := b.BuildReport(s)
	if err != nil {
		return nil, err
	}
	return res.PDF, nil
}

// chartSection pairs a section title with its chart source. The categorical
// section also carries the stats panel.
type chartSection struct {
	title string
	src   *chart.Source
	panel bool
}

// BuildReport generates the report with section counts. Section order is
// fixed: title and timestamp, chart sections, then the question blocks.
// A failing chart section is logged and skipped; the build continues.
func (b *Builder) BuildReport(s *session.Session) (*Result, error) {
	if s == nil {
		return nil, errors.NewSessionError(errors.ErrSessionEmpty, "no session to report on")
	}

	items := s.Feedback
	if len(b.opts.AllQuestions) > 0 {
		items = b.opts.AllQuestions
	}

	rows := session.Resolve(items, b.opts.SessionData)

	var charts []chartSection
	if b.opts.IncludeCharts {
		charts = b.chartSections(rows, items)
	}

	questions := items
	if !b.opts.IncludeQuestions {
		questions = nil
	}

	total := 1 + len(charts) + len(questions)
	done := 0
	step := func(stage string) {
		done++
		if b.Progress != nil {
			b.Progress(stage, done, total)
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(b.opts.Title, true)
	pdf.SetCreationDate(b.now())
	pdf.SetAutoPageBreak(false, 0)

	l := newLayout(pdf, b.opts)
	l.newPage()

	res := &Result{}

	b.titleSection(l, s)
	step("title")

	for _, cs := range charts {
		if err := b.chartSection(l, cs, rows); err != nil {
			log.Printf("[report] chart section %q skipped: %v", cs.title, err)
			res.SkippedSections++
		} else {
			res.ChartSections++
		}
		step(cs.title)
	}

	if len(questions) > 0 {
		l.SectionHeader("Interview Questions and Answers")
		for i, item := range questions {
			l.QuestionBlock(item, i+1)
			res.QuestionBlocks++
			step(fmt.Sprintf("question %d", i+1))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.WrapLayout(err, errors.ErrLayoutDocumentFailed, "pdf serialization failed")
	}

	res.PDF = buf.Bytes()
	res.Pages = pdf.PageCount()
	return res, nil
}

func (b *Builder) titleSection(l *layout, s *session.Session) {
	l.setFont("B", 18, headingColor)
	lh := l.lineHeight(18)
	l.cursor.Y += lh
	l.pdf.Text(l.opts.Margin, l.cursor.Y, b.opts.Title)

	l.setFont("", 11, mutedColor)
	sub := s.Title()
	if s.InterviewType != "" {
		sub = fmt.Sprintf("%s (%s interview)", sub, s.InterviewType)
	}
	l.cursor.Y += l.lineHeight(11)
	l.pdf.Text(l.opts.Margin, l.cursor.Y, sub)

	l.cursor.Y += l.lineHeight(9)
	l.setFont("", 9, mutedColor)
	stamp := fmt.Sprintf("Generated on %s", b.now().Format("January 2, 2006 at 15:04"))
	l.pdf.Text(l.opts.Margin, l.cursor.Y, stamp)

	l.cursor.Y += blockSpacing
}

func (b *Builder) chartSection(l *layout, cs chartSection, rows []session.CategoryScore) error {
	png, err := b.extractor.Extract(cs.src)
	if err != nil {
		return err
	}
	if err := l.ChartBlock(cs.title, png); err != nil {
		return err
	}
	if cs.panel {
		l.StatsPanelBlock(rows)
	}
	return nil
}

// chartSections derives the chart sources from the resolved category rows
// and the raw items: a categorical bar chart (with stats panel), a donut of
// answer share per category, and a score progression line when the session
// has enough scored answers.
func (b *Builder) chartSections(rows []session.CategoryScore, items []session.FeedbackItem) []chartSection {
	var sections []chartSection

	labels := make([]string, 0, len(rows))
	scores := make([]chart.PointValue, 0, len(rows))
	counts := make([]chart.PointValue, 0, len(rows))
	haveCounts := false
	for _, row := range rows {
		labels = append(labels, row.Name)
		if row.Count > 0 {
			scores = append(scores, chart.Number(row.AvgScore))
			counts = append(counts, chart.Number(float64(row.Count)))
			haveCounts = true
		} else {
			scores = append(scores, chart.Invalid())
			counts = append(counts, chart.Invalid())
		}
	}

	bar := &chart.Source{
		Type:   chart.KindBar,
		Labels: labels,
		Datasets: []chart.Dataset{
			{Label: "Average Score", Data: scores},
		},
	}
	sections = append(sections, chartSection{"Scores by Category", bar, true})

	if haveCounts {
		donut := &chart.Source{
			Type:   chart.KindDonut,
			Labels: labels,
			Datasets: []chart.Dataset{
				{Label: "Answered", Data: counts},
			},
		}
		sections = append(sections, chartSection{"Questions by Category", donut, false})
	}

	var progression []chart.PointValue
	var progLabels []string
	scored := 0
	for i, item := range items {
		progLabels = append(progLabels, fmt.Sprintf("Q%d", i+1))
		if item.HasScore() {
			progression = append(progression, chart.Number(*item.Score))
			scored++
		} else {
			progression = append(progression, chart.Invalid())
		}
	}
	if scored >= 2 {
		line := &chart.Source{
			Type:   chart.KindLine,
			Labels: progLabels,
			Datasets: []chart.Dataset{
				{Label: "Score", Data: progression, Color: [3]int{99, 102, 241}},
			},
		}
		sections = append(sections, chartSection{"Score Progression", line, false})
	}

	return sections
}

// Generate is the boundary wrapper the CLI and API call: it builds the
// report, writes filename+".pdf", and reports success. Failures, including
// panics anywhere in the pipeline, are logged and surface as false.
func Generate(s *session.Session, filename string, opts Options) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[report] panic during generation: %v", r)
			ok = false
		}
	}()

	b := NewBuilder(opts)
	res, err := b.BuildReport(s)
	if err != nil {
		log.Printf("[report] generation failed: %v", err)
		return false
	}

	path := strings.TrimSuffix(filename, ".pdf") + ".pdf"
	if err := os.WriteFile(path, res.PDF, 0644); err != nil {
		log.Printf("[report] write %s: %v", path, err)
		return false
	}

	log.Printf("[report] wrote %s (%d pages, %d charts, %d questions)",
		path, res.Pages, res.ChartSections, res.QuestionBlocks)
	return true
}
