// Package progress renders a terminal progress bar for report generation.
// The bar is driven by the builder's per-section callback: each update
// carries the stage name and the done/total counts.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI escape sequences for terminal control.
const (
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	carriageReturn = "\r"

	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	symbolSuccess = "✓"
	symbolFailure = "✗"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// Config holds progress bar options.
type Config struct {
	// Label is the fixed text before the bar.
	Label string

	// Width is the bar width in characters. Defaults to 20.
	Width int

	// ShowCount displays the done/total count, e.g. "(3/7)".
	ShowCount bool

	// ShowElapsed displays time since Start, e.g. "(2.4s)".
	ShowElapsed bool

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// IsTTY overrides terminal auto-detection. When false the bar prints
	// one plain line per stage instead of redrawing in place.
	IsTTY *bool
}

// DefaultConfig returns the standard bar configuration.
func DefaultConfig() Config {
	return Config{
		Label:       "Generating report",
		Width:       20,
		ShowCount:   true,
		ShowElapsed: true,
		Writer:      os.Stderr,
	}
}

// Bar is a thread-safe progress bar fed by stage updates.
type Bar struct {
	mu sync.Mutex

	config  Config
	stage   string
	done    int
	total   int
	started time.Time
	active  bool
	isTTY   bool
	lastLen int
}

// New creates a bar with the given label and default options.
func New(label string) *Bar {
	cfg := DefaultConfig()
	if label != "" {
		cfg.Label = label
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a bar, filling zero config fields with defaults.
func NewWithConfig(config Config) *Bar {
	if config.Width <= 0 {
		config.Width = 20
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}

	isTTY := isTerminalWriter(config.Writer)
	if config.IsTTY != nil {
		isTTY = *config.IsTTY
	}

	return &Bar{
		config: config,
		isTTY:  isTTY,
	}
}

// isTerminalWriter reports whether the writer is a terminal file.
func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Start begins tracking. Safe to call on an already running bar.
func (b *Bar) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active {
		return
	}

	b.active = true
	b.started = time.Now()
	b.done = 0
	b.total = 0
	b.stage = ""

	if b.isTTY {
		fmt.Fprint(b.config.Writer, hideCursor)
		b.redraw()
	}
}

// Update records one stage advancement. The signature matches the report
// builder's progress callback so a bar method can be passed directly.
func (b *Bar) Update(stage string, done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active {
		return
	}

	b.stage = stage
	b.done = done
	b.total = total

	if b.isTTY {
		b.redraw()
	} else {
		fmt.Fprintln(b.config.Writer, b.line())
	}
}

// IsActive reports whether the bar is running.
func (b *Bar) IsActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Current returns the last done/total counts.
func (b *Bar) Current() (done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done, b.total
}

// Complete stops the bar with a success line.
func (b *Bar) Complete(message string) {
	b.finish(message, symbolSuccess, colorGreen)
}

// Fail stops the bar with a failure line.
func (b *Bar) Fail(message string) {
	b.finish(message, symbolFailure, colorRed)
}

func (b *Bar) finish(message, symbol, color string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if message == "" {
		message = b.config.Label + " done"
	}

	var elapsed time.Duration
	if !b.started.IsZero() {
		elapsed = time.Since(b.started)
	}
	b.active = false

	suffix := ""
	if b.config.ShowElapsed && elapsed > 0 {
		suffix = " " + formatElapsed(elapsed)
	}

	if b.isTTY {
		b.clearLine()
		fmt.Fprint(b.config.Writer, showCursor)
		fmt.Fprintf(b.config.Writer, "%s%s%s %s%s\n", color, symbol, colorReset, message, suffix)
	} else {
		fmt.Fprintf(b.config.Writer, "%s %s%s\n", symbol, message, suffix)
	}
}

// line builds the textual state: Label [████░░░░] (3/7) title (1.2s)
// Caller must hold the mutex.
func (b *Bar) line() string {
	var parts []string

	if b.config.Label != "" {
		parts = append(parts, b.config.Label)
	}
	parts = append(parts, b.bar())

	if b.config.ShowCount && b.total > 0 {
		parts = append(parts, fmt.Sprintf("(%d/%d)", b.done, b.total))
	}
	if b.stage != "" {
		parts = append(parts, b.stage)
	}
	if b.config.ShowElapsed && !b.started.IsZero() {
		parts = append(parts, formatElapsed(time.Since(b.started)))
	}

	return strings.Join(parts, " ")
}

// bar renders the filled/empty cells. Caller must hold the mutex.
func (b *Bar) bar() string {
	width := b.config.Width
	filled := 0
	if b.total > 0 {
		filled = (b.done * width) / b.total
		if filled > width {
			filled = width
		}
	}

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat(barFilled, filled))
	sb.WriteString(strings.Repeat(barEmpty, width-filled))
	sb.WriteString("]")
	return sb.String()
}

// redraw overwrites the current terminal line. Caller must hold the mutex.
func (b *Bar) redraw() {
	output := b.line()
	if b.lastLen > 0 {
		spaces := strings.Repeat(" ", b.lastLen)
		fmt.Fprint(b.config.Writer, carriageReturn+spaces+carriageReturn)
	}
	fmt.Fprint(b.config.Writer, output)
	b.lastLen = len(output)
}

// clearLine wipes the in-place bar. Caller must hold the mutex.
func (b *Bar) clearLine() {
	if b.lastLen > 0 {
		spaces := strings.Repeat(" ", b.lastLen)
		fmt.Fprint(b.config.Writer, carriageReturn+spaces+carriageReturn)
		b.lastLen = 0
	}
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("(%dm %ds)", minutes, seconds)
}
