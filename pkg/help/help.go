// Package help provides formatted help output for the interactive console.
//
// Help output groups commands by category with box-drawing separators and
// ANSI styling: green headers, cyan command names, yellow examples, gray
// descriptions. Output is designed for 80-column terminals and degrades to
// plain readable text where colors are unsupported.
package help

import "io"

// Box drawing characters for visual structure.
const (
	BoxTopLeft     = "╭"
	BoxTopRight    = "╮"
	BoxBottomLeft  = "╰"
	BoxBottomRight = "╯"

	BoxHorizontal = "─"
	BoxVertical   = "│"

	BoxTeeLeft  = "├"
	BoxTeeRight = "┤"
)

// ANSI color codes for styled output.
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorGray   = "\033[90m"
)

// Renderer formats and writes help output.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a help renderer that writes to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}
