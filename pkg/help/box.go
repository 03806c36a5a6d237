package help

import "strings"

// Box renders bordered sections with a fixed inner width, using rounded
// corners.
type Box struct {
	Width int
}

// NewBox creates a box with the given inner content width.
func NewBox(width int) *Box {
	return &Box{Width: width}
}

// Top returns the top border: ╭───────────╮
func (b *Box) Top() string {
	return BoxTopLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxTopRight
}

// Bottom returns the bottom border: ╰───────────╯
func (b *Box) Bottom() string {
	return BoxBottomLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxBottomRight
}

// Row returns a left-aligned content row padded to the box width.
func (b *Box) Row(content string) string {
	vis := visibleLength(content)
	if vis >= b.Width {
		return BoxVertical + content + BoxVertical
	}
	return BoxVertical + content + strings.Repeat(" ", b.Width-vis) + BoxVertical
}

// RowCenter returns a content row with the content centered.
func (b *Box) RowCenter(content string) string {
	vis := visibleLength(content)
	if vis >= b.Width {
		return BoxVertical + content + BoxVertical
	}
	total := b.Width - vis
	left := total / 2
	return BoxVertical + strings.Repeat(" ", left) + content + strings.Repeat(" ", total-left) + BoxVertical
}

// visibleLength returns the length of a string excluding ANSI escape codes.
func visibleLength(s string) int {
	length := 0
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		length++
	}
	return length
}

// PadRight pads a string to the given visible width.
func PadRight(s string, width int) string {
	vis := visibleLength(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}
