package glint

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Text is a leaf displaying one or more lines.
type Text struct {
	Content string
	Style   Style
}

// NewText creates a text leaf with the default style.
func NewText(content string) *Text {
	return &Text{Content: content, Style: DefaultStyle()}
}

func (t *Text) lines() []string {
	if t.Content == "" {
		return nil
	}
	return strings.Split(t.Content, "\n")
}

// Measure returns the natural size of the content in cells.
func (t *Text) Measure() Size {
	lines := t.lines()
	size := Size{Height: len(lines)}
	for _, line := range lines {
		size.Width = max(size.Width, runewidth.StringWidth(line))
	}
	return size
}

// Layout implements Layout. Content larger than the maximums is clipped.
func (t *Text) Layout(nodes *LayoutNodes) (Size, error) {
	c := nodes.Constraints
	if c.IsZero() {
		return ZeroSize, nil
	}
	size := t.Measure()
	size.Width = max(min(size.Width, c.MaxWidth), c.MinWidth)
	size.Height = max(min(size.Height, c.MaxHeight), c.MinHeight)
	return size, nil
}

// Paint writes the lines that fit inside the laid out size.
func (t *Text) Paint(buf *Buffer, n *Node, x, y int) {
	for i, line := range t.lines() {
		if i >= n.Size.Height {
			return
		}
		buf.WriteString(x, y+i, line, t.Style, n.Size.Width)
	}
}
