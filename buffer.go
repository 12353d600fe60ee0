package glint

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Buffer is a 2D grid of cells that painted trees are drawn into.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a new buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	return &Buffer{
		cells:  cells,
		width:  width,
		height: height,
	}
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates.
// Returns an empty cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set sets the cell at the given coordinates.
// Does nothing if out of bounds.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// Clear resets every cell.
func (b *Buffer) Clear() {
	empty := EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
}

// WriteString writes s at the given coordinates, using at most maxWidth
// columns. Wide runes take two columns; the second is a continuation cell
// holding rune 0. Returns the number of columns written.
func (b *Buffer) WriteString(x, y int, s string, style Style, maxWidth int) int {
	written := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if written+w > maxWidth || !b.InBounds(x+w-1, y) {
			break
		}
		b.Set(x, y, NewCell(r, style))
		if w == 2 {
			b.Set(x+1, y, NewCell(0, style))
		}
		x += w
		written += w
	}
	return written
}

// BorderStyle defines the characters used for drawing borders.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// Standard border styles.
var (
	BorderSingle = BorderStyle{
		Horizontal:  '─',
		Vertical:    '│',
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
	}
	BorderRounded = BorderStyle{
		Horizontal:  '─',
		Vertical:    '│',
		TopLeft:     '╭',
		TopRight:    '╮',
		BottomLeft:  '╰',
		BottomRight: '╯',
	}
	BorderDouble = BorderStyle{
		Horizontal:  '═',
		Vertical:    '║',
		TopLeft:     '╔',
		TopRight:    '╗',
		BottomLeft:  '╚',
		BottomRight: '╝',
	}
	BorderASCII = BorderStyle{
		Horizontal:  '-',
		Vertical:    '|',
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
	}
)

// BorderFromLipgloss takes the first rune of each lipgloss border edge.
func BorderFromLipgloss(lb lipgloss.Border) BorderStyle {
	first := func(s string, fallback rune) rune {
		for _, r := range s {
			return r
		}
		return fallback
	}
	return BorderStyle{
		Horizontal:  first(lb.Top, ' '),
		Vertical:    first(lb.Left, ' '),
		TopLeft:     first(lb.TopLeft, ' '),
		TopRight:    first(lb.TopRight, ' '),
		BottomLeft:  first(lb.BottomLeft, ' '),
		BottomRight: first(lb.BottomRight, ' '),
	}
}

// DrawBorder draws the given sides of a border around the rectangle.
func (b *Buffer) DrawBorder(x, y, width, height int, border BorderStyle, sides Sides, style Style) {
	if width <= 0 || height <= 0 {
		return
	}
	right, bottom := x+width-1, y+height-1

	if sides.Has(SideTop) {
		for i := x; i <= right; i++ {
			b.Set(i, y, NewCell(border.Horizontal, style))
		}
	}
	if sides.Has(SideBottom) {
		for i := x; i <= right; i++ {
			b.Set(i, bottom, NewCell(border.Horizontal, style))
		}
	}
	if sides.Has(SideLeft) {
		for i := y; i <= bottom; i++ {
			b.Set(x, i, NewCell(border.Vertical, style))
		}
	}
	if sides.Has(SideRight) {
		for i := y; i <= bottom; i++ {
			b.Set(right, i, NewCell(border.Vertical, style))
		}
	}

	// Corners only where both edges meet.
	if sides.Has(SideTop | SideLeft) {
		b.Set(x, y, NewCell(border.TopLeft, style))
	}
	if sides.Has(SideTop | SideRight) {
		b.Set(right, y, NewCell(border.TopRight, style))
	}
	if sides.Has(SideBottom | SideLeft) {
		b.Set(x, bottom, NewCell(border.BottomLeft, style))
	}
	if sides.Has(SideBottom | SideRight) {
		b.Set(right, bottom, NewCell(border.BottomRight, style))
	}
}

// GetLine returns the content of a single line as a string (trimmed).
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var line strings.Builder
	for x := 0; x < b.width; x++ {
		if r := b.cells[b.index(x, y)].Rune; r != 0 {
			line.WriteRune(r)
		}
	}
	return strings.TrimRight(line.String(), " ")
}

// String returns the buffer contents as a string (for testing/debugging).
// Each row is separated by a newline. Trailing spaces are trimmed.
func (b *Buffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.GetLine(y)
	}
	return strings.Join(lines, "\n")
}

// Render returns the buffer contents with styles applied as ANSI sequences.
// Runs of cells sharing a style are rendered together.
func (b *Buffer) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		current := DefaultStyle()
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == DefaultStyle() {
				out.WriteString(run.String())
			} else {
				out.WriteString(current.Lipgloss().Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < b.width; x++ {
			c := b.cells[b.index(x, y)]
			if c.Rune == 0 {
				continue
			}
			if c.Style != current {
				flush()
				current = c.Style
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return out.String()
}
