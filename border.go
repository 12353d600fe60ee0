package glint

import "github.com/charmbracelet/lipgloss"

// BorderLayout insets its single child by a fixed frame. BorderSize is the
// width and height the frame takes from the space, never optional.
type BorderLayout struct {
	Sizing
	BorderSize Size
}

// Layout implements Layout.
func (b BorderLayout) Layout(nodes *LayoutNodes) (Size, error) {
	return insetLayout(nodes, b.Sizing, b.BorderSize)
}

// Sides is a set of border edges.
type Sides uint8

const (
	SideTop Sides = 1 << iota
	SideRight
	SideBottom
	SideLeft

	SideNone Sides = 0
	SideAll        = SideTop | SideRight | SideBottom | SideLeft
)

// Has reports whether every side in o is set.
func (s Sides) Has(o Sides) bool {
	return s&o == o
}

// Size returns the overhead the sides take: one column per vertical edge and
// one row per horizontal edge.
func (s Sides) Size() Size {
	var size Size
	if s.Has(SideLeft) {
		size.Width++
	}
	if s.Has(SideRight) {
		size.Width++
	}
	if s.Has(SideTop) {
		size.Height++
	}
	if s.Has(SideBottom) {
		size.Height++
	}
	return size
}

// Border is a drawn frame around one child.
type Border struct {
	BorderLayout
	Chars BorderStyle
	Sides Sides
	Style Style
}

// NewBorder creates a border drawn with chars on the given sides.
func NewBorder(chars BorderStyle, sides Sides) *Border {
	return &Border{
		BorderLayout: BorderLayout{BorderSize: sides.Size()},
		Chars:        chars,
		Sides:        sides,
		Style:        DefaultStyle(),
	}
}

// NewLipglossBorder creates a border from a lipgloss border definition, with
// the overhead lipgloss would give it.
func NewLipglossBorder(lb lipgloss.Border) *Border {
	b := NewBorder(BorderFromLipgloss(lb), SideAll)
	b.BorderSize = BorderSizeOf(lb)
	return b
}

// BorderSizeOf returns the overhead of a full lipgloss border.
func BorderSizeOf(lb lipgloss.Border) Size {
	style := lipgloss.NewStyle().Border(lb)
	return Size{
		Width:  style.GetHorizontalBorderSize(),
		Height: style.GetVerticalBorderSize(),
	}
}

// Paint draws the frame and then the child inside it.
func (b *Border) Paint(buf *Buffer, n *Node, x, y int) {
	buf.DrawBorder(x, y, n.Size.Width, n.Size.Height, b.Chars, b.Sides, b.Style)
	dx, dy := 0, 0
	if b.Sides.Has(SideLeft) {
		dx = 1
	}
	if b.Sides.Has(SideTop) {
		dy = 1
	}
	for _, c := range n.Children {
		Paint(buf, c, x+dx, y+dy)
	}
}
