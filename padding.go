package glint

// Padding insets its single child by empty cells on each side.
type Padding struct {
	Sizing
	Top, Right, Bottom, Left int
}

// Pad returns a padding with the same amount on every side.
func Pad(n int) *Padding {
	return &Padding{Top: n, Right: n, Bottom: n, Left: n}
}

func (p *Padding) overhead() Size {
	return Size{Width: p.Left + p.Right, Height: p.Top + p.Bottom}
}

// Layout implements Layout.
func (p *Padding) Layout(nodes *LayoutNodes) (Size, error) {
	return insetLayout(nodes, p.Sizing, p.overhead())
}

// Paint draws the child offset by the top and left padding.
func (p *Padding) Paint(buf *Buffer, n *Node, x, y int) {
	for _, c := range n.Children {
		Paint(buf, c, x+p.Left, y+p.Top)
	}
}
