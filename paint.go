package glint

// Painter draws a laid out node at the given origin. Layouts that also
// implement Painter are drawn by Paint.
type Painter interface {
	Paint(buf *Buffer, n *Node, x, y int)
}

// Paint draws n and its subtree into buf. Nodes skipped by the most recent
// layout pass are not drawn. A node whose layout is not a Painter draws its
// children at its own origin.
func Paint(buf *Buffer, n *Node, x, y int) {
	if n == nil || !n.Laid() || n.Size == ZeroSize {
		return
	}
	if p, ok := n.Layout.(Painter); ok {
		p.Paint(buf, n, x, y)
		return
	}
	for _, c := range n.Children {
		Paint(buf, c, x, y)
	}
}

// Render runs a layout pass for root inside a width x height screen and
// paints the result into a new buffer.
func (e *Engine) Render(root *Node, width, height int) (*Buffer, error) {
	if _, err := e.Layout(root, NewConstraints(width, height)); err != nil {
		return nil, err
	}
	buf := NewBuffer(width, height)
	Paint(buf, root, 0, 0)
	return buf, nil
}
