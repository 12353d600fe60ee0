package glint

// Direction specifies the layout direction.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Stack arranges children in a line. Each child is offered whatever is left
// of the main axis after the children before it, and the full cross axis.
type Stack struct {
	Sizing
	Direction Direction
	Gap       int
}

// VStack returns a vertical stack.
func VStack() *Stack {
	return &Stack{Direction: Vertical}
}

// HStack returns a horizontal stack.
func HStack() *Stack {
	return &Stack{Direction: Horizontal}
}

// axes splits c into main and cross axis bounds.
func (s *Stack) axes(c Constraints) (mainMax, crossMin, crossMax int) {
	if s.Direction == Horizontal {
		return c.MaxWidth, c.MinHeight, c.MaxHeight
	}
	return c.MaxHeight, c.MinWidth, c.MaxWidth
}

func (s *Stack) child(mainMax, crossMin, crossMax int) Constraints {
	if s.Direction == Horizontal {
		return Constraints{MaxWidth: mainMax, MinHeight: crossMin, MaxHeight: crossMax}
	}
	return Constraints{MinWidth: crossMin, MaxWidth: crossMax, MaxHeight: mainMax}
}

func (s *Stack) split(size Size) (main, cross int) {
	if s.Direction == Horizontal {
		return size.Width, size.Height
	}
	return size.Height, size.Width
}

func (s *Stack) join(main, cross int) Size {
	if s.Direction == Horizontal {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

// Layout implements Layout.
func (s *Stack) Layout(nodes *LayoutNodes) (Size, error) {
	constraints := s.Sizing.Apply(nodes.Constraints)
	if constraints.IsZero() {
		return ZeroSize, nil
	}

	remaining, crossMin, crossMax := s.axes(constraints)
	crossMin = min(crossMin, crossMax)
	used, cross := 0, 0

	first := true
	err := nodes.ForEach(func(child *LayoutNode) error {
		if !first && s.Gap > 0 {
			if s.Gap > remaining {
				return ErrInsufficientSpace
			}
			if remaining != Unbounded {
				remaining -= s.Gap
			}
			used += s.Gap
		}
		first = false
		if remaining == 0 || crossMax == 0 {
			return ErrInsufficientSpace
		}

		size, err := child.Layout(s.child(remaining, crossMin, crossMax))
		if err != nil {
			return err
		}
		childMain, childCross := s.split(size)
		childMain = min(childMain, remaining)
		if remaining != Unbounded {
			remaining -= childMain
		}
		used += childMain
		cross = max(cross, childCross)
		return nil
	})
	if err != nil {
		return ZeroSize, err
	}
	return s.Sizing.Settle(s.join(used, cross), constraints), nil
}

// Paint draws the children one after another along the main axis.
func (s *Stack) Paint(buf *Buffer, n *Node, x, y int) {
	for i, c := range n.Children {
		if !c.Laid() {
			break
		}
		if i > 0 {
			if s.Direction == Horizontal {
				x += s.Gap
			} else {
				y += s.Gap
			}
		}
		Paint(buf, c, x, y)
		if s.Direction == Horizontal {
			x += c.Size.Width
		} else {
			y += c.Size.Height
		}
	}
}
