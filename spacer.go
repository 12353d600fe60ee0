package glint

// Spacer is an empty leaf. It takes its minimum size, or with Fill
// whatever bounded space it is offered.
type Spacer struct {
	Sizing
	Fill bool
}

// NewSpacer returns a spacer with a fixed size.
func NewSpacer(width, height int) *Spacer {
	return &Spacer{Sizing: Sizing{Width: Dim(width), Height: Dim(height)}}
}

// Layout implements Layout.
func (s *Spacer) Layout(nodes *LayoutNodes) (Size, error) {
	c := s.Sizing.Apply(nodes.Constraints)
	if c.IsZero() {
		return ZeroSize, nil
	}
	size := Size{Width: c.MinWidth, Height: c.MinHeight}
	if s.Fill {
		if c.MaxWidth != Unbounded {
			size.Width = c.MaxWidth
		}
		if c.MaxHeight != Unbounded {
			size.Height = c.MaxHeight
		}
	}
	return s.Sizing.Settle(size, c), nil
}
