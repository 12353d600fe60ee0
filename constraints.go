package glint

import (
	"fmt"
	"math"
)

// Unbounded marks an axis with no upper limit.
const Unbounded = math.MaxInt

// Constraints is the window a layout must size itself within.
// Min is normally <= Max on each axis.
type Constraints struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// ZeroConstraints means no space is available. A layout receiving it returns
// ZeroSize without touching its children.
var ZeroConstraints = Constraints{}

// NewConstraints returns loose constraints (zero minimums) with the given
// maximums. Use Unbounded for an axis without a limit.
func NewConstraints(maxWidth, maxHeight int) Constraints {
	return Constraints{MaxWidth: maxWidth, MaxHeight: maxHeight}
}

// Tight returns constraints where min equals max on both axes.
func Tight(width, height int) Constraints {
	return Constraints{
		MinWidth:  width,
		MaxWidth:  width,
		MinHeight: height,
		MaxHeight: height,
	}
}

// MakeWidthTight pins the width to n, clipped so it never exceeds the
// current max width. Height is untouched.
func (c *Constraints) MakeWidthTight(n int) {
	c.MaxWidth = min(c.MaxWidth, n)
	c.MinWidth = c.MaxWidth
}

// MakeHeightTight pins the height to n, clipped so it never exceeds the
// current max height. Width is untouched.
func (c *Constraints) MakeHeightTight(n int) {
	c.MaxHeight = min(c.MaxHeight, n)
	c.MinHeight = c.MaxHeight
}

// IsZero reports whether c equals ZeroConstraints.
func (c Constraints) IsZero() bool {
	return c == ZeroConstraints
}

// IsWidthTight reports whether the width is pinned.
func (c Constraints) IsWidthTight() bool {
	return c.MinWidth == c.MaxWidth
}

// IsHeightTight reports whether the height is pinned.
func (c Constraints) IsHeightTight() bool {
	return c.MinHeight == c.MaxHeight
}

func (c Constraints) String() string {
	return fmt.Sprintf("w=%s h=%s", axisString(c.MinWidth, c.MaxWidth), axisString(c.MinHeight, c.MaxHeight))
}

func axisString(lo, hi int) string {
	if hi == Unbounded {
		return fmt.Sprintf("%d..inf", lo)
	}
	return fmt.Sprintf("%d..%d", lo, hi)
}

// Size is the final width and height of a laid out element.
type Size struct {
	Width  int
	Height int
}

// ZeroSize is the size of an element that occupies nothing.
var ZeroSize = Size{}

// Add returns the per-axis sum of s and o.
func (s Size) Add(o Size) Size {
	return Size{Width: s.Width + o.Width, Height: s.Height + o.Height}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
