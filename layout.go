package glint

import (
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Layout sizes an element within the constraints carried by nodes.
// Children are reached through the nodes cursor, in order, once each.
type Layout interface {
	Layout(nodes *LayoutNodes) (Size, error)
}

// Node is one element of the layout tree.
type Node struct {
	Name     string
	Layout   Layout
	Children []*Node

	// Size is the result of the most recent layout pass.
	Size Size

	laid bool
}

// NewNode creates a node with the given layout and children.
func NewNode(layout Layout, children ...*Node) *Node {
	return &Node{Layout: layout, Children: children}
}

// Named sets the node name used in errors and logs.
func (n *Node) Named(name string) *Node {
	n.Name = name
	return n
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Laid reports whether the node was reached by the most recent pass.
// Nodes behind a ZeroConstraints short-circuit are not.
func (n *Node) Laid() bool {
	return n.laid
}

func (n *Node) reset() {
	n.laid = false
	n.Size = ZeroSize
	for _, c := range n.Children {
		c.reset()
	}
}

// LayoutError records which node a layout failure started at.
type LayoutError struct {
	Path string
	Err  error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout %s: %v", e.Path, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// LayoutNodes is handed to a Layout. It carries the incoming constraints and
// is the cursor over the element's children.
type LayoutNodes struct {
	Constraints Constraints

	engine   *Engine
	path     string
	children []*Node
	next     int
}

// Next calls fn with the next child. It does nothing once every child has
// been handed out. Children cannot be revisited.
func (ln *LayoutNodes) Next(fn func(child *LayoutNode) error) error {
	if ln.next >= len(ln.children) {
		return nil
	}
	i := ln.next
	ln.next++
	child := ln.children[i]
	label := child.Name
	if label == "" {
		label = strconv.Itoa(i)
	}
	return fn(&LayoutNode{
		node:   child,
		engine: ln.engine,
		path:   ln.path + "/" + label,
	})
}

// ForEach calls fn for each remaining child, stopping at the first error.
func (ln *LayoutNodes) ForEach(fn func(child *LayoutNode) error) error {
	for ln.Remaining() > 0 {
		if err := ln.Next(fn); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the total number of children.
func (ln *LayoutNodes) Len() int {
	return len(ln.children)
}

// Remaining returns how many children have not been handed out yet.
func (ln *LayoutNodes) Remaining() int {
	return len(ln.children) - ln.next
}

// LayoutNode is a child as seen by its parent's layout.
type LayoutNode struct {
	node   *Node
	engine *Engine
	path   string

	done bool
	size Size
	err  error
}

// Name returns the child's node name.
func (c *LayoutNode) Name() string {
	return c.node.Name
}

// Layout runs the child's own layout with the given constraints. The child
// is laid out once; later calls return the first result.
func (c *LayoutNode) Layout(constraints Constraints) (Size, error) {
	if c.done {
		c.engine.log.V(1).Info("child layout requested twice", "node", c.path)
		return c.size, c.err
	}
	c.done = true
	c.size, c.err = c.engine.layout(c.node, constraints, c.path)
	return c.size, c.err
}

// Engine runs layout passes.
type Engine struct {
	log    logr.Logger
	passes uint64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for layout traces.
func WithLogger(log logr.Logger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine creates a layout engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{log: logr.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Passes returns the number of layout passes run so far.
func (e *Engine) Passes() uint64 {
	return e.passes
}

// Layout runs one pass over the tree rooted at root. Failures wrap
// ErrInsufficientSpace in a *LayoutError naming the node they started at.
func (e *Engine) Layout(root *Node, constraints Constraints) (Size, error) {
	if root == nil {
		return ZeroSize, nil
	}
	e.passes++
	root.reset()
	path := root.Name
	if path == "" {
		path = "root"
	}
	return e.layout(root, constraints, path)
}

func (e *Engine) layout(n *Node, constraints Constraints, path string) (Size, error) {
	n.laid = true
	if n.Layout == nil {
		n.Size = Size{Width: constraints.MinWidth, Height: constraints.MinHeight}
		return n.Size, nil
	}

	nodes := &LayoutNodes{
		Constraints: constraints,
		engine:      e,
		path:        path,
		children:    n.Children,
	}
	size, err := n.Layout.Layout(nodes)
	if err != nil {
		var layoutErr *LayoutError
		if errors.As(err, &layoutErr) {
			return ZeroSize, err
		}
		e.log.V(1).Info("layout failed", "node", path, "constraints", constraints.String(), "err", err.Error())
		return ZeroSize, &LayoutError{Path: path, Err: err}
	}
	if rest := nodes.Remaining(); rest > 0 && !constraints.IsZero() {
		e.log.V(1).Info("layout left children unvisited", "node", path, "count", rest)
	}

	n.Size = size
	e.log.V(2).Info("laid out", "node", path, "constraints", constraints.String(), "size", size.String())
	return size, nil
}

// Dim returns a pointer to n, for the optional dimensions of Sizing.
func Dim(n int) *int {
	return &n
}

// Sizing holds the optional size configuration shared by layouts.
type Sizing struct {
	MinWidth  *int
	MinHeight *int
	Width     *int
	Height    *int
}

// Apply raises the minimums to the configured ones and then pins any fixed
// dimension. Pinning happens last so a fixed size is still clipped by max.
func (s Sizing) Apply(c Constraints) Constraints {
	if s.MinWidth != nil {
		c.MinWidth = max(c.MinWidth, *s.MinWidth)
	}
	if s.MinHeight != nil {
		c.MinHeight = max(c.MinHeight, *s.MinHeight)
	}
	if s.Width != nil {
		c.MakeWidthTight(*s.Width)
	}
	if s.Height != nil {
		c.MakeHeightTight(*s.Height)
	}
	return c
}

// Settle raises size to the configured minimums and then to the minimums of
// c, the element's own constraints.
func (s Sizing) Settle(size Size, c Constraints) Size {
	if s.MinWidth != nil {
		size.Width = max(size.Width, *s.MinWidth)
	}
	if s.MinHeight != nil {
		size.Height = max(size.Height, *s.MinHeight)
	}
	size.Width = max(size.Width, c.MinWidth)
	size.Height = max(size.Height, c.MinHeight)
	return size
}

// Inset removes overhead from the maximums of c to derive a child's
// constraints. Minimums above the new maximums are clipped down. It fails
// with ErrInsufficientSpace when the overhead does not fit or leaves no room.
func Inset(c Constraints, overhead Size) (Constraints, error) {
	if overhead.Width > c.MaxWidth || overhead.Height > c.MaxHeight {
		return ZeroConstraints, ErrInsufficientSpace
	}
	if c.MaxWidth != Unbounded {
		c.MaxWidth -= overhead.Width
	}
	if c.MaxHeight != Unbounded {
		c.MaxHeight -= overhead.Height
	}

	c.MinWidth = min(c.MinWidth, c.MaxWidth)
	c.MinHeight = min(c.MinHeight, c.MaxHeight)

	if c.MaxWidth == 0 || c.MaxHeight == 0 {
		return ZeroConstraints, ErrInsufficientSpace
	}
	return c, nil
}

// insetLayout is the single-child protocol: size the child inside the
// constraints minus overhead and add the overhead back.
func insetLayout(nodes *LayoutNodes, sizing Sizing, overhead Size) (Size, error) {
	constraints := sizing.Apply(nodes.Constraints)
	if constraints.IsZero() {
		return ZeroSize, nil
	}

	size := ZeroSize
	err := nodes.Next(func(child *LayoutNode) error {
		inner, err := Inset(constraints, overhead)
		if err != nil {
			return err
		}
		childSize, err := child.Layout(inner)
		if err != nil {
			return err
		}
		size = childSize.Add(overhead)
		return nil
	})
	if err != nil {
		return ZeroSize, err
	}
	return sizing.Settle(size, constraints), nil
}
