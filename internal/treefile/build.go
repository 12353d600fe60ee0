package treefile

import (
	"math"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/kungfusheep/glint"
)

// Build resolves the template against st inside the open frame f and
// returns the node tree for one layout pass. A nil st builds against the
// file's own state.
//
// Attributes that resolve to Deferred count as missing, so a template built
// with a deferring resolver yields its skeleton: sizes come from literals
// only, text shows literal parts only, and conditional branches are left
// out.
func (t *Template) Build(f *glint.Frame, r glint.Resolver, st glint.State) (*glint.Node, error) {
	if st == nil {
		st = t.state
	}
	b := &builder{f: f, r: r, log: t.log}
	n, err := b.build(t.root, st)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return glint.NewNode(nil), nil
	}
	return n, nil
}

type builder struct {
	f   *glint.Frame
	r   glint.Resolver
	log logr.Logger
}

func (b *builder) build(tn *tnode, st glint.State) (*glint.Node, error) {
	n, err := b.node(tn, st)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s (line %d)", tn.kind, tn.line)
	}
	if n != nil && tn.name != "" {
		n.Named(tn.name)
	}
	return n, nil
}

func (b *builder) node(tn *tnode, st glint.State) (*glint.Node, error) {
	switch tn.kind {
	case kindBorder:
		return b.border(tn, st)
	case kindPadding:
		return b.padding(tn, st)
	case kindStack:
		return b.stack(tn, st)
	case kindText:
		return b.text(tn, st)
	case kindFor:
		return b.loop(tn, st)
	case kindIf:
		return b.cond(tn, st)
	case kindSpacer:
		_, s, err := b.sized(tn, st)
		if err != nil {
			return nil, err
		}
		return glint.NewNode(&glint.Spacer{Sizing: s, Fill: tn.fill}), nil
	}
	return nil, errors.Errorf("unknown element kind %d", tn.kind)
}

// fields resolves the attribute table of tn.
func (b *builder) fields(tn *tnode, st glint.State) (glint.ExpressionMap, error) {
	v, err := b.r.Resolve(b.f, tn.attrs, st)
	if err != nil {
		return nil, err
	}
	fields, _ := v.ExpressionMap()
	return fields, nil
}

// number resolves an integer attribute. Floats are truncated toward
// negative infinity. Missing and deferred attributes report false.
func (b *builder) number(fields glint.ExpressionMap, key string, st glint.State) (int, bool, error) {
	v, err := glint.ResolveField(b.f, b.r, fields, key, st)
	if err != nil {
		return 0, false, err
	}
	if v.IsEmpty() || v.IsDeferred() {
		return 0, false, nil
	}
	if n, err := glint.ToInt[int](v); err == nil {
		return n, true, nil
	}
	if x, err := glint.ToFloat[float64](v); err == nil {
		return int(math.Floor(x)), true, nil
	}
	return 0, false, errors.Errorf("%s: expected a number, got %s", key, v)
}

// size resolves a non-negative integer attribute.
func (b *builder) size(fields glint.ExpressionMap, key string, st glint.State) (int, bool, error) {
	n, ok, err := b.number(fields, key, st)
	if err != nil || !ok {
		return 0, ok, err
	}
	if n < 0 {
		return 0, false, errors.Errorf("%s: must not be negative, got %d", key, n)
	}
	return n, true, nil
}

func (b *builder) sizing(fields glint.ExpressionMap, st glint.State) (glint.Sizing, error) {
	var s glint.Sizing
	for key, dst := range map[string]**int{
		"min_width":  &s.MinWidth,
		"min_height": &s.MinHeight,
		"width":      &s.Width,
		"height":     &s.Height,
	} {
		n, ok, err := b.size(fields, key, st)
		if err != nil {
			return s, err
		}
		if ok {
			*dst = glint.Dim(n)
		}
	}
	return s, nil
}

// sized resolves the attribute table of tn and its sizing.
func (b *builder) sized(tn *tnode, st glint.State) (glint.ExpressionMap, glint.Sizing, error) {
	fields, err := b.fields(tn, st)
	if err != nil {
		return nil, glint.Sizing{}, err
	}
	s, err := b.sizing(fields, st)
	return fields, s, err
}

func (b *builder) wrap(layout glint.Layout, tn *tnode, st glint.State) (*glint.Node, error) {
	n := glint.NewNode(layout)
	child, err := b.build(tn.children[0], st)
	if err != nil {
		return nil, err
	}
	if child != nil {
		n.Add(child)
	}
	return n, nil
}

func (b *builder) border(tn *tnode, st glint.State) (*glint.Node, error) {
	_, s, err := b.sized(tn, st)
	if err != nil {
		return nil, err
	}
	border := glint.NewBorder(tn.chars, tn.sides)
	border.Sizing = s
	border.Style = tn.style
	return b.wrap(border, tn, st)
}

func (b *builder) padding(tn *tnode, st glint.State) (*glint.Node, error) {
	fields, s, err := b.sized(tn, st)
	if err != nil {
		return nil, err
	}
	all, _, err := b.size(fields, "all", st)
	if err != nil {
		return nil, err
	}
	p := glint.Pad(all)
	p.Sizing = s
	for key, dst := range map[string]*int{
		"top":    &p.Top,
		"right":  &p.Right,
		"bottom": &p.Bottom,
		"left":   &p.Left,
	} {
		n, ok, err := b.size(fields, key, st)
		if err != nil {
			return nil, err
		}
		if ok {
			*dst = n
		}
	}
	return b.wrap(p, tn, st)
}

func (b *builder) newStack(tn *tnode, st glint.State) (*glint.Stack, error) {
	fields, s, err := b.sized(tn, st)
	if err != nil {
		return nil, err
	}
	gap, _, err := b.size(fields, "gap", st)
	if err != nil {
		return nil, err
	}
	return &glint.Stack{Sizing: s, Direction: tn.axis, Gap: gap}, nil
}

func (b *builder) stack(tn *tnode, st glint.State) (*glint.Node, error) {
	stack, err := b.newStack(tn, st)
	if err != nil {
		return nil, err
	}
	n := glint.NewNode(stack)
	for _, child := range tn.children {
		c, err := b.build(child, st)
		if err != nil {
			return nil, err
		}
		if c != nil {
			n.Add(c)
		}
	}
	return n, nil
}

func (b *builder) text(tn *tnode, st glint.State) (*glint.Node, error) {
	v, err := b.r.Resolve(b.f, tn.text, st)
	if err != nil {
		return nil, err
	}
	parts, _ := v.Expressions()
	s, err := glint.ReadText(b.f, b.r, parts, st)
	if err != nil {
		return nil, err
	}
	text := glint.NewText(s)
	text.Style = tn.style
	return glint.NewNode(text), nil
}

// items resolves the loop source to its values.
func (b *builder) items(tn *tnode, st glint.State) ([]glint.ValueRef, error) {
	v, err := b.r.Resolve(b.f, tn.each, st)
	if err != nil {
		return nil, err
	}
	switch v.Kind() {
	case glint.KindList:
		items := make([]glint.ValueRef, v.Len())
		for i := range items {
			items[i] = v.Index(i)
		}
		return items, nil
	case glint.KindExpressions:
		exprs, _ := v.Expressions()
		return glint.ResolveAll(b.f, b.r, exprs, st)
	case glint.KindEmpty, glint.KindDeferred:
		b.log.V(2).Info("loop source has no items", "kind", v.Kind().String(), "as", tn.as)
		return nil, nil
	default:
		return nil, errors.Errorf("each: expected a list, got %s", v)
	}
}

func (b *builder) loop(tn *tnode, st glint.State) (*glint.Node, error) {
	stack, err := b.newStack(tn, st)
	if err != nil {
		return nil, err
	}
	items, err := b.items(tn, st)
	if err != nil {
		return nil, err
	}
	n := glint.NewNode(stack)
	for i, item := range items {
		scope := glint.NewScope(glint.NewScope(st, tn.index, glint.OwnedRef(glint.Signed(i))), tn.as, item)
		c, err := b.build(tn.children[0], scope)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s %d", tn.as, i)
		}
		if c != nil {
			n.Add(c)
		}
	}
	return n, nil
}

func (b *builder) cond(tn *tnode, st glint.State) (*glint.Node, error) {
	v, err := b.r.Resolve(b.f, tn.cond, st)
	if err != nil {
		return nil, err
	}
	if v.IsDeferred() {
		return nil, nil
	}
	branch := tn.children[1]
	if v.IsTrue() {
		branch = tn.children[0]
	}
	if branch == nil {
		return nil, nil
	}
	return b.build(branch, st)
}
