package treefile

import (
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kungfusheep/glint"
)

type nodeKind int

const (
	kindBorder nodeKind = iota
	kindPadding
	kindStack
	kindText
	kindFor
	kindIf
	kindSpacer
)

var kindNames = map[nodeKind]string{
	kindBorder:  "border",
	kindPadding: "padding",
	kindStack:   "stack",
	kindText:    "text",
	kindFor:     "for",
	kindIf:      "if",
	kindSpacer:  "spacer",
}

func (k nodeKind) String() string {
	return kindNames[k]
}

// tnode is a compiled element.
type tnode struct {
	kind nodeKind
	name string
	line int

	attrs *glint.Expr // table of numeric attributes
	text  *glint.Expr // list of text parts

	style glint.Style
	chars glint.BorderStyle
	sides glint.Sides
	axis  glint.Direction
	fill  bool

	each  *glint.Expr
	as    string
	index string
	cond  *glint.Expr

	// border, padding: the child; stack: the children; for: the body;
	// if: then and else, either of which may be nil.
	children []*tnode
}

type compiler struct {
	exprs         *glint.Compiler
	defaultBorder glint.BorderStyle
	log           logr.Logger
}

func (c *compiler) fail(e *element, format string, args ...any) error {
	return errors.Errorf("line %d: "+format, append([]any{e.line}, args...)...)
}

func (c *compiler) element(e *element) (*tnode, error) {
	set := 0
	for _, present := range []bool{e.Border != nil, e.Padding != nil, e.Stack != nil, e.Text != nil, e.For != nil, e.If != nil, e.Spacer != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, c.fail(e, "element needs exactly one of border, padding, stack, text, spacer, for or if (found %d)", set)
	}

	n := &tnode{name: e.Name, line: e.line, style: glint.DefaultStyle()}
	var err error
	switch {
	case e.Border != nil:
		err = c.border(n, e)
	case e.Padding != nil:
		err = c.padding(n, e)
	case e.Stack != nil:
		err = c.stack(n, e)
	case e.Text != nil:
		err = c.textNode(n, e)
	case e.For != nil:
		err = c.forNode(n, e)
	case e.If != nil:
		err = c.ifNode(n, e)
	case e.Spacer != nil:
		n.kind = kindSpacer
		n.fill = e.Spacer.Fill
		n.attrs, err = c.attrs(e, e.Spacer.sizingSpec, nil)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *compiler) attrs(e *element, s sizingSpec, extra map[string]*yaml.Node) (*glint.Expr, error) {
	fields := glint.ExpressionMap{}
	all := map[string]*yaml.Node{
		"min_width":  s.MinWidth,
		"min_height": s.MinHeight,
		"width":      s.Width,
		"height":     s.Height,
	}
	for k, v := range extra {
		all[k] = v
	}
	for key, node := range all {
		if node == nil {
			continue
		}
		expr, err := c.value(node)
		if err != nil {
			return nil, c.fail(e, "%s: %v", key, err)
		}
		fields[key] = expr
	}
	return glint.MapExpr(fields), nil
}

// value compiles a scalar attribute: ints and bools become literals,
// strings are expressions.
func (c *compiler) value(node *yaml.Node) (*glint.Expr, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, errors.New("expected a number or an expression")
	}
	switch node.Tag {
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return nil, errors.Wrap(err, "parse integer")
		}
		return glint.OwnedExpr(glint.Signed(n)), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return nil, errors.Wrap(err, "parse bool")
		}
		return glint.OwnedExpr(glint.Bool(b)), nil
	default:
		return c.exprs.Compile(node.Value)
	}
}

// each compiles a for source: an expression, or a literal sequence whose
// items are themselves values.
func (c *compiler) each(node *yaml.Node) (*glint.Expr, error) {
	if node.Kind != yaml.SequenceNode {
		return c.value(node)
	}
	items := make([]*glint.Expr, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode && item.Tag == "!!str" {
			items = append(items, glint.TextExpr(item.Value))
			continue
		}
		e, err := c.value(item)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return glint.ListExpr(items...), nil
}

func (c *compiler) color(e *element, name string, bold bool) (glint.Style, error) {
	style := glint.DefaultStyle()
	if name != "" {
		col, err := glint.ParseColor(name)
		if err != nil {
			return style, c.fail(e, "%v", err)
		}
		style = style.Foreground(col)
	}
	if bold {
		style = style.Bold()
	}
	return style, nil
}

func (c *compiler) child(parent *element, child *element) (*tnode, error) {
	if child == nil {
		return nil, c.fail(parent, "missing child")
	}
	return c.element(child)
}

func (c *compiler) border(n *tnode, e *element) error {
	spec := e.Border
	n.kind = kindBorder
	n.chars = c.defaultBorder
	if spec.Style != "" {
		chars, err := BorderStyleByName(spec.Style)
		if err != nil {
			return c.fail(e, "%v", err)
		}
		n.chars = chars
	}
	n.sides = glint.SideAll
	if len(spec.Sides) > 0 {
		n.sides = glint.SideNone
		for _, side := range spec.Sides {
			s, ok := sideNames[strings.ToLower(side)]
			if !ok {
				return c.fail(e, "unknown border side %q", side)
			}
			n.sides |= s
		}
	}
	var err error
	if n.style, err = c.color(e, spec.Color, false); err != nil {
		return err
	}
	if n.attrs, err = c.attrs(e, spec.sizingSpec, nil); err != nil {
		return err
	}
	child, err := c.child(e, spec.Child)
	if err != nil {
		return err
	}
	n.children = []*tnode{child}
	return nil
}

var sideNames = map[string]glint.Sides{
	"top":    glint.SideTop,
	"right":  glint.SideRight,
	"bottom": glint.SideBottom,
	"left":   glint.SideLeft,
	"all":    glint.SideAll,
}

func (c *compiler) padding(n *tnode, e *element) error {
	spec := e.Padding
	n.kind = kindPadding
	var err error
	n.attrs, err = c.attrs(e, spec.sizingSpec, map[string]*yaml.Node{
		"all":    spec.All,
		"top":    spec.Top,
		"right":  spec.Right,
		"bottom": spec.Bottom,
		"left":   spec.Left,
	})
	if err != nil {
		return err
	}
	child, err := c.child(e, spec.Child)
	if err != nil {
		return err
	}
	n.children = []*tnode{child}
	return nil
}

func parseAxis(s string) (glint.Direction, bool) {
	switch strings.ToLower(s) {
	case "", "vertical", "v", "column":
		return glint.Vertical, true
	case "horizontal", "h", "row":
		return glint.Horizontal, true
	default:
		return glint.Vertical, false
	}
}

func (c *compiler) stack(n *tnode, e *element) error {
	spec := e.Stack
	n.kind = kindStack
	axis, ok := parseAxis(spec.Axis)
	if !ok {
		return c.fail(e, "unknown axis %q", spec.Axis)
	}
	n.axis = axis
	var err error
	if n.attrs, err = c.attrs(e, spec.sizingSpec, map[string]*yaml.Node{"gap": spec.Gap}); err != nil {
		return err
	}
	for _, child := range spec.Children {
		tn, err := c.element(child)
		if err != nil {
			return err
		}
		n.children = append(n.children, tn)
	}
	return nil
}

func (c *compiler) textNode(n *tnode, e *element) error {
	spec := e.Text
	n.kind = kindText
	parts, err := splitText(spec.Content, c.exprs)
	if err != nil {
		return c.fail(e, "%v", err)
	}
	n.text = glint.ListExpr(parts...)
	n.style, err = c.color(e, spec.Color, spec.Bold)
	return err
}

func (c *compiler) forNode(n *tnode, e *element) error {
	spec := e.For
	n.kind = kindFor
	if spec.Each == nil {
		return c.fail(e, "for needs each")
	}
	if spec.As == "" {
		return c.fail(e, "for needs as")
	}
	n.as, n.index = spec.As, spec.Index
	if n.index == "" {
		n.index = "index"
	}
	axis, ok := parseAxis(spec.Axis)
	if !ok {
		return c.fail(e, "unknown axis %q", spec.Axis)
	}
	n.axis = axis
	var err error
	if n.each, err = c.each(spec.Each); err != nil {
		return c.fail(e, "each: %v", err)
	}
	if n.attrs, err = c.attrs(e, sizingSpec{}, map[string]*yaml.Node{"gap": spec.Gap}); err != nil {
		return err
	}
	body, err := c.child(e, spec.Body)
	if err != nil {
		return err
	}
	n.children = []*tnode{body}
	return nil
}

func (c *compiler) ifNode(n *tnode, e *element) error {
	spec := e.If
	n.kind = kindIf
	if spec.Cond == nil {
		return c.fail(e, "if needs cond")
	}
	var err error
	if n.cond, err = c.value(spec.Cond); err != nil {
		return c.fail(e, "cond: %v", err)
	}
	n.children = make([]*tnode, 2)
	if spec.Then != nil {
		if n.children[0], err = c.element(spec.Then); err != nil {
			return err
		}
	}
	if spec.Else != nil {
		if n.children[1], err = c.element(spec.Else); err != nil {
			return err
		}
	}
	return nil
}
