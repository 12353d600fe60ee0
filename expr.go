package glint

import (
	"sort"
	"strconv"
	"strings"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	exprvm "github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

type exprKind uint8

const (
	exprProgram exprKind = iota
	exprText
	exprOwned
	exprList
	exprMap
)

// Expr is a compiled expression. Besides programs it can hold a literal
// from the template's text pool, an owned literal, or a list or table of
// further expressions that stay unevaluated until read.
type Expr struct {
	kind   exprKind
	source string

	program *exprvm.Program
	reads   *pathTree

	text   string
	owned  Owned
	list   Expressions
	fields ExpressionMap
}

// Compile compiles an expr-lang program. Names the program reads are looked
// up in state when it is resolved; unknown names evaluate to nil.
func Compile(source string) (*Expr, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, wrapEvaluationError("", errors.New("expression must not be empty"))
	}
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, wrapEvaluationError(source, err)
	}
	program, err := exprlang.Compile(source,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, wrapEvaluationError(source, err)
	}
	return &Expr{
		kind:    exprProgram,
		source:  source,
		program: program,
		reads:   collectReads(tree.Node),
	}, nil
}

// MustCompile is Compile for sources known to be valid. It panics on error.
func MustCompile(source string) *Expr {
	e, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return e
}

// TextExpr is a literal string from a template's text pool.
func TextExpr(s string) *Expr {
	return &Expr{kind: exprText, source: strconv.Quote(s), text: s}
}

// OwnedExpr is an owned literal.
func OwnedExpr(o Owned) *Expr {
	src := "nil"
	if o != nil {
		src = o.String()
	}
	return &Expr{kind: exprOwned, source: src, owned: o}
}

// ListExpr is a list whose items are evaluated when read.
func ListExpr(items ...*Expr) *Expr {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Source()
	}
	return &Expr{kind: exprList, source: "[" + strings.Join(parts, ", ") + "]", list: items}
}

// MapExpr is a table whose fields are evaluated when read.
func MapExpr(fields ExpressionMap) *Expr {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fields[k].Source()
	}
	return &Expr{kind: exprMap, source: "{" + strings.Join(parts, ", ") + "}", fields: fields}
}

// Source returns the expression text.
func (e *Expr) Source() string {
	if e == nil {
		return "nil"
	}
	return e.source
}

func (e *Expr) String() string {
	return e.Source()
}

// ReadsState reports whether resolving e looks anything up in state.
func (e *Expr) ReadsState() bool {
	if e == nil {
		return false
	}
	switch e.kind {
	case exprProgram:
		return len(e.reads.children) > 0
	default:
		return false
	}
}

// Names returns the top-level state names e reads, sorted.
func (e *Expr) Names() []string {
	if e == nil || e.reads == nil {
		return nil
	}
	names := make([]string, 0, len(e.reads.children))
	for name := range e.reads.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pathTree records which parts of state a program reads. A node marked all
// is used as a whole, so everything below it is needed.
type pathTree struct {
	all      bool
	children map[string]*pathTree
}

func (t *pathTree) add(path []string, all bool) {
	for _, name := range path {
		if t.children == nil {
			t.children = make(map[string]*pathTree)
		}
		next, ok := t.children[name]
		if !ok {
			next = &pathTree{}
			t.children[name] = next
		}
		t = next
	}
	t.all = t.all || all
}

type nodeCollector struct {
	members []*ast.MemberNode
	idents  []*ast.IdentifierNode
}

func (c *nodeCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.MemberNode:
		c.members = append(c.members, n)
	case *ast.IdentifierNode:
		c.idents = append(c.idents, n)
	}
}

// collectReads finds the state paths a program reads: the longest constant
// member chain rooted at each identifier. Identifiers used any other way
// need their whole value.
func collectReads(root ast.Node) *pathTree {
	c := &nodeCollector{}
	ast.Walk(&root, c)

	inner := make(map[ast.Node]bool)
	for _, m := range c.members {
		inner[m.Node] = true
	}

	reads := &pathTree{}
	covered := make(map[*ast.IdentifierNode]bool)
	for _, m := range c.members {
		if inner[m] {
			continue
		}
		ident, path, all := memberPath(m)
		if ident == nil {
			continue
		}
		covered[ident] = true
		reads.add(path, all)
	}
	for _, ident := range c.idents {
		if !covered[ident] {
			reads.add([]string{ident.Value}, true)
		}
	}
	return reads
}

// memberPath unwinds a member chain such as a.b[0].c into its root
// identifier and path. The path stops at the first computed property; the
// part before it is then needed whole.
func memberPath(m *ast.MemberNode) (*ast.IdentifierNode, []string, bool) {
	var props []ast.Node
	var node ast.Node = m
	for {
		mn, ok := node.(*ast.MemberNode)
		if !ok {
			break
		}
		props = append(props, mn.Property)
		node = mn.Node
	}
	ident, ok := node.(*ast.IdentifierNode)
	if !ok {
		return nil, nil, false
	}

	path := []string{ident.Value}
	for i := len(props) - 1; i >= 0; i-- {
		switch p := props[i].(type) {
		case *ast.StringNode:
			path = append(path, p.Value)
		case *ast.IntegerNode:
			path = append(path, strconv.Itoa(p.Value))
		default:
			return ident, path, true
		}
	}
	return ident, path, false
}

// Compiler compiles expressions and keeps them by source. It is not safe for
// concurrent use.
type Compiler struct {
	cache map[string]*Expr
}

// NewCompiler creates an empty compiler.
func NewCompiler() *Compiler {
	return &Compiler{cache: make(map[string]*Expr)}
}

// Compile returns the cached expression for source, compiling it on first
// use. Failures are not cached.
func (c *Compiler) Compile(source string) (*Expr, error) {
	key := strings.TrimSpace(source)
	if e, ok := c.cache[key]; ok {
		return e, nil
	}
	e, err := Compile(key)
	if err != nil {
		return nil, err
	}
	c.cache[key] = e
	return e, nil
}

// Len returns the number of cached expressions.
func (c *Compiler) Len() int {
	return len(c.cache)
}
