package glint

import (
	exprlang "github.com/expr-lang/expr"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Resolver turns an expression into a value for the current frame.
type Resolver interface {
	Resolve(f *Frame, e *Expr, st State) (ValueRef, error)
}

// ResolverOption configures the resolvers in this package.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	log      logr.Logger
	maxDepth int
}

// WithResolverLogger sets the logger resolvers trace evaluations to.
func WithResolverLogger(log logr.Logger) ResolverOption {
	return func(c *resolverConfig) {
		c.log = log
	}
}

// WithMaxDepth bounds how deep nested state is copied into a program's
// environment when the program uses a value as a whole.
func WithMaxDepth(depth int) ResolverOption {
	return func(c *resolverConfig) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

const defaultMaxDepth = 8

func newResolverConfig(opts []ResolverOption) resolverConfig {
	cfg := resolverConfig{log: logr.Discard(), maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Immediate evaluates every expression as soon as it is resolved.
type Immediate struct {
	cfg resolverConfig
}

// NewImmediate creates an Immediate resolver.
func NewImmediate(opts ...ResolverOption) *Immediate {
	return &Immediate{cfg: newResolverConfig(opts)}
}

// Resolve implements Resolver. Lists and tables are not evaluated; they
// come back as Expressions and ExpressionMap refs for the caller to walk.
func (r *Immediate) Resolve(f *Frame, e *Expr, st State) (ValueRef, error) {
	if e == nil {
		return ValueRef{}, nil
	}
	switch e.kind {
	case exprText:
		return TextRef(e.text), nil
	case exprOwned:
		return OwnedRef(e.owned), nil
	case exprList:
		return f.Expressions(e.list), nil
	case exprMap:
		return f.ExpressionMap(e.fields), nil
	}

	if e.program == nil {
		return ValueRef{}, nil
	}
	if !f.Open() {
		return ValueRef{}, wrapEvaluationError(e.source, ErrFrameClosed)
	}
	env := r.environment(f, e.reads, st)
	out, err := exprlang.Run(e.program, env)
	if err != nil {
		return ValueRef{}, wrapEvaluationError(e.source, err)
	}
	v := ValueOf(f, out)
	r.cfg.log.V(2).Info("resolved", "expr", e.source, "value", v.String())
	return v, nil
}

// environment copies out of state only the paths the program reads.
func (r *Immediate) environment(f *Frame, reads *pathTree, st State) map[string]any {
	env := make(map[string]any, len(reads.children))
	for name, tree := range reads.children {
		v, ok := f.Get(st, name)
		if !ok {
			if len(tree.children) > 0 {
				env[name] = map[string]any{}
			}
			continue
		}
		env[name] = r.host(f, v, tree, st, 0)
	}
	return env
}

var wholeValue = &pathTree{all: true}

// Keyed is implemented by state that can list its keys. Only keyed state can
// be handed to a program as a whole map.
type Keyed interface {
	Keys() []string
}

// host converts v into a plain Go value for a program, following tree.
func (r *Immediate) host(f *Frame, v ValueRef, tree *pathTree, st State, depth int) any {
	if depth > r.cfg.maxDepth {
		return nil
	}
	switch v.Kind() {
	case KindOwned:
		o, _ := v.Owned()
		return hostScalar(o)
	case KindStr:
		s, _ := v.Str()
		return s
	case KindMap:
		m, _ := v.Map()
		out := make(map[string]any)
		if keyed, ok := m.(Keyed); ok && tree.all {
			for _, k := range keyed.Keys() {
				out[k] = r.host(f, v.Get(k), wholeValue, st, depth+1)
			}
		}
		for name, child := range tree.children {
			out[name] = r.host(f, v.Get(name), child, st, depth+1)
		}
		return out
	case KindList:
		out := make([]any, v.Len())
		for i := range out {
			if tree.all {
				out[i] = r.host(f, v.Index(i), wholeValue, st, depth+1)
			}
		}
		for name, child := range tree.children {
			if i, ok := indexOf(name, len(out)); ok {
				out[i] = r.host(f, v.Index(i), child, st, depth+1)
			}
		}
		return out
	case KindExpressions:
		exprs, _ := v.Expressions()
		out := make([]any, len(exprs))
		for i, e := range exprs {
			item, err := r.Resolve(f, e, st)
			if err != nil {
				r.cfg.log.V(1).Info("nested expression failed", "expr", e.Source(), "err", err.Error())
				continue
			}
			out[i] = r.host(f, item, wholeValue, st, depth+1)
		}
		return out
	case KindExpressionMap:
		fields, _ := v.ExpressionMap()
		out := make(map[string]any, len(fields))
		for k, e := range fields {
			item, err := r.Resolve(f, e, st)
			if err != nil {
				r.cfg.log.V(1).Info("nested expression failed", "expr", e.Source(), "err", err.Error())
				continue
			}
			out[k] = r.host(f, item, wholeValue, st, depth+1)
		}
		return out
	default:
		return nil
	}
}

func indexOf(name string, n int) (int, bool) {
	i := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		i = i*10 + int(c-'0')
		if i >= n {
			return 0, false
		}
	}
	return i, name != ""
}

func hostScalar(o Owned) any {
	switch v := o.(type) {
	case Bool:
		return bool(v)
	case Char:
		return string(rune(v))
	case Color:
		return v.String()
	case Signed:
		return int(v)
	case Unsigned:
		return uint64(v)
	case Float:
		return float64(v)
	default:
		return nil
	}
}

// Deferring postpones every program that reads state, returning Deferred
// for it. Anything that does not depend on state is resolved immediately.
type Deferring struct {
	inner *Immediate
}

// NewDeferring creates a Deferring resolver.
func NewDeferring(opts ...ResolverOption) *Deferring {
	return &Deferring{inner: NewImmediate(opts...)}
}

// Resolve implements Resolver.
func (r *Deferring) Resolve(f *Frame, e *Expr, st State) (ValueRef, error) {
	if e.ReadsState() {
		return Deferred(), nil
	}
	return r.inner.Resolve(f, e, st)
}

// ResolveAll resolves each expression in order, stopping at the first
// failure.
func ResolveAll(f *Frame, r Resolver, exprs Expressions, st State) ([]ValueRef, error) {
	out := make([]ValueRef, 0, len(exprs))
	for i, e := range exprs {
		v, err := r.Resolve(f, e, st)
		if err != nil {
			return nil, errors.WithMessagef(err, "item %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}

// ResolveField resolves the named field of a table. A missing field is
// Empty.
func ResolveField(f *Frame, r Resolver, fields ExpressionMap, name string, st State) (ValueRef, error) {
	e, ok := fields[name]
	if !ok {
		return ValueRef{}, nil
	}
	v, err := r.Resolve(f, e, st)
	if err != nil {
		return ValueRef{}, errors.WithMessagef(err, "field %s", name)
	}
	return v, nil
}
