package glint

import (
	"github.com/go-logr/logr"
)

// Frame is the scope of one layout and render pass. Every view ValueRef it
// hands out is stamped with the frame and its generation, and stops reading
// once the frame ends or begins again.
// Reused across passes - Begin starts a new generation
type Frame struct {
	log  logr.Logger
	gen  uint64
	open bool
}

// FrameOption configures a Frame.
type FrameOption func(*Frame)

// WithFrameLogger sets the logger a frame reports state misuse to.
func WithFrameLogger(log logr.Logger) FrameOption {
	return func(f *Frame) {
		f.log = log
	}
}

// NewFrame creates a closed frame.
func NewFrame(opts ...FrameOption) *Frame {
	f := &Frame{log: logr.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Begin opens a new generation. Refs from earlier generations expire.
func (f *Frame) Begin() {
	if f.open {
		f.log.V(1).Info("frame begun while open", "generation", f.gen)
	}
	f.gen++
	f.open = true
}

// End closes the frame. Every view ref it produced expires.
func (f *Frame) End() {
	f.open = false
}

// Scope runs fn inside a fresh generation and ends the frame afterwards.
func (f *Frame) Scope(fn func(f *Frame) error) error {
	f.Begin()
	defer f.End()
	return fn(f)
}

// Open reports whether the frame is between Begin and End.
func (f *Frame) Open() bool {
	return f.open
}

// Generation returns the current generation, starting at 1 after the first
// Begin.
func (f *Frame) Generation() uint64 {
	return f.gen
}

func (f *Frame) live(gen uint64) bool {
	return f.open && f.gen == gen
}

func (f *Frame) ref(p payload) ValueRef {
	return ValueRef{p: p, frame: f, gen: f.gen}
}

// Str wraps a string borrowed from state.
func (f *Frame) Str(s string) ValueRef {
	return f.ref(strPayload(s))
}

// Map wraps a state map. A nil map gives Empty.
func (f *Frame) Map(s State) ValueRef {
	if s == nil {
		return ValueRef{}
	}
	return f.ref(mapPayload{s})
}

// List wraps a collection. A nil collection gives Empty.
func (f *Frame) List(c Collection) ValueRef {
	if c == nil {
		return ValueRef{}
	}
	return f.ref(listPayload{c})
}

// Expressions wraps a list of unevaluated expressions.
func (f *Frame) Expressions(e Expressions) ValueRef {
	return f.ref(exprsPayload(e))
}

// ExpressionMap wraps a table of unevaluated expressions.
func (f *Frame) ExpressionMap(e ExpressionMap) ValueRef {
	return f.ref(exprMapPayload(e))
}

// Get reads key from state. A closed frame reads nothing. State is not
// allowed to defer, so a Deferred answer is reported and read as Empty.
func (f *Frame) Get(s State, key string) (ValueRef, bool) {
	if s == nil || !f.open {
		return ValueRef{}, false
	}
	v, ok := s.Get(f, key)
	if v.IsDeferred() {
		f.log.Info("state returned a deferred value", "key", key)
		return ValueRef{}, ok
	}
	return v, ok
}

// Lookup walks a dotted path through nested maps and lists, starting at s.
// A missing step gives Empty.
func (f *Frame) Lookup(s State, path ...string) ValueRef {
	v := f.Map(s)
	for _, name := range path {
		v = v.Field(name)
		if v.IsEmpty() {
			break
		}
	}
	return v
}

// Item reads element i of c. An index out of range gives Empty.
func (f *Frame) Item(c Collection, i int) ValueRef {
	if c == nil || !f.open || i < 0 || i >= c.Len() {
		return ValueRef{}
	}
	v := c.Index(f, i)
	if v.IsDeferred() {
		f.log.Info("collection returned a deferred value", "index", i)
		return ValueRef{}
	}
	return v
}
