package glint

import (
	"fmt"
	"strconv"
)

// Kind names the active payload of a ValueRef.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindOwned
	KindStr
	KindMap
	KindList
	KindExpressions
	KindExpressionMap
	KindDeferred
)

var kindNames = [...]string{
	KindEmpty:         "empty",
	KindOwned:         "owned",
	KindStr:           "str",
	KindMap:           "map",
	KindList:          "list",
	KindExpressions:   "expressions",
	KindExpressionMap: "expression-map",
	KindDeferred:      "deferred",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Expressions is a list of expressions that have not been evaluated yet.
type Expressions []*Expr

// ExpressionMap is the keyed analogue of Expressions.
type ExpressionMap map[string]*Expr

// payload is the active variant of a ValueRef. Only the types below
// implement it.
type payload interface {
	kind() Kind
}

type (
	ownedPayload   struct{ v Owned }
	strPayload     string
	mapPayload     struct{ s State }
	listPayload    struct{ c Collection }
	exprsPayload   Expressions
	exprMapPayload ExpressionMap
	deferredMarker struct{}
)

func (ownedPayload) kind() Kind   { return KindOwned }
func (strPayload) kind() Kind     { return KindStr }
func (mapPayload) kind() Kind     { return KindMap }
func (listPayload) kind() Kind    { return KindList }
func (exprsPayload) kind() Kind   { return KindExpressions }
func (exprMapPayload) kind() Kind { return KindExpressionMap }
func (deferredMarker) kind() Kind { return KindDeferred }

// ValueRef is a value visible during one frame: an owned scalar, or a view
// onto a string, state map, collection or expression container owned by
// someone else. The zero ValueRef is Empty.
//
// Views are tied to the frame that produced them and stop working when that
// frame ends. Owned, Empty and Deferred values, and strings from a template
// text pool, are not tied to a frame.
type ValueRef struct {
	p     payload
	frame *Frame
	gen   uint64
}

// OwnedRef wraps an owned scalar. A nil scalar gives Empty.
func OwnedRef(o Owned) ValueRef {
	if o == nil {
		return ValueRef{}
	}
	return ValueRef{p: ownedPayload{o}}
}

// TextRef wraps a string owned by a compiled template's text pool, which
// outlives every frame.
func TextRef(s string) ValueRef {
	return ValueRef{p: strPayload(s)}
}

// Deferred marks a resolution that was postponed. Resolvers may return it;
// state may not.
func Deferred() ValueRef {
	return ValueRef{p: deferredMarker{}}
}

// Kind returns the active variant.
func (r ValueRef) Kind() Kind {
	if r.p == nil {
		return KindEmpty
	}
	return r.p.kind()
}

// Valid reports whether r can still be read: it is not tied to a frame, or
// its frame is open in the generation r was produced in.
func (r ValueRef) Valid() bool {
	return r.frame == nil || r.frame.live(r.gen)
}

// Err returns ErrFrameClosed if r has outlived its frame.
func (r ValueRef) Err() error {
	if !r.Valid() {
		return ErrFrameClosed
	}
	return nil
}

// IsEmpty reports whether r holds no value.
func (r ValueRef) IsEmpty() bool {
	return r.p == nil
}

// IsDeferred reports whether r is the Deferred marker.
func (r ValueRef) IsDeferred() bool {
	return r.Kind() == KindDeferred
}

// Owned returns the owned scalar.
func (r ValueRef) Owned() (Owned, bool) {
	p, ok := r.p.(ownedPayload)
	return p.v, ok
}

// Str returns the borrowed string. It is only valid within r's frame.
func (r ValueRef) Str() (string, bool) {
	p, ok := r.p.(strPayload)
	if !ok || !r.Valid() {
		return "", false
	}
	return string(p), true
}

// Map returns the borrowed state map.
func (r ValueRef) Map() (State, bool) {
	p, ok := r.p.(mapPayload)
	if !ok || !r.Valid() {
		return nil, false
	}
	return p.s, true
}

// List returns the borrowed collection.
func (r ValueRef) List() (Collection, bool) {
	p, ok := r.p.(listPayload)
	if !ok || !r.Valid() {
		return nil, false
	}
	return p.c, true
}

// Expressions returns the borrowed expression list.
func (r ValueRef) Expressions() (Expressions, bool) {
	p, ok := r.p.(exprsPayload)
	if !ok || !r.Valid() {
		return nil, false
	}
	return Expressions(p), true
}

// ExpressionMap returns the borrowed expression table.
func (r ValueRef) ExpressionMap() (ExpressionMap, bool) {
	p, ok := r.p.(exprMapPayload)
	if !ok || !r.Valid() {
		return nil, false
	}
	return ExpressionMap(p), true
}

// Get looks key up in a Map ref. Anything else gives Empty.
func (r ValueRef) Get(key string) ValueRef {
	s, ok := r.Map()
	if !ok {
		return ValueRef{}
	}
	v, _ := r.frame.Get(s, key)
	return v
}

// Index returns element i of a List ref. Anything else, or an index out of
// range, gives Empty.
func (r ValueRef) Index(i int) ValueRef {
	c, ok := r.List()
	if !ok {
		return ValueRef{}
	}
	return r.frame.Item(c, i)
}

// Len returns the length of a List, Expressions or ExpressionMap ref, and 0
// for everything else.
func (r ValueRef) Len() int {
	switch p := r.p.(type) {
	case listPayload:
		if r.Valid() {
			return p.c.Len()
		}
	case exprsPayload:
		if r.Valid() {
			return len(p)
		}
	case exprMapPayload:
		if r.Valid() {
			return len(p)
		}
	}
	return 0
}

// Field steps into r by name: a key of a Map, or a decimal index of a List.
func (r ValueRef) Field(name string) ValueRef {
	switch r.Kind() {
	case KindMap:
		return r.Get(name)
	case KindList:
		i, err := strconv.Atoi(name)
		if err != nil {
			return ValueRef{}
		}
		return r.Index(i)
	default:
		return ValueRef{}
	}
}

// IsTrue is the truthiness of r. A non-empty Str is true, an owned Bool is
// its value, and an owned Signed or Unsigned is true above zero. Every other
// value, Float included, is false. An expired ref is false.
func (r ValueRef) IsTrue() bool {
	if !r.Valid() {
		return false
	}
	switch p := r.p.(type) {
	case strPayload:
		return p != ""
	case ownedPayload:
		return ownedTrue(p.v)
	default:
		return false
	}
}

// Equal compares two Str refs by text or two Owned refs by scalar. Every
// other pairing is unequal, including two refs to the same map.
func (r ValueRef) Equal(o ValueRef) bool {
	if !r.Valid() || !o.Valid() {
		return false
	}
	switch a := r.p.(type) {
	case strPayload:
		b, ok := o.p.(strPayload)
		return ok && a == b
	case ownedPayload:
		b, ok := o.p.(ownedPayload)
		return ok && a.v == b.v
	default:
		return false
	}
}

// String describes r for logs and test failures. Use Display for the text
// a value renders as.
func (r ValueRef) String() string {
	if !r.Valid() {
		return r.Kind().String() + "(expired)"
	}
	switch p := r.p.(type) {
	case nil:
		return "empty"
	case deferredMarker:
		return "deferred"
	case strPayload:
		return fmt.Sprintf("str(%q)", string(p))
	case ownedPayload:
		return fmt.Sprintf("owned(%T %s)", p.v, p.v.String())
	default:
		return fmt.Sprintf("%s(len=%d)", r.Kind(), r.Len())
	}
}
