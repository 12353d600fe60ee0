package glint

import (
	"strings"
)

// Signedish is the family of host signed integer types.
type Signedish interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsignedish is the family of host unsigned integer types.
type Unsignedish interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is every host integer type.
type Integer interface {
	Signedish | Unsignedish
}

// Floating is every host floating point type.
type Floating interface {
	~float32 | ~float64
}

// SignedOf maps a host signed integer to an owned scalar.
func SignedOf[T Signedish](v T) Owned {
	return Signed(v)
}

// UnsignedOf maps a host unsigned integer to an owned scalar.
func UnsignedOf[T Unsignedish](v T) Owned {
	return Unsigned(v)
}

// FloatOf maps a host float to an owned scalar.
func FloatOf[T Floating](v T) Owned {
	return Float(v)
}

// OwnedOf maps a dynamic host value to an owned scalar. int32 is treated as
// a number, not a rune; use Char for characters.
func OwnedOf(v any) (Owned, bool) {
	switch v := v.(type) {
	case Owned:
		return v, true
	case bool:
		return Bool(v), true
	case int:
		return Signed(v), true
	case int8:
		return Signed(v), true
	case int16:
		return Signed(v), true
	case int32:
		return Signed(v), true
	case int64:
		return Signed(v), true
	case uint:
		return Unsigned(v), true
	case uint8:
		return Unsigned(v), true
	case uint16:
		return Unsigned(v), true
	case uint32:
		return Unsigned(v), true
	case uint64:
		return Unsigned(v), true
	case uintptr:
		return Unsigned(v), true
	case float32:
		return Float(v), true
	case float64:
		return Float(v), true
	default:
		return nil, false
	}
}

// ValueOf maps a host value into a ValueRef for frame f. Strings become Str,
// scalars become Owned and state capabilities become Map or List. Plain
// map[string]any and []any values are wrapped without copying; their
// elements are converted when they are read. Anything else is Empty.
func ValueOf(f *Frame, v any) ValueRef {
	switch v := v.(type) {
	case nil:
		return ValueRef{}
	case ValueRef:
		return v
	case string:
		return f.Str(v)
	case []byte:
		return f.Str(string(v))
	case State:
		return f.Map(v)
	case Collection:
		return f.List(v)
	case Expressions:
		return f.Expressions(v)
	case ExpressionMap:
		return f.ExpressionMap(v)
	case map[string]any:
		return f.Map(MapOf(v))
	case []any:
		return f.List(ListOf(v...))
	case []string:
		return f.List(ListOf(v...))
	}
	if o, ok := OwnedOf(v); ok {
		return OwnedRef(o)
	}
	return ValueRef{}
}

func ownedOrErr(r ValueRef) (Owned, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	o, ok := r.Owned()
	if !ok {
		return nil, ErrConversion
	}
	return o, nil
}

// ToBool extracts an owned Bool.
func ToBool(r ValueRef) (bool, error) {
	o, err := ownedOrErr(r)
	if err != nil {
		return false, err
	}
	b, ok := o.(Bool)
	if !ok {
		return false, ErrConversion
	}
	return bool(b), nil
}

// ToChar extracts an owned Char.
func ToChar(r ValueRef) (rune, error) {
	o, err := ownedOrErr(r)
	if err != nil {
		return 0, err
	}
	c, ok := o.(Char)
	if !ok {
		return 0, ErrConversion
	}
	return rune(c), nil
}

// ToColor extracts an owned Color.
func ToColor(r ValueRef) (Color, error) {
	o, err := ownedOrErr(r)
	if err != nil {
		return Color{}, err
	}
	c, ok := o.(Color)
	if !ok {
		return Color{}, ErrConversion
	}
	return c, nil
}

// ToInt extracts an integer from an owned Signed or Unsigned. The value is
// converted with Go's conversion rules and no bounds check: a value that
// does not fit T is truncated to T's width in two's complement, so a
// negative Signed read as an unsigned type wraps around.
func ToInt[T Integer](r ValueRef) (T, error) {
	o, err := ownedOrErr(r)
	if err != nil {
		return 0, err
	}
	switch n := o.(type) {
	case Signed:
		return T(n), nil
	case Unsigned:
		return T(n), nil
	default:
		return 0, ErrConversion
	}
}

// ToFloat extracts an owned Float. Integers are not accepted.
func ToFloat[T Floating](r ValueRef) (T, error) {
	o, err := ownedOrErr(r)
	if err != nil {
		return 0, err
	}
	n, ok := o.(Float)
	if !ok {
		return 0, ErrConversion
	}
	return T(n), nil
}

// ToString extracts a Str as a copy that may outlive the frame.
func ToString(r ValueRef) (string, error) {
	s, err := ToStr(r)
	if err != nil {
		return "", err
	}
	return strings.Clone(s), nil
}

// ToStr extracts a Str without copying. The result belongs to the same
// frame as r.
func ToStr(r ValueRef) (string, error) {
	if err := r.Err(); err != nil {
		return "", err
	}
	s, ok := r.Str()
	if !ok {
		return "", ErrConversion
	}
	return s, nil
}
