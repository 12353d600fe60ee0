package glint

import (
	"strconv"
)

// Owned is a self-contained scalar. Implementations are Bool, Char, Color,
// Signed, Unsigned and Float. Owned values are comparable with ==.
type Owned interface {
	owned()
	String() string
}

// Num is the numeric subset of Owned: Signed, Unsigned and Float.
type Num interface {
	Owned
	num()
}

type (
	// Bool is a boolean scalar.
	Bool bool
	// Char is a single character scalar.
	Char rune
	// Signed is a signed integer scalar.
	Signed int64
	// Unsigned is an unsigned integer scalar.
	Unsigned uint64
	// Float is a floating point scalar.
	Float float64
)

func (Bool) owned()     {}
func (Char) owned()     {}
func (Color) owned()    {}
func (Signed) owned()   {}
func (Unsigned) owned() {}
func (Float) owned()    {}

func (Signed) num()   {}
func (Unsigned) num() {}
func (Float) num()    {}

func (b Bool) String() string     { return strconv.FormatBool(bool(b)) }
func (c Char) String() string     { return string(rune(c)) }
func (s Signed) String() string   { return strconv.FormatInt(int64(s), 10) }
func (u Unsigned) String() string { return strconv.FormatUint(uint64(u), 10) }
func (f Float) String() string    { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// ownedTrue is the truthiness of an owned scalar: a Bool's value, or a
// signed or unsigned number above zero. Floats, chars and colors are false.
func ownedTrue(o Owned) bool {
	switch v := o.(type) {
	case Bool:
		return bool(v)
	case Signed:
		return v > 0
	case Unsigned:
		return v > 0
	default:
		return false
	}
}
