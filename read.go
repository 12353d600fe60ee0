package glint

import (
	"strings"

	"github.com/pkg/errors"
)

// Display returns the text v renders as. Strings render as themselves and
// scalars in their usual form. A list renders its items separated by
// spaces. Empty, Deferred, maps and expired refs render as nothing.
func Display(v ValueRef) string {
	if !v.Valid() {
		return ""
	}
	switch v.Kind() {
	case KindStr:
		s, _ := v.Str()
		return s
	case KindOwned:
		o, _ := v.Owned()
		return o.String()
	case KindList:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = Display(v.Index(i))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// ReadText resolves each part and concatenates what they display as.
func ReadText(f *Frame, r Resolver, parts Expressions, st State) (string, error) {
	values, err := ResolveAll(f, r, parts, st)
	if err != nil {
		return "", errors.Wrap(err, "read text")
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteString(Display(v))
	}
	return b.String(), nil
}

// ReadInt reads an integer attribute, falling back to def when v is missing
// or not an integer.
func ReadInt(v ValueRef, def int) int {
	n, err := ToInt[int](v)
	if err != nil {
		return def
	}
	return n
}

// ReadBool reads a boolean attribute, falling back to def when v is missing
// or not a Bool.
func ReadBool(v ValueRef, def bool) bool {
	b, err := ToBool(v)
	if err != nil {
		return def
	}
	return b
}

// ReadString reads a string attribute, falling back to def when v is
// missing or not a Str. The result is a copy.
func ReadString(v ValueRef, def string) string {
	s, err := ToString(v)
	if err != nil {
		return def
	}
	return s
}
