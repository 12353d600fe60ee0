package glint

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func roundTripInt[T Signedish](t *testing.T, v T) {
	t.Helper()
	got, err := ToInt[T](OwnedRef(SignedOf(v)))
	if err != nil || got != v {
		t.Errorf("%T %v: got %v, %v", v, v, got, err)
	}
}

func roundTripUint[T Unsignedish](t *testing.T, v T) {
	t.Helper()
	got, err := ToInt[T](OwnedRef(UnsignedOf(v)))
	if err != nil || got != v {
		t.Errorf("%T %v: got %v, %v", v, v, got, err)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("signed", func(t *testing.T) {
		roundTripInt(t, int(-42))
		roundTripInt(t, int8(math.MinInt8))
		roundTripInt(t, int16(math.MaxInt16))
		roundTripInt(t, int32(-7))
		roundTripInt(t, int64(math.MinInt64))
	})

	t.Run("unsigned", func(t *testing.T) {
		roundTripUint(t, uint(42))
		roundTripUint(t, uint8(math.MaxUint8))
		roundTripUint(t, uint16(7))
		roundTripUint(t, uint32(math.MaxUint32))
		roundTripUint(t, uint64(math.MaxUint64))
	})

	t.Run("float", func(t *testing.T) {
		got, err := ToFloat[float64](OwnedRef(FloatOf(2.5)))
		if err != nil || got != 2.5 {
			t.Errorf("got %v, %v", got, err)
		}
		got32, err := ToFloat[float32](OwnedRef(FloatOf(float32(0.25))))
		if err != nil || got32 != 0.25 {
			t.Errorf("got %v, %v", got32, err)
		}
	})

	t.Run("bool char color", func(t *testing.T) {
		b, err := ToBool(OwnedRef(Bool(true)))
		if err != nil || !b {
			t.Errorf("got %v, %v", b, err)
		}
		c, err := ToChar(OwnedRef(Char('λ')))
		if err != nil || c != 'λ' {
			t.Errorf("got %q, %v", c, err)
		}
		col, err := ToColor(OwnedRef(Hex(0xff5500)))
		if err != nil || col != RGB(0xff, 0x55, 0x00) {
			t.Errorf("got %v, %v", col, err)
		}
	})

	t.Run("string", func(t *testing.T) {
		f := NewFrame()
		f.Begin()
		defer f.End()

		s, err := ToString(ValueOf(f, "hello"))
		if err != nil || s != "hello" {
			t.Errorf("got %q, %v", s, err)
		}
		borrowed, err := ToStr(f.Str("view"))
		if err != nil || borrowed != "view" {
			t.Errorf("got %q, %v", borrowed, err)
		}
	})
}

func TestToIntCrossSign(t *testing.T) {
	t.Run("unsigned from signed", func(t *testing.T) {
		got, err := ToInt[uint](OwnedRef(Signed(5)))
		if err != nil || got != 5 {
			t.Errorf("got %v, %v", got, err)
		}
	})

	t.Run("signed from unsigned", func(t *testing.T) {
		got, err := ToInt[int32](OwnedRef(Unsigned(5)))
		if err != nil || got != 5 {
			t.Errorf("got %v, %v", got, err)
		}
	})

	t.Run("narrowing wraps", func(t *testing.T) {
		got, err := ToInt[uint8](OwnedRef(Signed(-1)))
		if err != nil || got != math.MaxUint8 {
			t.Errorf("got %v, %v", got, err)
		}
		trunc, err := ToInt[int8](OwnedRef(Signed(300)))
		if err != nil || trunc != 44 {
			t.Errorf("got %v, %v", trunc, err)
		}
	})
}

func TestConversionMismatch(t *testing.T) {
	f := NewFrame()
	f.Begin()
	defer f.End()

	checks := []struct {
		name string
		fn   func() error
	}{
		{"int from str", func() error { _, err := ToInt[uint](f.Str("5")); return err }},
		{"int from bool", func() error { _, err := ToInt[int](OwnedRef(Bool(true))); return err }},
		{"int from float", func() error { _, err := ToInt[int](OwnedRef(Float(1))); return err }},
		{"float from int", func() error { _, err := ToFloat[float64](OwnedRef(Signed(1))); return err }},
		{"bool from signed", func() error { _, err := ToBool(OwnedRef(Signed(1))); return err }},
		{"bool from str", func() error { _, err := ToBool(f.Str("true")); return err }},
		{"char from str", func() error { _, err := ToChar(f.Str("a")); return err }},
		{"color from str", func() error { _, err := ToColor(f.Str("red")); return err }},
		{"string from owned", func() error { _, err := ToString(OwnedRef(Signed(1))); return err }},
		{"string from empty", func() error { _, err := ToString(ValueRef{}); return err }},
		{"string from map", func() error { _, err := ToStr(f.Map(NewMap[int]())); return err }},
		{"int from deferred", func() error { _, err := ToInt[int](Deferred()); return err }},
	}

	for _, tt := range checks {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrConversion) {
				t.Errorf("expected ErrConversion, got %v", err)
			}
		})
	}
}

func TestConversionAfterFrame(t *testing.T) {
	f := NewFrame()
	f.Begin()
	s := f.Str("gone")
	f.End()

	if _, err := ToString(s); !errors.Is(err, ErrFrameClosed) {
		t.Errorf("expected ErrFrameClosed, got %v", err)
	}
	if n, err := ToInt[int](OwnedRef(Signed(3))); err != nil || n != 3 {
		t.Errorf("owned values outlive frames, got %v, %v", n, err)
	}
}

func TestValueOf(t *testing.T) {
	f := NewFrame()
	f.Begin()
	defer f.End()

	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, KindEmpty},
		{"string", "s", KindStr},
		{"bytes", []byte("b"), KindStr},
		{"bool", true, KindOwned},
		{"int", 3, KindOwned},
		{"uint16", uint16(3), KindOwned},
		{"float32", float32(1), KindOwned},
		{"color", Red, KindOwned},
		{"char", Char('x'), KindOwned},
		{"map", map[string]any{"a": 1}, KindMap},
		{"slice", []any{1, "a"}, KindList},
		{"strings", []string{"a"}, KindList},
		{"state", NewMap[int](), KindMap},
		{"collection", NewList[string](), KindList},
		{"expressions", Expressions{}, KindExpressions},
		{"expression map", ExpressionMap{}, KindExpressionMap},
		{"ref", OwnedRef(Bool(true)), KindOwned},
		{"struct", struct{}{}, KindEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueOf(f, tt.in).Kind(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("int32 is a number", func(t *testing.T) {
		o, _ := OwnedOf(int32('a'))
		if _, ok := o.(Signed); !ok {
			t.Errorf("expected Signed, got %T", o)
		}
	})

	t.Run("lazy elements", func(t *testing.T) {
		v := ValueOf(f, []any{map[string]any{"n": 7}})
		n, err := ToInt[int](v.Index(0).Get("n"))
		if err != nil || n != 7 {
			t.Errorf("got %v, %v", n, err)
		}
	})
}
