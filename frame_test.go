package glint

import (
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/pkg/errors"
)

func TestFrame(t *testing.T) {
	t.Run("generations", func(t *testing.T) {
		f := NewFrame()
		if f.Open() || f.Generation() != 0 {
			t.Errorf("expected closed frame at generation 0, got %v %d", f.Open(), f.Generation())
		}
		f.Begin()
		if !f.Open() || f.Generation() != 1 {
			t.Errorf("expected open frame at generation 1, got %v %d", f.Open(), f.Generation())
		}
		f.End()
		f.Begin()
		if f.Generation() != 2 {
			t.Errorf("expected generation 2, got %d", f.Generation())
		}
		f.End()
	})

	t.Run("scope", func(t *testing.T) {
		f := NewFrame()
		var held ValueRef
		err := f.Scope(func(f *Frame) error {
			held = f.Str("inside")
			if !held.Valid() {
				return errors.New("expected valid ref inside scope")
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if f.Open() || held.Valid() {
			t.Error("expected frame closed and ref expired after scope")
		}
	})

	t.Run("closed frame reads nothing", func(t *testing.T) {
		f := NewFrame()
		st := NewMap[int]().Set("a", 1)
		if _, ok := f.Get(st, "a"); ok {
			t.Error("expected no read from a closed frame")
		}
		if !f.Item(ListOf(1), 0).IsEmpty() {
			t.Error("expected no item from a closed frame")
		}
	})

	t.Run("deferred from state becomes empty", func(t *testing.T) {
		var logged int
		log := funcr.New(func(prefix, args string) { logged++ }, funcr.Options{})
		f := NewFrame(WithFrameLogger(log))
		f.Begin()
		defer f.End()

		st := StateFunc(func(f *Frame, key string) (ValueRef, bool) {
			return Deferred(), true
		})
		v, ok := f.Get(st, "x")
		if !ok || !v.IsEmpty() {
			t.Errorf("expected empty, got %s %v", v, ok)
		}
		if logged != 1 {
			t.Errorf("expected 1 log line, got %d", logged)
		}
	})

	t.Run("lookup", func(t *testing.T) {
		f := NewFrame()
		f.Begin()
		defer f.End()

		st := MapOf(map[string]any{
			"disk": map[string]any{
				"mounts": []any{
					map[string]any{"path": "/"},
					map[string]any{"path": "/home"},
				},
			},
		})
		if got := Display(f.Lookup(st, "disk", "mounts", "1", "path")); got != "/home" {
			t.Errorf("expected /home, got %q", got)
		}
		if !f.Lookup(st, "disk", "nope", "path").IsEmpty() {
			t.Error("expected missing path to be empty")
		}
		if !f.Lookup(st, "disk", "mounts", "9").IsEmpty() {
			t.Error("expected out of range index to be empty")
		}
	})

	t.Run("item bounds", func(t *testing.T) {
		f := NewFrame()
		f.Begin()
		defer f.End()

		l := ListOf("a", "b")
		if !f.Item(l, -1).IsEmpty() || !f.Item(l, 2).IsEmpty() {
			t.Error("expected out of range items to be empty")
		}
		if got := Display(f.Item(l, 1)); got != "b" {
			t.Errorf("expected b, got %q", got)
		}
	})
}

func TestScope(t *testing.T) {
	f := NewFrame()
	f.Begin()
	defer f.End()

	parent := NewMap[any]().Set("title", "Disk").Set("item", "outer")
	s := NewScope(parent, "item", OwnedRef(Signed(4)))

	v, ok := f.Get(s, "item")
	if !ok || !v.Equal(OwnedRef(Signed(4))) {
		t.Errorf("expected bound item, got %s", v)
	}
	if got := Display(f.Lookup(s, "title")); got != "Disk" {
		t.Errorf("expected Disk, got %q", got)
	}
	if _, ok := f.Get(NewScope(nil, "x", ValueRef{}), "y"); ok {
		t.Error("expected unknown name without parent to be missing")
	}
}

func TestMap(t *testing.T) {
	m := NewMap[int]().Set("b", 2).Set("a", 1).Set("c", 3)
	m.Delete("c")
	if m.Len() != 2 {
		t.Errorf("expected len 2, got %d", m.Len())
	}
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected [a b], got %v", keys)
	}
	if v, ok := m.Value("a"); !ok || v != 1 {
		t.Errorf("expected 1, got %v %v", v, ok)
	}
}
