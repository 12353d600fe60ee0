package glint

// List is ordered state that notifies listeners on changes. It is a
// Collection; elements are converted with ValueOf when read.
type List[T any] struct {
	items     []T
	listeners []func(Change[T])
}

// Change describes a modification to the list.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Item  T // For Add/Update, the new value
	Old   T // For Update/Remove, the old value
}

type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
	ChangeClear
	ChangeSet // Full replacement
)

// NewList creates an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// ListOf wraps items without copying them.
func ListOf[T any](items ...T) *List[T] {
	return &List[T]{items: items}
}

// Items returns all items.
func (l *List[T]) Items() []T {
	return l.items
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the item at index i, or zero value if out of bounds.
func (l *List[T]) At(i int) T {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero
	}
	return l.items[i]
}

// Index implements Collection.
func (l *List[T]) Index(f *Frame, i int) ValueRef {
	if i < 0 || i >= len(l.items) {
		return ValueRef{}
	}
	return ValueOf(f, l.items[i])
}

// Set replaces all items.
func (l *List[T]) Set(items []T) *List[T] {
	l.items = items
	l.notify(Change[T]{Type: ChangeSet})
	return l
}

// Add appends an item.
func (l *List[T]) Add(item T) *List[T] {
	idx := len(l.items)
	l.items = append(l.items, item)
	l.notify(Change[T]{Type: ChangeAdd, Index: idx, Item: item})
	return l
}

// Insert inserts an item at index i.
func (l *List[T]) Insert(i int, item T) *List[T] {
	i = max(0, min(i, len(l.items)))
	l.items = append(l.items[:i], append([]T{item}, l.items[i:]...)...)
	l.notify(Change[T]{Type: ChangeAdd, Index: i, Item: item})
	return l
}

// RemoveAt removes the item at index i.
func (l *List[T]) RemoveAt(i int) *List[T] {
	if i < 0 || i >= len(l.items) {
		return l
	}
	old := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.notify(Change[T]{Type: ChangeRemove, Index: i, Old: old})
	return l
}

// Update modifies the item at index i.
func (l *List[T]) Update(i int, fn func(*T)) *List[T] {
	if i < 0 || i >= len(l.items) {
		return l
	}
	old := l.items[i]
	fn(&l.items[i])
	l.notify(Change[T]{Type: ChangeUpdate, Index: i, Item: l.items[i], Old: old})
	return l
}

// Clear removes all items.
func (l *List[T]) Clear() *List[T] {
	l.items = l.items[:0]
	l.notify(Change[T]{Type: ChangeClear})
	return l
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (l *List[T]) Subscribe(fn func(Change[T])) func() {
	l.listeners = append(l.listeners, fn)
	idx := len(l.listeners) - 1
	return func() {
		// nil out, indices of other listeners stay put
		l.listeners[idx] = nil
	}
}

func (l *List[T]) notify(c Change[T]) {
	for _, fn := range l.listeners {
		if fn != nil {
			fn(c)
		}
	}
}
