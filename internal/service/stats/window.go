package stats

import "fmt"

// Window is a bounded FIFO buffer of the most recent size samples.
// Pushing beyond capacity evicts the oldest sample.
type Window[T any] struct {
	size  int
	items []T
}

func NewWindow[T any](size int) *Window[T] {
	if size < 1 {
		panic(fmt.Sprintf("stats: window size must be >= 1, got %d", size))
	}
	return &Window[T]{
		size:  size,
		items: make([]T, 0, size),
	}
}

func (w *Window[T]) Push(v T) {
	if len(w.items) == w.size {
		copy(w.items, w.items[1:])
		w.items[len(w.items)-1] = v
		return
	}
	w.items = append(w.items, v)
}

func (w *Window[T]) Len() int {
	return len(w.items)
}

func (w *Window[T]) Cap() int {
	return w.size
}

func (w *Window[T]) Full() bool {
	return len(w.items) == w.size
}

// Oldest returns the first retained sample; the zero value when empty.
func (w *Window[T]) Oldest() T {
	if len(w.items) == 0 {
		var zero T
		return zero
	}
	return w.items[0]
}

// Last returns the most recent sample; the zero value when empty.
func (w *Window[T]) Last() T {
	if len(w.items) == 0 {
		var zero T
		return zero
	}
	return w.items[len(w.items)-1]
}

// Values returns the samples oldest first. The slice is a copy.
func (w *Window[T]) Values() []T {
	out := make([]T, len(w.items))
	copy(out, w.items)
	return out
}
