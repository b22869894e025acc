package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowBound(t *testing.T) {
	w := NewWindow[int](3)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 3, w.Cap())

	// N+k insertions keep exactly the last N in arrival order
	for i := 1; i <= 7; i++ {
		w.Push(i)
		assert.LessOrEqual(t, w.Len(), 3)
	}
	assert.Equal(t, []int{5, 6, 7}, w.Values())
	assert.Equal(t, 5, w.Oldest())
	assert.Equal(t, 7, w.Last())
	assert.True(t, w.Full())
}

func TestWindowPartial(t *testing.T) {
	w := NewWindow[string](4)
	w.Push("a")
	w.Push("b")
	assert.Equal(t, []string{"a", "b"}, w.Values())
	assert.Equal(t, "a", w.Oldest())
	assert.False(t, w.Full())
}

func TestWindowEmpty(t *testing.T) {
	w := NewWindow[int](2)
	assert.Equal(t, 0, w.Oldest())
	assert.Equal(t, 0, w.Last())
	assert.Empty(t, w.Values())
}

func TestWindowSizeOne(t *testing.T) {
	w := NewWindow[int](1)
	w.Push(1)
	w.Push(2)
	assert.Equal(t, []int{2}, w.Values())
}

func TestWindowInvalidSize(t *testing.T) {
	assert.Panics(t, func() {
		NewWindow[int](0)
	})
}

func TestWindowValuesIsCopy(t *testing.T) {
	w := NewWindow[int](2)
	w.Push(1)
	w.Push(2)
	vals := w.Values()
	vals[0] = 99
	assert.Equal(t, []int{1, 2}, w.Values())
}
