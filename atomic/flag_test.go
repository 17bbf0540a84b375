package atomic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag(t *testing.T) {
	t.Run("GetSet", func(t *testing.T) {
		f := NewFlag(false)
		assert.False(t, f.Get())
		f.Set(true)
		assert.True(t, f.Get())
	})

	t.Run("CompareAndSet", func(t *testing.T) {
		f := NewFlag(false)
		require.True(t, f.CompareAndSet(false, true))
		assert.True(t, f.Get())
		assert.False(t, f.CompareAndSet(false, true), "expected value no longer matches")
		assert.True(t, f.Get())
	})

	t.Run("WeakCompareAndSet", func(t *testing.T) {
		f := NewFlag(true)
		require.True(t, f.WeakCompareAndSet(true, false))
		assert.False(t, f.Get())
	})

	t.Run("GetAndSet", func(t *testing.T) {
		f := NewFlag(false)
		old := f.GetAndSet(true)
		assert.False(t, old)
		assert.True(t, f.Get())
	})

	t.Run("ConcurrentCompareAndSetHasExactlyOneWinner", func(t *testing.T) {
		f := NewFlag(false)
		var wg sync.WaitGroup
		wins := NewCounter(0)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if f.CompareAndSet(false, true) {
					wins.IncrementAndGet()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int64(1), wins.Get())
	})
}
