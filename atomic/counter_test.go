package atomic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Run("GetSet", func(t *testing.T) {
		c := NewCounter(5)
		assert.EqualValues(t, 5, c.Get())
		c.Set(10)
		assert.EqualValues(t, 10, c.Get())
	})

	t.Run("GetAndSet", func(t *testing.T) {
		c := NewCounter(1)
		old := c.GetAndSet(9)
		assert.EqualValues(t, 1, old)
		assert.EqualValues(t, 9, c.Get())
	})

	t.Run("CompareAndSet", func(t *testing.T) {
		c := NewCounter(1)
		require.True(t, c.CompareAndSet(1, 2))
		assert.False(t, c.CompareAndSet(1, 3))
		assert.EqualValues(t, 2, c.Get())
	})

	t.Run("IncrementDecrement", func(t *testing.T) {
		c := NewCounter(0)
		assert.EqualValues(t, 0, c.GetAndIncrement())
		assert.EqualValues(t, 1, c.Get())
		assert.EqualValues(t, 2, c.IncrementAndGet())
		assert.EqualValues(t, 2, c.GetAndDecrement())
		assert.EqualValues(t, 1, c.Get())
		assert.EqualValues(t, 0, c.DecrementAndGet())
	})

	t.Run("AddVariants", func(t *testing.T) {
		c := NewCounter(10)
		assert.EqualValues(t, 10, c.GetAndAdd(5))
		assert.EqualValues(t, 15, c.Get())
		assert.EqualValues(t, 20, c.AddAndGet(5))
	})

	t.Run("NarrowingTruncates", func(t *testing.T) {
		c := NewCounter(1<<32 + 7)
		assert.EqualValues(t, 7, c.Int32())
		c.Set(1<<16 + 3)
		assert.EqualValues(t, 3, c.Int16())
	})

	t.Run("ConcurrentAddAndGetIsLinearizable", func(t *testing.T) {
		c := NewCounter(0)
		var wg sync.WaitGroup
		const goroutines, perGoroutine = 50, 200
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perGoroutine; j++ {
					c.IncrementAndGet()
				}
			}()
		}
		wg.Wait()
		assert.EqualValues(t, goroutines*perGoroutine, c.Get())
	})
}
