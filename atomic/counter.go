package atomic

import "sync/atomic"

// Counter is a mutually-exclusive int64 with get/set/CAS and arithmetic.
// Each operation is individually atomic.
type Counter struct {
	v atomic.Int64
}

// NewCounter returns a Counter initialized to v.
func NewCounter(v int64) *Counter {
	c := &Counter{}
	c.v.Store(v)
	return c
}

// Get returns the current value.
func (c *Counter) Get() int64 {
	return c.v.Load()
}

// Set stores v unconditionally.
func (c *Counter) Set(v int64) {
	c.v.Store(v)
}

// GetAndSet stores newVal and returns the previous value.
func (c *Counter) GetAndSet(newVal int64) int64 {
	return c.v.Swap(newVal)
}

// CompareAndSet replaces the value with newVal if the current value equals
// expected, and reports whether it did. Never fails spuriously.
func (c *Counter) CompareAndSet(expected, newVal int64) bool {
	return c.v.CompareAndSwap(expected, newVal)
}

// WeakCompareAndSet has the same contract as CompareAndSet; see Flag.WeakCompareAndSet.
func (c *Counter) WeakCompareAndSet(expected, newVal int64) bool {
	return c.v.CompareAndSwap(expected, newVal)
}

// GetAndIncrement returns the value before incrementing it by one.
func (c *Counter) GetAndIncrement() int64 {
	return c.v.Add(1) - 1
}

// GetAndDecrement returns the value before decrementing it by one.
func (c *Counter) GetAndDecrement() int64 {
	return c.v.Add(-1) + 1
}

// IncrementAndGet increments by one and returns the updated value.
func (c *Counter) IncrementAndGet() int64 {
	return c.v.Add(1)
}

// DecrementAndGet decrements by one and returns the updated value.
func (c *Counter) DecrementAndGet() int64 {
	return c.v.Add(-1)
}

// GetAndAdd returns the value before adding delta.
func (c *Counter) GetAndAdd(delta int64) int64 {
	return c.v.Add(delta) - delta
}

// AddAndGet adds delta and returns the updated value.
func (c *Counter) AddAndGet(delta int64) int64 {
	return c.v.Add(delta)
}

// Int32 narrows the current value to int32, truncating as a plain Go
// numeric conversion does.
func (c *Counter) Int32() int32 {
	return int32(c.v.Load())
}

// Int16 narrows the current value to int16, truncating as a plain Go
// numeric conversion does.
func (c *Counter) Int16() int16 {
	return int16(c.v.Load())
}
