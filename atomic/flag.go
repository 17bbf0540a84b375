// Package atomic provides small atomic scalar primitives for callers that
// need a signaling boolean or a sequence/stat counter with a well-defined
// memory-visibility contract, such as cmd/queuestress's run counters.
package atomic

import "sync/atomic"

// Flag is a mutually-exclusive boolean with a full get/set/CAS surface.
// Every update happens-before every subsequent read on any goroutine.
type Flag struct {
	v atomic.Bool
}

// NewFlag returns a Flag initialized to v.
func NewFlag(v bool) *Flag {
	f := &Flag{}
	f.v.Store(v)
	return f
}

// Get returns the current value.
func (f *Flag) Get() bool {
	return f.v.Load()
}

// Set stores v unconditionally.
func (f *Flag) Set(v bool) {
	f.v.Store(v)
}

// CompareAndSet replaces the value with newVal if the current value equals
// expected, and reports whether it did. Never fails spuriously.
func (f *Flag) CompareAndSet(expected, newVal bool) bool {
	return f.v.CompareAndSwap(expected, newVal)
}

// WeakCompareAndSet has the same contract as CompareAndSet. Go's
// atomic.Bool.CompareAndSwap never fails spuriously, so there is nothing
// weaker to implement; this method exists for API parity with callers that
// expect the distinction.
func (f *Flag) WeakCompareAndSet(expected, newVal bool) bool {
	return f.v.CompareAndSwap(expected, newVal)
}

// GetAndSet stores newVal and returns the previous value.
func (f *Flag) GetAndSet(newVal bool) bool {
	return f.v.Swap(newVal)
}
