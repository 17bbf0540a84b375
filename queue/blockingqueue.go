// Package queue implements BlockingQueue, a bounded, thread-safe FIFO
// queue for producer/consumer hand-off between goroutines. It blocks
// producers when full and consumers when empty, supports timed and
// context-cancelable waits, an optional strict-FIFO fairness discipline
// for waiters, and single-critical-section bulk draining into a Sink.
package queue

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/concurrentkit/blockingqueue/common"
)

// BlockingQueue is a bounded FIFO queue safe for concurrent use by any
// number of producer and consumer goroutines. The zero value is not
// usable; construct one with New, NewFair or NewFromSlice.
type BlockingQueue[T comparable] struct {
	mu   sync.Mutex
	ring *ring[T]
	fair bool

	notEmptyCond *sync.Cond
	notFullCond  *sync.Cond
	notEmptyFair *fairWaiters
	notFullFair  *fairWaiters
}

// New constructs a non-fair BlockingQueue with the given capacity.
func New[T comparable](capacity int) (*BlockingQueue[T], error) {
	return newQueue[T](capacity, false, nil)
}

// NewFair constructs a BlockingQueue whose waiters are woken in strict
// arrival order.
func NewFair[T comparable](capacity int) (*BlockingQueue[T], error) {
	return newQueue[T](capacity, true, nil)
}

// NewFromSlice constructs a BlockingQueue seeded with the elements of seed,
// in order. seed must be non-nil and no larger than capacity; a nil seed
// is treated as an absent collection, matching spec'd NullCollection
// behavior, not as "seed with zero elements" (pass an empty, non-nil slice
// for that).
func NewFromSlice[T comparable](capacity int, fair bool, seed []T) (*BlockingQueue[T], error) {
	if seed == nil {
		return nil, common.WithParam(common.ErrNullCollection, "collection")
	}
	if len(seed) > capacity {
		return nil, common.WithParam(common.ErrCollectionTooLarge, "collection")
	}
	q, err := newQueue[T](capacity, fair, nil)
	if err != nil {
		return nil, err
	}
	for _, v := range seed {
		q.ring.enqueue(v)
	}
	return q, nil
}

func newQueue[T comparable](capacity int, fair bool, _ []T) (*BlockingQueue[T], error) {
	if capacity <= 0 {
		return nil, common.ErrInvalidCapacity
	}
	q := &BlockingQueue[T]{
		ring: newRing[T](capacity),
		fair: fair,
	}
	q.notEmptyCond = sync.NewCond(&q.mu)
	q.notFullCond = sync.NewCond(&q.mu)
	q.notEmptyFair = &fairWaiters{}
	q.notFullFair = &fairWaiters{}
	return q, nil
}

// Cap returns the fixed capacity the queue was constructed with.
func (q *BlockingQueue[T]) Cap() int {
	return q.ring.capacity()
}

// IsFair reports whether the queue wakes waiters in strict arrival order.
func (q *BlockingQueue[T]) IsFair() bool {
	return q.fair
}

// Len returns the number of elements currently held.
func (q *BlockingQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.count
}

// RemainingCapacity returns Cap() - Len().
func (q *BlockingQueue[T]) RemainingCapacity() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.capacity() - q.ring.count
}

// IsEmpty reports whether the queue currently holds no elements.
func (q *BlockingQueue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.isEmpty()
}

// IsFull reports whether the queue is currently at capacity.
func (q *BlockingQueue[T]) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.isFull()
}

// Contains reports whether e is present, using == for comparison.
func (q *BlockingQueue[T]) Contains(e T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := 0; i < q.ring.count; i++ {
		if q.ring.at(i) == e {
			return true
		}
	}
	return false
}

// Peek returns the head element without removing it, or the zero value and
// false if the queue is empty.
func (q *BlockingQueue[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.peek()
}

// ToSlice returns a snapshot copy of the current elements in FIFO order.
func (q *BlockingQueue[T]) ToSlice() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.toSlice()
}

// isNilElement reports whether e is a nil pointer/interface/slice/map/chan/
// func — the Go-native reading of spec'd "null element" for a generic
// element type.
func isNilElement[T any](e T) bool {
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// Add inserts e without blocking, failing with ErrQueueFull if the queue
// is at capacity, if a queued fair-mode waiter already has priority for
// the next open slot, or with ErrNullElement if e is nil.
func (q *BlockingQueue[T]) Add(e T) error {
	if isNilElement(e) {
		return common.WithParam(common.ErrNullElement, "element")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.isFull() || q.barredByFairWaiters(q.notFullFair) {
		return common.ErrQueueFull
	}
	q.enqueueLocked(e)
	return nil
}

// Offer inserts e without blocking. It returns (false, nil) if the queue
// is full or a queued fair-mode waiter already has priority for the next
// open slot, and (false, ErrNullElement) if e is nil.
func (q *BlockingQueue[T]) Offer(e T) (bool, error) {
	if isNilElement(e) {
		return false, common.WithParam(common.ErrNullElement, "element")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.isFull() || q.barredByFairWaiters(q.notFullFair) {
		return false, nil
	}
	q.enqueueLocked(e)
	return true, nil
}

// OfferTimeout inserts e, waiting up to timeout for room if the queue is
// full. It returns (false, nil) on a plain timeout, (false, ErrInterrupted)
// if ctx is canceled before timeout or room, and (false, ErrNullElement)
// if e is nil.
func (q *BlockingQueue[T]) OfferTimeout(ctx context.Context, e T, timeout time.Duration) (bool, error) {
	if isNilElement(e) {
		return false, common.WithParam(common.ErrNullElement, "element")
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q.mu.Lock()
	defer q.mu.Unlock()
	if err := await(ctx2, &q.mu, q.fair, q.notFullFair, q.notFullCond, q.ring.isFull); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return false, common.ErrInterrupted
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return false, nil
		}
		return false, common.ErrInterrupted
	}
	q.enqueueLocked(e)
	return true, nil
}

// Put inserts e, waiting indefinitely for room unless ctx is canceled
// first, in which case it returns ErrInterrupted.
func (q *BlockingQueue[T]) Put(ctx context.Context, e T) error {
	if isNilElement(e) {
		return common.WithParam(common.ErrNullElement, "element")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := await(ctx, &q.mu, q.fair, q.notFullFair, q.notFullCond, q.ring.isFull); err != nil {
		return common.ErrInterrupted
	}
	q.enqueueLocked(e)
	return nil
}

// Poll removes and returns the head element without blocking. ok is false
// if the queue was empty or a queued fair-mode waiter already has priority
// for the next available element.
func (q *BlockingQueue[T]) Poll() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.isEmpty() || q.barredByFairWaiters(q.notEmptyFair) {
		return v, false
	}
	return q.dequeueLocked(), true
}

// PollTimeout removes and returns the head element, waiting up to timeout
// for one to arrive. ok is false and err is nil on a plain timeout; err is
// ErrInterrupted if ctx is canceled before timeout or an element arrives.
func (q *BlockingQueue[T]) PollTimeout(ctx context.Context, timeout time.Duration) (v T, ok bool, err error) {
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q.mu.Lock()
	defer q.mu.Unlock()
	if err := await(ctx2, &q.mu, q.fair, q.notEmptyFair, q.notEmptyCond, q.ring.isEmpty); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return v, false, common.ErrInterrupted
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return v, false, nil
		}
		return v, false, common.ErrInterrupted
	}
	return q.dequeueLocked(), true, nil
}

// Take removes and returns the head element, waiting indefinitely unless
// ctx is canceled first, in which case it returns ErrInterrupted.
func (q *BlockingQueue[T]) Take(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := await(ctx, &q.mu, q.fair, q.notEmptyFair, q.notEmptyCond, q.ring.isEmpty); err != nil {
		var zero T
		return zero, common.ErrInterrupted
	}
	return q.dequeueLocked(), nil
}

// Remove removes and returns the head element without blocking, failing
// with ErrQueueEmpty if the queue is empty or a queued fair-mode waiter
// already has priority for the next available element.
func (q *BlockingQueue[T]) Remove() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.isEmpty() || q.barredByFairWaiters(q.notEmptyFair) {
		var zero T
		return zero, common.ErrQueueEmpty
	}
	return q.dequeueLocked(), nil
}

// barredByFairWaiters reports whether a non-blocking caller must defer to
// an existing fair-mode waiter on fairQ rather than act on a predicate
// that currently looks favorable. Only relevant in fair mode: non-fair
// mode has no arrival-order guarantee to preserve.
func (q *BlockingQueue[T]) barredByFairWaiters(fairQ *fairWaiters) bool {
	return q.fair && fairQ.hasWaiters()
}

// DrainTo moves every element currently queued into sink, in take order,
// under a single mutex acquisition, and returns the count moved.
func (q *BlockingQueue[T]) DrainTo(sink Sink[T]) (int, error) {
	return q.drainTo(sink, -1, nil)
}

// DrainToN moves up to max elements into sink, in take order. max <= 0
// moves none.
func (q *BlockingQueue[T]) DrainToN(sink Sink[T], max int) (int, error) {
	if max < 0 {
		if err := q.checkSink(sink); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return q.drainTo(sink, max, nil)
}

// DrainToFunc moves every element for which pred returns true into sink;
// non-matching elements are retained in their original relative order.
func (q *BlockingQueue[T]) DrainToFunc(sink Sink[T], pred func(T) bool) (int, error) {
	return q.drainTo(sink, -1, pred)
}

func (q *BlockingQueue[T]) enqueueLocked(e T) {
	q.ring.enqueue(e)
	if q.fair {
		q.notEmptyFair.signalOne()
	} else {
		q.notEmptyCond.Signal()
	}
}

func (q *BlockingQueue[T]) dequeueLocked() T {
	v := q.ring.dequeue()
	if q.fair {
		q.notFullFair.signalOne()
	} else {
		q.notFullCond.Signal()
	}
	return v
}
