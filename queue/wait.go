package queue

import (
	"context"
	"sync"
)

// fairWaiters is an explicit FIFO of condition waiters, used when a
// BlockingQueue is constructed with fair=true. Wake order matches arrival
// order, unlike a bare sync.Cond which offers no such guarantee to callers.
//
// A ticket stays in the queue for its whole lifetime, from enqueue through
// being granted by signalOne to actually being claimed by its owner — it is
// only spliced out by remove, which the owner calls after it has
// reacquired the outer mutex. This is what lets hasWaiters report "someone
// is still ahead of you" for the entire window between a waiter being
// granted its turn and that waiter actually running again, so a fresh
// non-blocking caller can't race in and act on a slot or element that has
// already been promised to a queued waiter.
type fairWaiters struct {
	mu sync.Mutex
	q  []chan struct{}
}

// enqueue appends a fresh, buffered ticket to the tail of the FIFO and
// returns it. The caller blocks on it to be woken in arrival order.
func (w *fairWaiters) enqueue() chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	ch := make(chan struct{}, 1)
	w.q = append(w.q, ch)
	return ch
}

// signalOne grants one pending slot/element to the longest-waiting ticket
// that hasn't already been granted one. It scans past tickets that are
// granted-but-not-yet-claimed instead of re-signaling them, so two signals
// arriving before the first waiter wakes up correctly reach two distinct
// waiters rather than piling up on (and blocking forever on) the same one.
// A no-op if every queued ticket already holds a grant, or nobody is
// queued.
func (w *fairWaiters) signalOne() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.q {
		select {
		case ch <- struct{}{}:
			return
		default:
			// already granted to this ticket, not yet claimed; try the
			// next one.
		}
	}
}

// remove drops ch from the FIFO, whether or not it has been granted yet,
// and reports whether it was still present.
func (w *fairWaiters) remove(ch chan struct{}) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, c := range w.q {
		if c == ch {
			w.q = append(w.q[:i], w.q[i+1:]...)
			return true
		}
	}
	return false
}

// hasWaiters reports whether anyone is still queued, granted or not. A
// fair-mode non-blocking operation consults this before acting on a
// favorable predicate, so it never jumps ahead of a waiter that has
// already been queued (and possibly already granted its turn) but hasn't
// run yet.
func (w *fairWaiters) hasWaiters() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.q) > 0
}

// await blocks the calling goroutine, which must currently hold outer,
// until pred() is false or ctx is done. In fair mode each pass waits for
// the waiter's ticket to be granted and then re-checks pred(). It always
// returns with outer held again. In fair
// mode an interruption that raced with a grant forwards that grant to the
// next queued waiter so no wakeup is lost; in non-fair mode the same
// forwarding happens via cond.Signal.
func await(ctx context.Context, outer *sync.Mutex, fair bool, fairQ *fairWaiters, cond *sync.Cond, pred func() bool) error {
	for pred() {
		if fair {
			ch := fairQ.enqueue()
			outer.Unlock()
			select {
			case <-ch:
				outer.Lock()
				fairQ.remove(ch)
			case <-ctx.Done():
				outer.Lock()
				granted := false
				select {
				case <-ch:
					granted = true
				default:
				}
				fairQ.remove(ch)
				if granted {
					// Our ticket was already granted before we noticed
					// ctx was done: we're abandoning the wait, so pass
					// the grant on instead of letting it go to waste.
					fairQ.signalOne()
				}
				return ctx.Err()
			}
		} else {
			stop := make(chan struct{})
			go func() {
				select {
				case <-ctx.Done():
					outer.Lock()
					cond.Broadcast()
					outer.Unlock()
				case <-stop:
				}
			}()
			cond.Wait()
			close(stop)
			if err := ctx.Err(); err != nil {
				if !pred() {
					// We were woken by a genuine Signal from a producer
					// or consumer, not just our own ctx-driven Broadcast,
					// and the predicate is now satisfied for someone.
					// Bailing out here without forwarding would strand
					// that wakeup, leaving another waiter parked despite
					// the queue having room or an element for it.
					cond.Signal()
				}
				return err
			}
		}
	}
	return nil
}
