package queue

import "github.com/concurrentkit/blockingqueue/common"

// drainTo is the single-mutex-acquisition bulk transfer shared by DrainTo,
// DrainToN and DrainToFunc. It never removes an element from the ring
// until sink.Add has already accepted it, so a failing sink leaves that
// element exactly where it was — at the head of the still-unprocessed
// window — without any extra bookkeeping to "roll back".
//
// pred == nil means "match everything" (the DrainTo/DrainToN behavior).
// max < 0 means "no limit" (the DrainTo/DrainToFunc behavior).
func (q *BlockingQueue[T]) drainTo(sink Sink[T], max int, pred func(T) bool) (int, error) {
	if err := q.checkSink(sink); err != nil {
		return 0, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	moved := 0
	if max == 0 {
		return 0, nil
	}

	if pred == nil {
		for q.ring.count > 0 && (max < 0 || moved < max) {
			v, _ := q.ring.peek()
			if err := sink.Add(v); err != nil {
				q.signalNotFullLocked(moved)
				return moved, err
			}
			q.ring.dequeue()
			moved++
		}
	} else {
		i := 0
		for i < q.ring.count && (max < 0 || moved < max) {
			v := q.ring.at(i)
			if !pred(v) {
				i++
				continue
			}
			if err := sink.Add(v); err != nil {
				q.signalNotFullLocked(moved)
				return moved, err
			}
			q.ring.removeAt(i)
			moved++
			// the element that followed i has shifted into i; don't advance.
		}
	}

	q.signalNotFullLocked(moved)
	return moved, nil
}

// checkSink validates the shared failure modes every DrainTo* variant
// reports before touching the queue's mutex: an absent sink, and a sink
// that is the queue itself.
func (q *BlockingQueue[T]) checkSink(sink Sink[T]) error {
	if sink == nil {
		return common.WithParam(common.ErrNullCollection, "collection")
	}
	if bq, ok := any(sink).(*BlockingQueue[T]); ok && bq == q {
		return common.WithParam(common.ErrSelfDrain, "collection")
	}
	return nil
}

// signalNotFullLocked wakes up to n producers waiting on notFull, one per
// freed slot, matching the fair-mode requirement that a drain removing k
// elements unblocks up to k waiting producers. Caller must hold q.mu.
func (q *BlockingQueue[T]) signalNotFullLocked(n int) {
	for i := 0; i < n; i++ {
		if q.fair {
			q.notFullFair.signalOne()
		} else {
			q.notFullCond.Signal()
		}
	}
}
