// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// handlerQueueCapacity bounds a strand's handler queue. Posts beyond the
// bound wait with backoff rather than fail.
const handlerQueueCapacity = 1024

// drainBurst caps how many handlers one drain slice runs before handing
// the strand back to the ready queue, so sibling strands make progress.
const drainBurst = 32

// Strand is a serializing executor bound to a Loop: at most one handler
// runs on it at any instant. Handlers posted from any goroutine flow
// through a lock-free MPSC queue; the single-consumer constraint holds
// because a strand is drained only after the 0→1 pending transition and
// by exactly one drainer at a time.
type Strand struct {
	loop     *Loop
	handlers lfq.Queue[func()]
	pending  atomix.Int64
	active   atomix.Uint64
}

// NewStrand creates a strand on l.
// The handler queue uses the CAS-based MPSC variant for the same
// idle-producer reason as the loop's ready queue.
func NewStrand(l *Loop) *Strand {
	return &Strand{
		loop:     l,
		handlers: lfq.Build[func()](lfq.New(handlerQueueCapacity).SingleConsumer().Compact()),
	}
}

// Loop returns the execution context that drives this strand.
func (s *Strand) Loop() *Loop {
	return s.loop
}

// Post schedules h to run serialized on this strand, after all handlers
// already queued. Safe to call from any goroutine. The handler counts as
// loop work until it has run.
func (s *Strand) Post(h func()) {
	s.loop.workStarted()
	var bo iox.Backoff
	for s.handlers.Enqueue(&h) != nil {
		bo.Wait()
	}
	if s.pending.Add(1) == 1 {
		s.loop.schedule(s)
	}
}

// Dispatch runs h inline when the calling goroutine already occupies the
// strand, and posts it otherwise.
func (s *Strand) Dispatch(h func()) {
	if s.occupied() {
		h()
		return
	}
	s.Post(h)
}

// occupied reports whether the calling goroutine currently occupies s:
// either as the drainer or as a fiber resumed by it.
func (s *Strand) occupied() bool {
	return s.active.Load() == goid()
}

// WorkStarted pins the owning loop: Run does not return while the count
// is outstanding. Paired with WorkFinished.
func (s *Strand) WorkStarted() {
	s.loop.workStarted()
}

// WorkFinished releases one unit of work pinned by WorkStarted.
func (s *Strand) WorkFinished() {
	s.loop.workFinished()
}

// drain runs queued handlers until the pending count reaches zero or the
// burst bound is hit. The pending counter is incremented after enqueue,
// so a positive count guarantees the matching handler is (or is about to
// be) dequeueable.
func (s *Strand) drain() {
	s.active.Store(goid())
	for range drainBurst {
		h, err := s.handlers.Dequeue()
		if err != nil {
			var bo iox.Backoff
			for err != nil {
				bo.Wait()
				h, err = s.handlers.Dequeue()
			}
		}
		h()
		s.loop.workFinished()
		if s.pending.Add(-1) == 0 {
			s.active.Store(0)
			return
		}
	}
	// Handlers remain; requeue while still owning the strand. No CAS
	// race: posts only schedule on the 0→1 transition and pending > 0.
	s.active.Store(0)
	s.loop.schedule(s)
}
