// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// readyQueueCapacity bounds the loop's ready-strand queue. Strands are few
// and a strand occupies at most one slot at a time.
const readyQueueCapacity = 256

// Loop is an I/O execution context: it owns the ready queue of strands
// with pending handlers and a count of outstanding work that keeps Run
// alive across suspensions.
//
// Run may be called from one or more goroutines; strand serialization is
// preserved either way.
type Loop struct {
	ready   lfq.Queue[*Strand]
	work    atomix.Int64
	stopped atomix.Uint32
}

// NewLoop creates an empty execution context.
// The ready queue uses the CAS-based MPMC variant: producers may go idle
// for long stretches, which the FAA threshold mechanism tolerates poorly.
func NewLoop() *Loop {
	return &Loop{
		ready: lfq.Build[*Strand](lfq.New(readyQueueCapacity).Compact()),
	}
}

// Run drives ready strands until the outstanding work count reaches zero
// or the loop is stopped. Waits for pending completions (timers, foreign
// posts) with adaptive backoff.
func (l *Loop) Run() {
	var bo iox.Backoff
	for {
		if l.stopped.Load() != 0 {
			return
		}
		s, err := l.ready.Dequeue()
		if err != nil {
			if l.work.Load() == 0 {
				return
			}
			bo.Wait()
			continue
		}
		bo.Reset()
		s.drain()
	}
}

// Stop aborts the loop: Run returns without draining remaining handlers.
// Suspended fibers are abandoned in place.
func (l *Loop) Stop() {
	l.stopped.Store(1)
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	return l.stopped.Load() != 0
}

// schedule enqueues s on the ready queue, waiting out transient fullness.
func (l *Loop) schedule(s *Strand) {
	var bo iox.Backoff
	for l.ready.Enqueue(&s) != nil {
		bo.Wait()
	}
}

func (l *Loop) workStarted() {
	l.work.Add(1)
}

func (l *Loop) workFinished() {
	l.work.Add(-1)
}
