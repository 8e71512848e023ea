// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"log/slog"
	"runtime"

	"code.hybscloud.com/atomix"
)

// Fiber status values. Transitions between ready/running/suspended happen
// only inside handlers dispatched on the fiber's strand; the terminated
// states are final. Stored atomically so handle-side queries need no
// strand hop.
const (
	statusReady uint32 = iota
	statusRunning
	statusSuspended
	statusDone
	statusDoneInterrupted
)

// fiberState is the per-fiber control block. It is owned jointly by the
// fiber body, the external handle and any joiner; it stays reachable
// until the last of them has observed termination.
//
// Fields below the marker are strand-confined: they are touched only from
// handlers dispatched on strand (which includes the fiber body itself).
type fiberState struct {
	strand *Strand
	stack  *stackContext
	id     ID
	gid    uint64
	status atomix.Uint32

	// strand-confined state
	requested    bool
	disableDepth int
	forbidDepth  int
	interrupter  func()
	joiner       func()
}

// spawn allocates the control block and stack, pins the loop, and posts
// the initial resume handler.
func spawn(s *Strand, fn func(ThisFiber)) *Fiber {
	fs := &fiberState{strand: s, id: nextID()}
	s.WorkStarted()
	fs.stack = newStackContext(func() { fiberMain(fs, fn) })
	f := &Fiber{fs: fs, guard: &handleGuard{loop: s.loop, id: fs.id}}
	f.cleanup = runtime.AddCleanup(f, abortAbandoned, f.guard)
	s.Post(fs.resumeStep)
	return f
}

// Spawn starts a fiber on the given strand. The start function receives
// the fiber's ThisFiber handle. On return the fiber is scheduled and the
// strand's loop is pinned until the body finishes.
func Spawn(s *Strand, fn func(ThisFiber)) *Fiber {
	return spawn(s, fn)
}

// SpawnOn starts a fiber on a fresh strand of l.
func SpawnOn(l *Loop, fn func(ThisFiber)) *Fiber {
	return spawn(NewStrand(l), fn)
}

// SpawnFrom starts a fiber on the strand of the calling fiber.
func SpawnFrom(tf ThisFiber, fn func(ThisFiber)) *Fiber {
	return spawn(tf.fs.strand, fn)
}

// fiberMain is the body trampoline. It runs on the fiber's own goroutine,
// always inside a strand handler blocked in Resume.
//
// An escaped Interrupted is normal termination with the interrupted flag;
// any other escaped panic is a process-level failure and is re-raised.
func fiberMain(fs *fiberState, fn func(ThisFiber)) {
	fs.gid = goid()
	fs.strand.active.Store(fs.gid)
	defer func() {
		interrupted := false
		if r := recover(); r != nil {
			if _, ok := r.(Interrupted); !ok {
				panic(r)
			}
			interrupted = true
		}
		fs.finish(interrupted)
	}()
	fs.status.Store(statusRunning)
	fn(ThisFiber{fs})
}

// finish records termination, wakes the joiner and releases the spawn
// work reference. Runs on the fiber goroutine within the strand handler
// that resumed it, so the joiner link is read in strand order.
func (fs *fiberState) finish(interrupted bool) {
	if interrupted {
		fs.status.Store(statusDoneInterrupted)
	} else {
		fs.status.Store(statusDone)
	}
	if j := fs.joiner; j != nil {
		fs.joiner = nil
		j()
	}
	fs.strand.WorkFinished()
}

// resumeStep is the strand handler that re-enters the fiber's stack and,
// once the slice ends, restores the drainer as the strand occupant.
func (fs *fiberState) resumeStep() {
	fs.stack.Resume()
	fs.strand.active.Store(goid())
}

// checkSuspendAllowed enforces the forbid-suspend contract at every
// suspension entry.
func (fs *fiberState) checkSuspendAllowed() {
	if fs.forbidDepth > 0 {
		panic("fiber: contract violation: suspension point inside a forbid-suspend scope")
	}
}

// deliverPending raises a queued interruption when delivery is enabled.
// The request is consumed: a caught Interrupted does not re-deliver.
func (fs *fiberState) deliverPending() {
	if fs.requested && fs.disableDepth == 0 {
		fs.requested = false
		panic(Interrupted{})
	}
}

// park marks the fiber with the given status and returns control to the
// strand. On return the fiber is running again, occupies the strand, and
// its interrupter slot has been cleared.
func (fs *fiberState) park(status uint32) {
	fs.status.Store(status)
	fs.stack.suspendHere()
	fs.strand.active.Store(fs.gid)
	fs.status.Store(statusRunning)
	fs.interrupter = nil
}

// Fiber is the movable owner of a spawned fiber, usable from outside the
// fiber. Exactly one of Join or Detach must be called; a handle collected
// with neither stops the owning loop (see Aborted).
type Fiber struct {
	fs      *fiberState
	guard   *handleGuard
	cleanup runtime.Cleanup
}

// handleGuard carries the consumed flag for the GC cleanup. Kept outside
// Fiber so the cleanup argument does not retain the handle itself.
type handleGuard struct {
	loop     *Loop
	id       ID
	consumed atomix.Uint32
}

// abortedFlag records that some loop was stopped by an abandoned handle.
var abortedFlag atomix.Uint32

// Aborted reports whether any loop was stopped because a Fiber handle was
// collected without Join or Detach. Observable post-shutdown.
func Aborted() bool {
	return abortedFlag.Load() != 0
}

// abortAbandoned runs when a Fiber handle is collected without Join or
// Detach. Stopping the loop is deliberately less violent than aborting
// the process; the abnormal termination stays observable via Aborted.
func abortAbandoned(g *handleGuard) {
	if g.consumed.Load() != 0 {
		return
	}
	abortedFlag.Store(1)
	logger.Error("fiber: handle collected without Join or Detach; stopping loop",
		slog.Uint64("fiber", g.id))
	g.loop.Stop()
}

// consume marks the handle used by Join or Detach. At most one succeeds.
func (f *Fiber) consume(op string) {
	if !f.guard.consumed.CompareAndSwap(0, 1) {
		panic("fiber: " + op + " on an already joined or detached handle")
	}
	f.cleanup.Stop()
}

// Executor returns the strand the fiber runs on.
func (f *Fiber) Executor() *Strand {
	return f.fs.strand
}

// Detach relinquishes the right to join; the fiber runs to completion
// independently. Consumes the handle.
func (f *Fiber) Detach() {
	f.consume("Detach")
}

// Join suspends the calling fiber until this fiber terminates, then
// consumes the handle. The two fibers may live on different strands: the
// wakeup is posted onto the caller's strand when the target finishes.
//
// Join is a suspension point. A pending interruption is delivered only
// after the target has been observed terminated and the handle consumed,
// so InterruptionCaught stays queryable.
func (f *Fiber) Join(tf ThisFiber) {
	if f.guard.consumed.Load() != 0 {
		panic("fiber: Join on an already joined or detached handle")
	}
	fs := tf.fs
	fs.checkSuspendAllowed()

	target := f.fs
	wake := func() { fs.strand.Post(fs.resumeStep) }
	target.strand.Dispatch(func() {
		if target.status.Load() >= statusDone {
			wake()
			return
		}
		if target.joiner != nil {
			panic("fiber: Join: fiber already has a joiner")
		}
		target.joiner = wake
	})
	fs.park(statusSuspended)

	f.consume("Join")
	fs.deliverPending()
}

// Interrupt requests deferred cancellation: the target's next eligible
// suspension point raises Interrupted. If the target is currently
// suspended in an asynchronous operation with a registered interrupter,
// the interrupter runs on the target's strand to accelerate cancellation.
//
// Interrupt never suspends the caller and is not itself an interruption
// point. Interrupting a terminated fiber has no effect.
func (f *Fiber) Interrupt() {
	fs := f.fs
	fs.strand.Dispatch(func() {
		if fs.status.Load() >= statusDone {
			return
		}
		fs.requested = true
		if fs.status.Load() == statusSuspended && fs.interrupter != nil {
			h := fs.interrupter
			fs.interrupter = nil
			h()
		}
	})
}

// InterruptionCaught reports, after Join, whether the fiber terminated by
// an interruption that escaped its start function.
func (f *Fiber) InterruptionCaught() bool {
	return f.fs.status.Load() == statusDoneInterrupted
}
