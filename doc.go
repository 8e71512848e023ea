// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fiber provides stackful cooperative fibers scheduled on
// serializing executors (strands) atop a lock-free event loop.
//
// A fiber is a user-space thread of control with its own stack, scheduled
// cooperatively: it runs until it reaches a suspension point, returns
// control to its strand, and is resumed by a later handler. Fibers sharing
// a strand never overlap; fibers on different strands are concurrent.
//
// # Architecture
//
//   - Execution: [Loop] drives ready strands until outstanding work reaches
//     zero. Handlers flow through bounded lock-free queues via
//     [code.hybscloud.com/lfq]; idle paths wait with [code.hybscloud.com/iox.Backoff].
//   - Serialization: [Strand] runs at most one handler at a time. [Strand.Post]
//     enqueues, [Strand.Dispatch] runs inline when the caller already occupies
//     the strand. [Strand.WorkStarted]/[Strand.WorkFinished] pin the loop.
//   - Fibers: [Spawn], [SpawnOn], [SpawnFrom] start a fiber and return a
//     [Fiber] handle supporting [Fiber.Join], [Fiber.Detach],
//     [Fiber.Interrupt] and [Fiber.InterruptionCaught]. A handle collected
//     without Join or Detach stops the owning loop; [Aborted] reports it.
//   - Suspension: user code holds a [ThisFiber] and suspends through
//     [ThisFiber.Yield], [Await] (the completion-token adapter) or the
//     fiber-aware primitives. Async completion records are
//     [code.hybscloud.com/kont.Either] values dispatched at the resume site.
//   - Interruption: deferred cancellation. [Fiber.Interrupt] queues a
//     request; delivery happens at the next eligible suspension point by
//     raising [Interrupted], which does not implement error. Delivery is
//     scoped by [ThisFiber.DisableInterruption]/[ThisFiber.RestoreInterruption];
//     [ThisFiber.SetInterrupter] accelerates cancellation of in-flight I/O.
//   - Synchronization: [Mutex] provides FIFO mutual exclusion among fibers
//     of one strand; [ExclRef] scopes an exclusive borrow across which any
//     suspension is a contract violation.
//
// # Example
//
//	l := fiber.NewLoop()
//	s := fiber.NewStrand(l)
//	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
//		fiber.Sleep(tf, time.Second)
//		fmt.Println("tick")
//	})
//	f.Detach()
//	l.Run()
package fiber
