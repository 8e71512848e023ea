// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber_test

import (
	"slices"
	"testing"
	"time"

	"code.hybscloud.com/fiber"
)

// TestMutexFIFO: waiters are woken strictly in arrival order.
func TestMutexFIFO(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	m := fiber.NewMutex(s)
	var order []string
	holder := func(name string) func(fiber.ThisFiber) {
		return func(tf fiber.ThisFiber) {
			m.Lock(tf)
			order = append(order, name)
			m.Unlock()
		}
	}
	a := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		m.Lock(tf)
		order = append(order, "A")
		tf.Yield() // let B, C, D queue up behind the lock
		tf.Yield()
		m.Unlock()
	})
	b := fiber.Spawn(s, holder("B"))
	c := fiber.Spawn(s, holder("C"))
	d := fiber.Spawn(s, holder("D"))
	for _, f := range []*fiber.Fiber{a, b, c, d} {
		f.Detach()
	}
	l.Run()
	if want := []string{"A", "B", "C", "D"}; !slices.Equal(order, want) {
		t.Fatalf("got wakeup order %v, want %v", order, want)
	}
}

// TestMutexUncontendedNoHop: acquiring an unlocked mutex is synchronous
// and does not round-trip through the strand queue.
func TestMutexUncontendedNoHop(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	m := fiber.NewMutex(s)
	var order []string
	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		m.Lock(tf)
		order = append(order, "locked")
		m.Unlock()
	})
	s.Post(func() { order = append(order, "posted") })
	f.Detach()
	l.Run()
	if want := []string{"locked", "posted"}; !slices.Equal(order, want) {
		t.Fatalf("got order %v, want %v: Lock hopped through the queue", order, want)
	}
}

// TestMutexLockNotInterruptionPoint: a request queued while blocked in
// Lock is not raised by the acquisition; it fires at the next suspension
// point with the mutex safely released by then.
func TestMutexLockNotInterruptionPoint(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	m := fiber.NewMutex(s)
	acquired := false
	var waiter *fiber.Fiber
	blocker := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		m.Lock(tf)
		tf.Yield() // waiter queues on the mutex during this yield
		waiter.Interrupt()
		m.Unlock()
	})
	waiter = fiber.Spawn(s, func(tf fiber.ThisFiber) {
		m.Lock(tf)
		acquired = true
		m.Unlock()
		tf.Yield() // the queued request fires here
		t.Error("yield returned although an interruption was pending")
	})
	blocker.Detach()
	caught := false
	joinCaught(l, s, waiter, &caught)
	l.Run()
	if !acquired {
		t.Fatal("Lock raised the interruption instead of acquiring")
	}
	if !caught {
		t.Fatal("queued request not delivered after the critical section")
	}
}

// TestLockGuardNullOut: only one guard unlocks after a move.
func TestLockGuardNullOut(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	m := fiber.NewMutex(s)
	relocked := false
	f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		g := fiber.LockGuard(m, tf)
		moved := fiber.MoveGuard(&g)
		g.Unlock() // moved-from: must not unlock
		moved.Unlock()
		moved.Unlock() // idempotent

		m.Lock(tf) // released exactly once, so this acquires synchronously
		relocked = true
		m.Unlock()
	})
	f.Detach()
	l.Run()
	if !relocked {
		t.Fatal("mutex not reacquirable after guarded release")
	}
}

// TestSleepsort: concurrent sleeps appending under the mutex produce the
// sorted sequence.
func TestSleepsort(t *testing.T) {
	skipRace(t)
	l, s := newStrand()
	m := fiber.NewMutex(s)
	in := []int{3, 1, 4, 1, 5, 9, 2, 6}
	var out []int
	for _, v := range in {
		f := fiber.Spawn(s, func(tf fiber.ThisFiber) {
			fiber.Sleep(tf, time.Duration(v)*20*time.Millisecond)
			g := fiber.LockGuard(m, tf)
			defer g.Unlock()
			out = append(out, v)
		})
		f.Detach()
	}
	l.Run()
	if want := []int{1, 1, 2, 3, 4, 5, 6, 9}; !slices.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}
