// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

// Mutex provides fiber-aware mutual exclusion among fibers sharing one
// strand. Waiters form a strict FIFO queue; the fiber woken by Unlock is
// always the oldest waiter. Cross-strand use is not supported: the mutex
// strand and every caller's strand must be identical.
//
// State is strand-confined, so no atomic operations are needed.
type Mutex struct {
	strand  *Strand
	locked  bool
	owner   *fiberState
	waiters []*fiberState
}

// NewMutex creates a mutex bound to s.
func NewMutex(s *Strand) *Mutex {
	return &Mutex{strand: s}
}

// Executor returns the strand this mutex is bound to.
func (m *Mutex) Executor() *Strand {
	return m.strand
}

// Lock acquires m. An unlocked mutex is acquired synchronously, with no
// strand hop and no suspension. A held mutex enqueues the caller and
// suspends it until ownership is transferred by an Unlock.
//
// The acquisition itself never raises an interruption: ownership is
// assigned by the unlocker before the waiter resumes, so raising here
// would leak a held mutex. A queued request stays pending and fires at
// the next eligible suspension point.
func (m *Mutex) Lock(tf ThisFiber) {
	fs := tf.fs
	assertStrand(fs.strand, m.strand)
	fs.checkSuspendAllowed()
	if !m.locked {
		m.locked = true
		m.owner = fs
		return
	}
	m.waiters = append(m.waiters, fs)
	fs.park(statusSuspended)
	// Resumed by Unlock; m.owner == fs already holds.
}

// Unlock releases m. Must be called by the owning fiber on its strand;
// a violation is checked in debug builds and undefined otherwise. When
// waiters are queued, the head is woken with ownership pre-assigned.
func (m *Mutex) Unlock() {
	assertOwner(m)
	if len(m.waiters) == 0 {
		m.locked = false
		m.owner = nil
		return
	}
	next := m.waiters[0]
	m.waiters = m.waiters[1:]
	m.owner = next
	m.strand.Post(next.resumeStep)
}

// Guard is a scoped Mutex acquisition with null-out transfer semantics:
// copying the guard and calling Unlock on one copy leaves the others
// inert only if the copies go through MoveGuard; plain copies must not
// both Unlock.
type Guard struct {
	m *Mutex
}

// LockGuard acquires m and returns the owning guard.
//
//	g := fiber.LockGuard(m, tf)
//	defer g.Unlock()
func LockGuard(m *Mutex, tf ThisFiber) Guard {
	m.Lock(tf)
	return Guard{m: m}
}

// MoveGuard transfers ownership out of g, nulling it so that only the
// returned guard unlocks.
func MoveGuard(g *Guard) Guard {
	m := g.m
	g.m = nil
	return Guard{m: m}
}

// Unlock releases the guarded mutex once; further calls are no-ops.
func (g *Guard) Unlock() {
	if g.m == nil {
		return
	}
	m := g.m
	g.m = nil
	m.Unlock()
}
