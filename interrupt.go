// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

// Scoped toggles for interruption delivery and suspension permission.
//
// Each guard snapshots the state it replaces and restores it exactly on
// Release, so arbitrarily nested scopes compose and a balanced region is
// a no-op. Release is idempotent and meant for defer, which keeps the
// counters balanced even while an Interrupted unwinds the fiber.

// DisableInterruption marks a scope in which interruption delivery is
// deferred: requests stay queued and fire at the first eligible
// suspension point after the scope ends.
type DisableInterruption struct {
	fs       *fiberState
	prev     int
	released bool
}

// DisableInterruption opens a disable scope.
//
//	d := tf.DisableInterruption()
//	defer d.Release()
func (tf ThisFiber) DisableInterruption() *DisableInterruption {
	d := &DisableInterruption{fs: tf.fs, prev: tf.fs.disableDepth}
	tf.fs.disableDepth++
	return d
}

// Release ends the scope, restoring the exact prior delivery state.
func (d *DisableInterruption) Release() {
	if d.released {
		return
	}
	d.released = true
	d.fs.disableDepth = d.prev
}

// RestoreInterruption temporarily restores, inside a disable scope, the
// delivery state that was in effect before the given scope was opened.
type RestoreInterruption struct {
	fs       *fiberState
	saved    int
	released bool
}

// RestoreInterruption opens a restore scope within d.
func (tf ThisFiber) RestoreInterruption(d *DisableInterruption) *RestoreInterruption {
	r := &RestoreInterruption{fs: tf.fs, saved: tf.fs.disableDepth}
	tf.fs.disableDepth = d.prev
	return r
}

// Release ends the restore scope, returning to the disabled state.
func (r *RestoreInterruption) Release() {
	if r.released {
		return
	}
	r.released = true
	r.fs.disableDepth = r.saved
}

// ForbidSuspend marks a scope in which any suspension attempt is a
// contract violation. This is the void form of ExclRef: it asserts "no
// suspension while this name is alive" without borrowing a value.
type ForbidSuspend struct {
	fs       *fiberState
	released bool
}

// ForbidSuspend opens a forbid-suspend scope.
func (tf ThisFiber) ForbidSuspend() *ForbidSuspend {
	tf.fs.forbidDepth++
	return &ForbidSuspend{fs: tf.fs}
}

// Release ends the scope.
func (f *ForbidSuspend) Release() {
	if f.released {
		return
	}
	f.released = true
	f.fs.forbidDepth--
}

// AllowSuspend temporarily re-permits suspension inside forbid-suspend
// scopes, restoring the forbid depth on Release.
type AllowSuspend struct {
	fs       *fiberState
	saved    int
	released bool
}

// AllowSuspend opens an allow scope.
func (tf ThisFiber) AllowSuspend() *AllowSuspend {
	a := &AllowSuspend{fs: tf.fs, saved: tf.fs.forbidDepth}
	tf.fs.forbidDepth = 0
	return a
}

// Release ends the allow scope, re-establishing the saved forbid depth.
func (a *AllowSuspend) Release() {
	if a.released {
		return
	}
	a.released = true
	a.fs.forbidDepth = a.saved
}
