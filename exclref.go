// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

// ExclRef scopes an exclusive borrow of a strand-private value: while the
// borrow is held, any suspension attempt by the owning fiber is a
// contract violation. The guard encodes, at the borrow site, the rule
// that strand-private data needs no locking precisely as long as no
// suspension intervenes mid-access.
//
// The void form — the same assertion without a borrowed value — is
// ThisFiber.ForbidSuspend.
//
// ExclRef must not be copied; release it with defer.
type ExclRef[T any] struct {
	fs   *fiberState
	v    *T
	held bool
}

// NewExclRef borrows v for the calling fiber and forbids suspension for
// the lifetime of the borrow.
func NewExclRef[T any](tf ThisFiber, v *T) *ExclRef[T] {
	tf.fs.forbidDepth++
	return &ExclRef[T]{fs: tf.fs, v: v, held: true}
}

// Get yields the borrowed reference. Dereferencing a released borrow is
// a contract violation.
func (r *ExclRef[T]) Get() *T {
	if !r.held {
		panic("fiber: contract violation: ExclRef dereferenced after release")
	}
	return r.v
}

// Release drops the borrow and re-permits suspension. Idempotent.
func (r *ExclRef[T]) Release() {
	if !r.held {
		return
	}
	r.held = false
	r.v = nil
	r.fs.forbidDepth--
}

// Reset (re)acquires a borrow of v, forbidding suspension again if the
// previous borrow had been released.
func (r *ExclRef[T]) Reset(v *T) {
	if !r.held {
		r.fs.forbidDepth++
		r.held = true
	}
	r.v = v
}
