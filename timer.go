// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "time"

// Timer is an asynchronous timer whose waits complete on the waiting
// fiber's strand. It is the one async operation shipped in-tree; users
// compose it with SetInterrupter to build cancellable timeouts.
//
// A Timer is strand-confined: ExpiresAfter, Wait and Cancel must run on
// one strand (Cancel typically from an interrupter, which already does).
type Timer struct {
	loop   *Loop
	d      time.Duration
	cancel func()
}

// NewTimer creates a timer on l.
func NewTimer(l *Loop) *Timer {
	return &Timer{loop: l}
}

// ExpiresAfter sets the expiry delay for the next Wait.
func (t *Timer) ExpiresAfter(d time.Duration) {
	t.d = d
}

// Wait suspends the calling fiber until the timer expires or is
// cancelled. Cancellation completes the wait with ErrOperationAborted,
// which the adapter reports as an interruption when one is pending and
// delivery is enabled.
func (t *Timer) Wait(tok Token) {
	Await(tok, func(complete func(struct{}, error)) {
		tm := time.AfterFunc(t.d, func() { complete(struct{}{}, nil) })
		t.cancel = func() {
			// Stop reports false once the expiry callback has fired (or
			// after a previous Cancel); the completion stays one-shot.
			if tm.Stop() {
				complete(struct{}{}, ErrOperationAborted)
			}
		}
	})
	t.cancel = nil
}

// Cancel aborts an in-flight Wait; no-op when none is pending.
func (t *Timer) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Sleep suspends the calling fiber for d. The underlying timer is
// registered as the fiber's interrupter, so an interruption cancels the
// wait promptly instead of letting it run out.
func Sleep(tf ThisFiber, d time.Duration) {
	t := NewTimer(tf.fs.strand.loop)
	t.ExpiresAfter(d)
	tf.SetInterrupter(t.Cancel)
	t.Wait(tf)
}
