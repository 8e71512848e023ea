// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// Await is the completion-token adapter: it initiates an asynchronous
// operation and suspends the calling fiber until the operation completes.
//
// init receives a one-shot completion callback, safe to invoke from any
// goroutine; invoking it twice is a contract violation. The completion is
// posted onto the fiber's strand, so the resume observes every side
// effect of the completion handler in strand order.
//
// At the resume site, before control returns to user code:
//
//   - a completion error equal to ErrOperationAborted with an enabled
//     interruption request pending is reported as the interruption itself
//     (the translation is gated on the request so genuine external
//     cancellations are not masked);
//   - other completion errors go to the token's error slot when one was
//     provided (Redirect), and are raised as *OpError otherwise;
//   - on success, a pending enabled interruption is delivered.
//
// Await is a suspension point: entering it inside a forbid-suspend scope
// is a contract violation, and a pending enabled interruption is
// delivered before the operation is initiated.
func Await[T any](tok Token, init func(complete func(T, error))) T {
	fs := tok.fiber()
	fs.checkSuspendAllowed()
	fs.deliverPending()

	var outcome kont.Either[error, T]
	var fired atomix.Uint32
	complete := func(v T, err error) {
		if !fired.CompareAndSwap(0, 1) {
			panic("fiber: contract violation: completion handler invoked twice")
		}
		fs.strand.Post(func() {
			if err != nil {
				outcome = kont.Left[error, T](err)
			} else {
				outcome = kont.Right[error](v)
			}
			fs.resumeStep()
		})
	}
	init(complete)
	fs.park(statusSuspended)

	if outcome.IsLeft() {
		err, _ := outcome.GetLeft()
		if errors.Is(err, ErrOperationAborted) {
			fs.deliverPending()
		}
		if ec := tok.errorSlot(); ec != nil {
			*ec = err
			var zero T
			return zero
		}
		panic(&OpError{Err: err})
	}
	if ec := tok.errorSlot(); ec != nil {
		*ec = nil
	}
	fs.deliverPending()
	v, _ := outcome.GetRight()
	return v
}
