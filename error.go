// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "errors"

// Interrupted is the value raised (via panic) at a suspension point when
// a pending interruption is delivered. It intentionally does not
// implement error: interruption must unwind past generic error handling
// and can only be stopped by code that names it.
//
// An Interrupted escaping the fiber's start function is normal
// termination with the interrupted flag set, not a failure. Recovering it
// inside the body flips the post-join report back to "not interrupted".
type Interrupted struct{}

// String implements fmt.Stringer for diagnostics.
func (Interrupted) String() string {
	return "fiber: interrupted"
}

// ErrOperationAborted is the completion error reported by asynchronous
// operations cancelled before completing (e.g. Timer.Cancel). When the
// waiting fiber also has an interruption request pending with delivery
// enabled, the adapter
// reports the interruption instead, so post-join queries reflect the real
// cause.
var ErrOperationAborted = errors.New("fiber: operation aborted")

// OpError is raised at the resume site when an asynchronous operation
// completes with an error and the plain (non-redirecting) token form was
// used. Redirect tokens receive the error through their slot instead.
type OpError struct {
	Err error
}

// Error implements error.
func (e *OpError) Error() string {
	return "fiber: async operation failed: " + e.Err.Error()
}

// Unwrap exposes the underlying completion error to errors.Is/As.
func (e *OpError) Unwrap() error {
	return e.Err
}
