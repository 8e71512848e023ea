// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

// ThisFiber is the in-fiber capability handle passed to the start
// function: the sole surface through which the body suspends, registers
// interrupters and scopes interruption delivery. It is also a completion
// Token, so it can stand in for the callback of an asynchronous
// operation (see Await).
//
// Methods must be called from the fiber itself, on its strand.
type ThisFiber struct {
	fs *fiberState
}

// Executor returns the strand the fiber runs on.
func (tf ThisFiber) Executor() *Strand {
	return tf.fs.strand
}

// ID returns the fiber's monotonic identifier.
func (tf ThisFiber) ID() ID {
	return tf.fs.id
}

// Yield suspends voluntarily: the resume handler is re-posted at the tail
// of the strand's queue, letting every already-pending handler run first.
// Yield is an interruption point.
func (tf ThisFiber) Yield() {
	fs := tf.fs
	fs.checkSuspendAllowed()
	fs.deliverPending()
	fs.strand.Post(fs.resumeStep)
	fs.park(statusReady)
	fs.deliverPending()
}

// SetInterrupter registers a hook invoked on the strand if an
// interruption arrives while the fiber is suspended in an asynchronous
// operation; it is expected to cancel the underlying I/O. The slot is
// cleared after invocation and on every successful resume.
func (tf ThisFiber) SetInterrupter(h func()) {
	tf.fs.interrupter = h
}

// Token binds an asynchronous completion to a fiber's resume. ThisFiber
// is the plain form, raising completion errors at the resume site;
// Redirect produces the error-slot variant.
type Token interface {
	fiber() *fiberState
	errorSlot() *error
}

func (tf ThisFiber) fiber() *fiberState { return tf.fs }
func (tf ThisFiber) errorSlot() *error  { return nil }

// redirectToken writes the completion error into a caller-supplied slot
// instead of raising it.
type redirectToken struct {
	fs *fiberState
	ec *error
}

func (t redirectToken) fiber() *fiberState { return t.fs }
func (t redirectToken) errorSlot() *error  { return t.ec }

// Redirect returns a variant of the completion token that writes the
// operation error into ec instead of raising it at the resume site.
// Interruption delivery is unaffected.
func (tf ThisFiber) Redirect(ec *error) Token {
	return redirectToken{fs: tf.fs, ec: ec}
}
