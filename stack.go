// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

// stackContext is a suspendable execution context backed by a parked
// goroutine. Control transfers through a pair of unbuffered channels:
// exactly one side runs at any instant, and every transfer carries a
// happens-before edge, so strand-confined state needs no further
// synchronization across the boundary.
//
// The body does not start until the first Resume.
type stackContext struct {
	resume chan struct{}
	yield  chan bool
}

// newStackContext allocates the context and parks a goroutine ready to
// run body on first resume.
func newStackContext(body func()) *stackContext {
	sc := &stackContext{
		resume: make(chan struct{}),
		yield:  make(chan bool),
	}
	go func() {
		<-sc.resume
		body()
		sc.yield <- true
	}()
	return sc
}

// Resume transfers control into the context until it suspends or the body
// returns, and reports whether the body returned. Must be invoked from a
// strand handler; the handler blocks for the duration of the slice, which
// is what serializes the fiber with every other handler on the strand.
func (sc *stackContext) Resume() bool {
	sc.resume <- struct{}{}
	return <-sc.yield
}

// suspendHere parks the context and hands control back to the partner
// blocked in Resume. Runs on the context's own goroutine.
func (sc *stackContext) suspendHere() {
	sc.yield <- false
	<-sc.resume
}
