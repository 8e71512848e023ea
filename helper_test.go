// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber_test

import (
	"code.hybscloud.com/fiber"
)

// newStrand builds a loop with one strand, the common test fixture.
func newStrand() (*fiber.Loop, *fiber.Strand) {
	l := fiber.NewLoop()
	return l, fiber.NewStrand(l)
}

// joinCaught joins target from a detached supervisor fiber on s and
// reports, after the loop drained, whether the target terminated by an
// escaped interruption. The caller still has to issue l.Run().
func joinCaught(l *fiber.Loop, s *fiber.Strand, target *fiber.Fiber, caught *bool) {
	sup := fiber.Spawn(s, func(tf fiber.ThisFiber) {
		target.Join(tf)
		*caught = target.InterruptionCaught()
	})
	sup.Detach()
}
