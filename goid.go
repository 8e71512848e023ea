// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import (
	"fmt"
	"runtime"
)

// goid returns the current goroutine id.
//
// Strand occupancy tracking needs an identity for "the goroutine currently
// holding the strand": either the drainer or the fiber goroutine it
// resumed. Runtime ids are never zero, so zero doubles as "idle".
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// "goroutine 123 [running]:\n"
	var id uint64
	_, _ = fmt.Sscanf(string(buf[:n]), "goroutine %d ", &id)
	return id
}
