// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build debug

package fiber

// assertStrand panics when a fiber operates on a primitive bound to a
// foreign strand (debug only).
func assertStrand(got, want *Strand) {
	if got != want {
		panic("fiber: contract violation: caller fiber runs on a foreign strand")
	}
}

// assertOwner panics when Unlock is invoked by a goroutine other than the
// owning fiber's (debug only; release builds leave this unchecked).
func assertOwner(m *Mutex) {
	if !m.locked || m.owner == nil || m.owner.gid != goid() {
		panic("fiber: contract violation: Unlock by a fiber that does not own the mutex")
	}
}
