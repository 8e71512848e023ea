// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !debug

package fiber

// assertStrand checks strand affinity of sync primitives (debug only).
func assertStrand(got, want *Strand) {}

// assertOwner checks mutex ownership on Unlock (debug only; release
// builds leave the violation undefined).
func assertOwner(m *Mutex) {}
