// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fiber

import "code.hybscloud.com/atomix"

// ID is a monotonically increasing fiber identifier.
// Each spawn assigns the next value; used in diagnostics.
type ID = uint64

// counter is the global monotonic counter for fiber ids.
var counter atomix.Uint64

// nextID returns the next monotonically increasing fiber id.
func nextID() ID {
	return counter.Add(1)
}
