package runtime

import "cvm/data"

// addrTable keeps pointer-typed register targets alive for the life of
// the program. The VM is single-threaded (§5), so no locking is needed.
// This stands in for the original's raw heap address: rather than
// reinterpreting a Go slice header as an integer (unsafe and unsound
// once the slice is copied), each allocation gets a small stable id that
// the encoded bytes carry.
var (
	addrTable  = map[uint64]data.Pointer{}
	nextAddrID uint64 = 1
)
