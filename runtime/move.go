// Package runtime implements the data-move primitives (§4.3) and the VM
// loop that drives a Local environment's ControlFlow to completion (§4.5).
package runtime

import (
	"cvm/data"
	"cvm/register"
	"cvm/types"
)

// MoveRegister implements the uniform "move register" operation behind
// the mov opcode. LoadData and LoadDataPointer publish into their
// destination directly and do not go through it.
//
//   - ModeNull: no effect.
//   - ModeDynamicSlot: reassigns the pointer (transfer of reference, no
//     byte copy) and stores src's type.
//   - ModeStaticSlot: byte-copies exactly registry.At(src.Type).Size
//     bytes from src.Data into the destination. The destination's type
//     is fixed; no type store.
func MoveRegister(registry *types.Registry, dst register.DstData, src register.SrcData) {
	switch dst.Mode {
	case register.ModeNull:
		return
	case register.ModeDynamicSlot:
		*dst.DataSlot = src.Data
		*dst.TypeSlot = src.Type
	case register.ModeStaticSlot:
		n := registry.At(src.Type).Size
		copyBytes(*dst.DataSlot, src.Data, n)
	}
}

// copyBytes copies min(len(dst), len(src), n) bytes from src into dst in
// place, leaving any remaining destination bytes untouched. Callers that
// need the destination cleared first (LoadData's static path) clear
// before calling.
func copyBytes(dst, src data.Pointer, n uint64) {
	limit := n
	if uint64(len(dst)) < limit {
		limit = uint64(len(dst))
	}
	if uint64(len(src)) < limit {
		limit = uint64(len(src))
	}
	copy(dst[:limit], src[:limit])
}

// LoadData implements the load opcode's effect once the source bytes
// (an immediate or a data-pool blob) and the declared destination type
// are known.
//
//   - ModeDynamicSlot: allocate a fresh zeroed buffer of
//     registry.At(dstType).Size bytes, copy min(that size, len(src))
//     bytes in, publish the buffer, and store dstType into the type
//     slot.
//   - ModeStaticSlot: clear the destination in place, then copy
//     min(declared size, len(src)) bytes in. dstType must equal the
//     slot's declared type (caller's obligation; not re-checked here).
//   - ModeNull: no effect.
func LoadData(registry *types.Registry, dst register.DstData, src data.Pointer, dstType types.TypeIndex) {
	switch dst.Mode {
	case register.ModeNull:
		return
	case register.ModeDynamicSlot:
		size := registry.At(dstType).Size
		buf := data.AllocClear(size)
		copyBytes(buf, src, size)
		*dst.DataSlot = buf
		*dst.TypeSlot = dstType
	case register.ModeStaticSlot:
		for i := range *dst.DataSlot {
			(*dst.DataSlot)[i] = 0
		}
		copyBytes(*dst.DataSlot, src, uint64(len(*dst.DataSlot)))
	}
}

// ClearRegister implements the "clear" opcode (SPEC_FULL.md §4.4 FULL):
// a dynamic destination resets to {nil, NullType}; a static destination
// is zeroed in place without disturbing its fixed type.
func ClearRegister(dst register.DstData) {
	switch dst.Mode {
	case register.ModeNull:
		return
	case register.ModeDynamicSlot:
		*dst.DataSlot = nil
		*dst.TypeSlot = types.NullType
	case register.ModeStaticSlot:
		for i := range *dst.DataSlot {
			(*dst.DataSlot)[i] = 0
		}
	}
}

// Compare implements the "cmp" opcode's byte-comparison (SPEC_FULL.md
// §4.4 FULL): equal over min(sizeof(a.Type), sizeof(b.Type)) bytes.
func Compare(registry *types.Registry, a, b register.SrcData) bool {
	n := registry.At(a.Type).Size
	if m := registry.At(b.Type).Size; m < n {
		n = m
	}
	if uint64(len(a.Data)) < n || uint64(len(b.Data)) < n {
		return false
	}
	for i := uint64(0); i < n; i++ {
		if a.Data[i] != b.Data[i] {
			return false
		}
	}
	return true
}

// LoadDataPointer is the pointer-typed variant of LoadData: it allocates
// a fresh buffer of len(src) bytes, copies the literal into it, and
// stores the *address* of that buffer as a PointerSize-byte value into
// the destination. For dynamic destinations the destination type becomes
// types.PointerType.
func LoadDataPointer(dst register.DstData, src data.Pointer) {
	if dst.Mode == register.ModeNull {
		return
	}
	buf := make(data.Pointer, len(src))
	copy(buf, src)

	addr := encodeAddress(buf)
	switch dst.Mode {
	case register.ModeDynamicSlot:
		*dst.DataSlot = addr
		*dst.TypeSlot = types.PointerType
	case register.ModeStaticSlot:
		for i := range *dst.DataSlot {
			(*dst.DataSlot)[i] = 0
		}
		copyBytes(*dst.DataSlot, addr, uint64(len(*dst.DataSlot)))
	}
}

// encodeAddress packs the identity of buf into a PointerSize-byte little
// endian value. The backing array is kept alive by addrTable so the
// garbage collector never reclaims it while a register still names it
// (the core has no explicit free for pointer-typed registers, §4.3).
func encodeAddress(buf data.Pointer) data.Pointer {
	id := nextAddrID
	nextAddrID++
	addrTable[id] = buf

	out := make(data.Pointer, types.PointerSize)
	for i := 0; i < types.PointerSize; i++ {
		out[i] = byte(id >> (8 * uint(i)))
	}
	return out
}
