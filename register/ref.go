package register

import (
	"cvm/data"
	"cvm/types"
)

// Kind tags how a resolved register reference reaches a slot. Resolution
// from the symbolic %N / %g / %t / %res / %0 forms into a (Kind, Index,
// Qual) triple happens once, at compile time (§4.4); runtime instructions
// only ever see this closed triple, never a name.
type Kind int

const (
	// KindDynamic addresses RegisterFile.Dynamic[Index].
	KindDynamic Kind = iota
	// KindStatic addresses RegisterFile.Static[Index].
	KindStatic
	// KindZero is the %0 zero register: reads as null data/null type,
	// writes are discarded.
	KindZero
	// KindResult is the %res singleton dynamic register of a local
	// environment.
	KindResult
)

// Qual selects which environment in the tree a Ref reaches through.
type Qual int

const (
	// QualCurrent is the environment's own register file ("%env", and
	// the default for a bare "%N").
	QualCurrent Qual = iota
	// QualParent follows the non-owning penv back-link.
	QualParent
	// QualTemp follows the non-owning tenv sibling link.
	QualTemp
)

// Ref is a fully-resolved register reference: the output of compile-time
// symbol resolution, and the only form a runtime instruction closure
// operates on.
type Ref struct {
	Kind  Kind
	Index int
	Qual  Qual
}

// DstData is the uniform write-adapter used by MoveRegister/LoadData: a
// mode tag plus pointers into the destination slot's fields. TypeSlot is
// nil when the destination's type is fixed (a static register) or
// discarded (the zero register).
type DstData struct {
	Mode     DstMode
	DataSlot *data.Pointer
	TypeSlot *types.TypeIndex
}

// DstMode distinguishes the three destination shapes the data-move
// primitives must handle.
type DstMode int

const (
	// ModeNull performs no effect (the zero register as a destination).
	ModeNull DstMode = iota
	// ModeDynamicSlot reassigns the pointer (reference semantics).
	ModeDynamicSlot
	// ModeStaticSlot byte-copies into a fixed, pre-sized buffer.
	ModeStaticSlot
)

// SrcData is the uniform read-adapter: a data pointer plus the type that
// governs how many bytes are meaningful.
type SrcData struct {
	Data data.Pointer
	Type types.TypeIndex
}
