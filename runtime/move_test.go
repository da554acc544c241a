package runtime

import (
	"testing"

	"cvm/data"
	"cvm/register"
	"cvm/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryWithU32(t *testing.T) (*types.Registry, types.TypeIndex) {
	t.Helper()
	reg := types.NewRegistry()
	u32, err := reg.Insert("u32", 4)
	require.NoError(t, err)
	return reg, u32
}

func TestMoveRegisterDynamicReassignsPointer(t *testing.T) {
	reg, u32 := newRegistryWithU32(t)
	file := register.NewFile(register.Layout{DyvarbCount: 2}, reg)

	src := data.Pointer{0x11, 0x22, 0x33, 0x44}
	file.Dynamic[0] = register.Dynamic{Data: src, Type: u32}

	MoveRegister(reg, file.DstDynamic(1), file.SrcDynamic(0))

	assert.Equal(t, u32, file.Dynamic[1].Type)
	assert.Same(t, &src[0], &file.Dynamic[1].Data[0], "mov between dyvarbs must alias the same backing array")
}

func TestMoveRegisterStaticCopiesBytesNotPointer(t *testing.T) {
	reg, u32 := newRegistryWithU32(t)
	file := register.NewFile(register.Layout{DyvarbCount: 1, StvarbTypes: []types.TypeIndex{u32}}, reg)

	src := data.Pointer{0xAA, 0xBB, 0xCC, 0xDD}
	file.Dynamic[0] = register.Dynamic{Data: src, Type: u32}

	MoveRegister(reg, file.DstStatic(0), file.SrcDynamic(0))
	assert.Equal(t, data.Pointer{0xAA, 0xBB, 0xCC, 0xDD}, file.Static[0].Data)

	// Mutating the source afterwards must not change the destination.
	src[0] = 0x00
	assert.Equal(t, byte(0xAA), file.Static[0].Data[0])
	// The static register's declared type is unaffected by the move.
	assert.Equal(t, u32, file.Static[0].Type)
}

func TestLoadDataIntoDynamicZeroPadsShortSource(t *testing.T) {
	reg, u32 := newRegistryWithU32(t)
	file := register.NewFile(register.Layout{DyvarbCount: 1}, reg)

	LoadData(reg, file.DstDynamic(0), data.Pointer{0x2A}, u32)

	assert.Equal(t, u32, file.Dynamic[0].Type)
	assert.Equal(t, data.Pointer{0x2A, 0x00, 0x00, 0x00}, file.Dynamic[0].Data)
}

func TestLoadDataIntoStaticClearsFirst(t *testing.T) {
	reg, u32 := newRegistryWithU32(t)
	file := register.NewFile(register.Layout{StvarbTypes: []types.TypeIndex{u32}}, reg)
	file.Static[0].Data[0] = 0xFF

	LoadData(reg, file.DstStatic(0), data.Pointer{0x01, 0x02}, u32)
	assert.Equal(t, data.Pointer{0x01, 0x02, 0x00, 0x00}, file.Static[0].Data)
}

func TestLoadDataIntoNullIsNoop(t *testing.T) {
	reg, u32 := newRegistryWithU32(t)
	LoadData(reg, register.DstData{Mode: register.ModeNull}, data.Pointer{0x01}, u32)
}

func TestLoadDataPointerSetsPointerType(t *testing.T) {
	reg := types.NewRegistry()
	file := register.NewFile(register.Layout{DyvarbCount: 1}, reg)

	LoadDataPointer(file.DstDynamic(0), data.Pointer{0xDE, 0xAD})

	assert.Equal(t, types.PointerType, file.Dynamic[0].Type)
	assert.Len(t, file.Dynamic[0].Data, types.PointerSize)
}
