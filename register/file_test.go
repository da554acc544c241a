package register

import (
	"testing"

	"cvm/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileAllocatesDyvarbAndStvarb(t *testing.T) {
	reg := types.NewRegistry()
	u32, err := reg.Insert("u32", 4)
	require.NoError(t, err)
	u64, err := reg.Insert("u64", 8)
	require.NoError(t, err)

	layout := Layout{
		DyvarbCount: 2,
		StvarbTypes: []types.TypeIndex{u32, u64},
	}
	f := NewFile(layout, reg)

	require.Len(t, f.Dynamic, 2)
	for _, d := range f.Dynamic {
		assert.Nil(t, d.Data)
		assert.Equal(t, types.NullType, d.Type)
	}

	require.Len(t, f.Static, 2)
	assert.Len(t, f.Static[0].Data, 4)
	assert.Equal(t, u32, f.Static[0].Type)
	assert.Len(t, f.Static[1].Data, 8)
	assert.Equal(t, u64, f.Static[1].Type)

	for _, b := range f.Static[0].Data {
		assert.Zero(t, b)
	}
}

func TestGetDynamicReturnsAlias(t *testing.T) {
	reg := types.NewRegistry()
	f := NewFile(Layout{DyvarbCount: 1}, reg)

	d := f.GetDynamic(0)
	d.Type = types.TypeIndex(7)
	assert.Equal(t, types.TypeIndex(7), f.Dynamic[0].Type)
}
