package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAssignsStableIndices(t *testing.T) {
	r := NewRegistry()

	u32, err := r.Insert("u32", 4)
	require.NoError(t, err)
	u64, err := r.Insert("u64", 8)
	require.NoError(t, err)

	assert.NotEqual(t, u32, u64)
	assert.Equal(t, uint64(4), r.At(u32).Size)
	assert.Equal(t, uint64(8), r.At(u64).Size)
	assert.Equal(t, 2, r.Len())
}

func TestInsertDuplicateIsError(t *testing.T) {
	r := NewRegistry()
	_, err := r.Insert("u32", 4)
	require.NoError(t, err)

	_, err = r.Insert("u32", 8)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateType)
}

func TestFindMissingType(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Find("nope")
	assert.False(t, ok)

	_, err := r.MustFind("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedType)
}

func TestZeroSizeTypeIsLegal(t *testing.T) {
	r := NewRegistry()
	marker, err := r.Insert("marker", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), r.At(marker).Size)
}

func TestPointerTypeIsReservedSentinel(t *testing.T) {
	r := NewRegistry()
	info := r.At(PointerType)
	assert.Equal(t, uint64(PointerSize), info.Size)
}
