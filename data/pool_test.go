package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareZeroPadsShortPayload(t *testing.T) {
	p := NewPool()
	p.Declare(1, []byte{0xDE, 0xAD, 0xBE, 0xEF}, 6)

	blob, err := p.Get(1)
	require.NoError(t, err)
	assert.Equal(t, Pointer{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x00}, blob)
}

func TestDeclareTruncatesOverlongPayload(t *testing.T) {
	p := NewPool()
	p.Declare(2, []byte{1, 2, 3, 4, 5}, 3)

	blob, err := p.Get(2)
	require.NoError(t, err)
	assert.Equal(t, Pointer{1, 2, 3}, blob)
}

func TestGetMissingIndex(t *testing.T) {
	p := NewPool()
	_, err := p.Get(99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedDataIndex)
}

func TestAllocClearIsZeroed(t *testing.T) {
	buf := AllocClear(8)
	assert.Len(t, buf, 8)
	for _, b := range buf {
		assert.Zero(t, b)
	}
}
