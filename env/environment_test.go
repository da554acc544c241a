package env

import (
	"testing"

	"cvm/data"
	"cvm/register"
	"cvm/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroRegisterReadsNullAndDiscardsWrites(t *testing.T) {
	reg := types.NewRegistry()
	pool := data.NewPool()
	global := NewGlobal(reg, pool)
	fn := &Function{Layout: register.Layout{DyvarbCount: 1}}
	local := NewLocal(global, fn, nil)

	src := local.Src(register.Ref{Kind: register.KindZero})
	assert.Nil(t, src.Data)
	assert.Equal(t, types.NullType, src.Type)

	dst := local.Dst(register.Ref{Kind: register.KindZero})
	assert.Equal(t, register.ModeNull, dst.Mode)
}

func TestResultRegisterHasNoQualifiedForm(t *testing.T) {
	reg := types.NewRegistry()
	pool := data.NewPool()
	global := NewGlobal(reg, pool)
	fn := &Function{Layout: register.Layout{DyvarbCount: 1}}
	local := NewLocal(global, fn, nil)

	dst := local.Dst(register.Ref{Kind: register.KindResult, Qual: register.QualParent})
	require.Equal(t, register.ModeDynamicSlot, dst.Mode)
	*dst.DataSlot = data.Pointer{0x7}
	*dst.TypeSlot = 3
	assert.Equal(t, data.Pointer{0x7}, local.Result.Data)
	assert.EqualValues(t, 3, local.Result.Type)
}

func TestParentQualifierReachesParentsRegisterFile(t *testing.T) {
	reg := types.NewRegistry()
	u32, err := reg.Insert("u32", 4)
	require.NoError(t, err)
	pool := data.NewPool()

	global := NewGlobal(reg, pool)
	outerFn := &Function{Layout: register.Layout{DyvarbCount: 1}}
	outer := NewLocal(global, outerFn, nil)
	outer.Registers.Dynamic[0] = register.Dynamic{Data: data.Pointer{1, 2, 3, 4}, Type: u32}

	innerFn := &Function{Layout: register.Layout{DyvarbCount: 1}}
	inner := NewLocal(outer, innerFn, nil)

	src := inner.Src(register.Ref{Kind: register.KindDynamic, Index: 0, Qual: register.QualParent})
	assert.Equal(t, data.Pointer{1, 2, 3, 4}, src.Data)
	assert.Equal(t, u32, src.Type)
}

func TestTempQualifierReachesSiblingEnvironment(t *testing.T) {
	reg := types.NewRegistry()
	u32, err := reg.Insert("u32", 4)
	require.NoError(t, err)
	pool := data.NewPool()

	global := NewGlobal(reg, pool)
	tempFn := &Function{Layout: register.Layout{DyvarbCount: 1}}
	temp := NewLocal(global, tempFn, nil)
	temp.Registers.Dynamic[0] = register.Dynamic{Data: data.Pointer{9, 9}, Type: u32}

	mainFn := &Function{Layout: register.Layout{DyvarbCount: 1}}
	main := NewLocal(global, mainFn, temp)

	src := main.Src(register.Ref{Kind: register.KindDynamic, Index: 0, Qual: register.QualTemp})
	assert.Equal(t, data.Pointer{9, 9}, src.Data)
}

func TestStaticDestinationHasNoTypeSlot(t *testing.T) {
	reg := types.NewRegistry()
	u32, err := reg.Insert("u32", 4)
	require.NoError(t, err)
	pool := data.NewPool()
	global := NewGlobal(reg, pool)
	fn := &Function{Layout: register.Layout{DyvarbCount: 0, StvarbTypes: []types.TypeIndex{u32}}}
	local := NewLocal(global, fn, nil)

	dst := local.Dst(register.Ref{Kind: register.KindStatic, Index: 0})
	require.Equal(t, register.ModeStaticSlot, dst.Mode)
	assert.Nil(t, dst.TypeSlot)
}
