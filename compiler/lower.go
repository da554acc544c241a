package compiler

import (
	"cvm/data"
	"cvm/env"
	"cvm/ir"
	"cvm/runtime"
	"cvm/types"

	"github.com/pkg/errors"
)

// resolveTypeName looks a declared type name up in registry. "ptr" is a
// reserved name that never goes through the registry: it names the
// sentinel types.PointerType directly, the same way T_Pointer is carved
// out of the append-ordered index space (§3 FULL).
func resolveTypeName(registry *types.Registry, name string) (types.TypeIndex, error) {
	if name == "ptr" {
		return types.PointerType, nil
	}
	return registry.MustFind(name)
}

// lower compiles one IS instruction into its runtime closure, resolving
// every symbolic name against registry/pool up front so the closure
// itself never does a lookup (§4.4).
func lower(inst ir.Instruction, r *resolver, registry *types.Registry, pool *data.Pool) (env.Instruction, error) {
	switch inst.Op {
	case ir.OpMov:
		return lowerMov(inst, r), nil
	case ir.OpLoad:
		return lowerLoad(inst, r, registry, pool)
	case ir.OpRet:
		return lowerRet(), nil
	case ir.OpDbOpreg:
		return lowerDbOpreg(), nil
	case ir.OpClear:
		return lowerClear(inst, r), nil
	case ir.OpCmp:
		return lowerCmp(inst, r, registry)
	case ir.OpSizeof:
		return lowerSizeof(inst, r, registry)
	case ir.OpDbOptype:
		return lowerDbOptype(), nil
	default:
		return nil, errors.Errorf("unhandled opcode %s", inst.Op)
	}
}

func lowerMov(inst ir.Instruction, r *resolver) env.Instruction {
	dstRef := r.resolve(inst.Dst)
	srcRef := r.resolve(inst.SrcA)
	return func(e *env.Environment) env.ControlAction {
		runtime.MoveRegister(e.Registry, e.Dst(dstRef), e.Src(srcRef))
		return env.AdvanceAction
	}
}

func lowerLoad(inst ir.Instruction, r *resolver, registry *types.Registry, pool *data.Pool) (env.Instruction, error) {
	dstType, err := resolveTypeName(registry, inst.TypeName)
	if err != nil {
		return nil, err
	}

	var src data.Pointer
	if inst.HasData {
		blob, err := pool.Get(inst.DataRef)
		if err != nil {
			return nil, err
		}
		src = blob
	} else {
		src = leImmediate(inst.Imm)
	}

	dstRef := r.resolve(inst.Dst)
	if dstType == types.PointerType {
		return func(e *env.Environment) env.ControlAction {
			runtime.LoadDataPointer(e.Dst(dstRef), src)
			return env.AdvanceAction
		}, nil
	}
	return func(e *env.Environment) env.ControlAction {
		runtime.LoadData(e.Registry, e.Dst(dstRef), src, dstType)
		return env.AdvanceAction
	}, nil
}

// leImmediate renders a "load %d, <imm>, <type>" immediate as an 8-byte
// little-endian buffer: the "temporary holding the immediate bytes"
// spec.md §4.4 describes.
func leImmediate(v uint64) data.Pointer {
	buf := make(data.Pointer, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * uint(i)))
	}
	return buf
}

func lowerRet() env.Instruction {
	return func(e *env.Environment) env.ControlAction {
		return env.ReturnAction
	}
}

func lowerDbOpreg() env.Instruction {
	return func(e *env.Environment) env.ControlAction {
		runtime.DumpRegisters(e)
		return env.AdvanceAction
	}
}

func lowerDbOptype() env.Instruction {
	return func(e *env.Environment) env.ControlAction {
		runtime.DumpTypes(e)
		return env.AdvanceAction
	}
}

func lowerClear(inst ir.Instruction, r *resolver) env.Instruction {
	dstRef := r.resolve(inst.Dst)
	return func(e *env.Environment) env.ControlAction {
		runtime.ClearRegister(e.Dst(dstRef))
		return env.AdvanceAction
	}
}

// lowerCmp requires the program to have declared a type named "u8":
// cmp's result is a u8-typed dyvarb (SPEC_FULL.md §4.4 FULL), and the
// opcode carries no type operand of its own to resolve one from.
func lowerCmp(inst ir.Instruction, r *resolver, registry *types.Registry) (env.Instruction, error) {
	boolType, err := registry.MustFind("u8")
	if err != nil {
		return nil, errors.Wrap(err, `cmp requires a declared "u8" type`)
	}
	dstRef := r.resolve(inst.Dst)
	aRef := r.resolve(inst.SrcA)
	bRef := r.resolve(inst.SrcB)
	return func(e *env.Environment) env.ControlAction {
		eq := runtime.Compare(e.Registry, e.Src(aRef), e.Src(bRef))
		result := data.Pointer{0}
		if eq {
			result[0] = 1
		}
		runtime.LoadData(e.Registry, e.Dst(dstRef), result, boolType)
		return env.AdvanceAction
	}, nil
}

// lowerSizeof requires the program to have declared a type named "u64":
// the loaded size is a machine-word-sized immediate (SPEC_FULL.md §4.4
// FULL).
func lowerSizeof(inst ir.Instruction, r *resolver, registry *types.Registry) (env.Instruction, error) {
	sizeofType, err := resolveTypeName(registry, inst.TypeName)
	if err != nil {
		return nil, err
	}
	wordType, err := registry.MustFind("u64")
	if err != nil {
		return nil, errors.Wrap(err, `sizeof requires a declared "u64" type`)
	}
	size := registry.At(sizeofType).Size
	imm := leImmediate(size)
	dstRef := r.resolve(inst.Dst)
	return func(e *env.Environment) env.ControlAction {
		runtime.LoadData(e.Registry, e.Dst(dstRef), imm, wordType)
		return env.AdvanceAction
	}, nil
}
