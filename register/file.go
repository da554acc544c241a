// Package register implements the register file: the two register kinds
// (dynamic, static) held by one environment activation.
package register

import (
	"cvm/data"
	"cvm/types"
)

// Dynamic is a {data, type} pair whose type can change instruction to
// instruction. Initially {nil, NullType}.
type Dynamic struct {
	Data data.Pointer
	Type types.TypeIndex
}

// Static is a {data, type} pair whose type is fixed at function-definition
// time. Data is a pre-allocated, zero-initialized buffer of exactly
// typeinfo.Size bytes for the full life of the environment.
type Static struct {
	Data data.Pointer
	Type types.TypeIndex
}

// File holds the dynamic and static registers for one environment
// activation.
type File struct {
	Dynamic []Dynamic
	Static  []Static
}

// Layout describes how many dynamic slots and which static types a
// function's register file needs. It is produced by the compiler (§4.4)
// from the IS function's dyvarb count and stvarb type list.
type Layout struct {
	DyvarbCount   int
	StvarbTypes   []types.TypeIndex
}

// NewFile allocates a register file from a Layout: DyvarbCount dynamic
// registers, all {nil, NullType}, and one Static register per entry in
// StvarbTypes, each with a cleared buffer of registry.At(t).Size bytes.
func NewFile(layout Layout, registry *types.Registry) *File {
	f := &File{
		Dynamic: make([]Dynamic, layout.DyvarbCount),
		Static:  make([]Static, len(layout.StvarbTypes)),
	}
	for i, t := range layout.StvarbTypes {
		size := registry.At(t).Size
		f.Static[i] = Static{Data: data.AllocClear(size), Type: t}
	}
	return f
}

// GetDynamic indexes the dynamic register vector.
func (f *File) GetDynamic(i int) *Dynamic {
	return &f.Dynamic[i]
}

// GetStatic indexes the static register vector.
func (f *File) GetStatic(i int) *Static {
	return &f.Static[i]
}

// DstDynamic builds the write-adapter for dynamic register i: a
// ModeDynamicSlot destination whose assignment reassigns the pointer.
func (f *File) DstDynamic(i int) DstData {
	d := f.GetDynamic(i)
	return DstData{Mode: ModeDynamicSlot, DataSlot: &d.Data, TypeSlot: &d.Type}
}

// DstStatic builds the write-adapter for static register i: a
// ModeStaticSlot destination whose assignment byte-copies into the
// fixed-size buffer. The destination's type is immutable, so TypeSlot is
// nil.
func (f *File) DstStatic(i int) DstData {
	s := f.GetStatic(i)
	return DstData{Mode: ModeStaticSlot, DataSlot: &s.Data, TypeSlot: nil}
}

// SrcDynamic builds the read-adapter for dynamic register i.
func (f *File) SrcDynamic(i int) SrcData {
	d := f.GetDynamic(i)
	return SrcData{Data: d.Data, Type: d.Type}
}

// SrcStatic builds the read-adapter for static register i: the type is
// always the slot's declared type.
func (f *File) SrcStatic(i int) SrcData {
	s := f.GetStatic(i)
	return SrcData{Data: s.Data, Type: s.Type}
}
