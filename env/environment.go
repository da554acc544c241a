// Package env implements the environment tree: Global roots it and owns
// the type registry and data pool; Local nodes hold one function
// activation's register file plus its program counter; Thread is a
// reserved variant the core never exercises (§1, §3).
package env

import (
	"cvm/data"
	"cvm/register"
	"cvm/types"
)

// Kind distinguishes the three environment variants of §3.
type Kind int

const (
	Global Kind = iota
	Local
	Thread
)

// ControlActionKind tags what a runtime instruction tells the VM loop to
// do next.
type ControlActionKind int

const (
	Advance ControlActionKind = iota
	Return
	Jump
)

// ControlAction is the verdict a runtime instruction hands back to the
// VM loop. Jump carries the target PC in N; current opcodes never
// produce it (§4.5), but the VM loop honors it so a future opcode can.
type ControlAction struct {
	Kind ControlActionKind
	N    int
}

// AdvanceAction and ReturnAction are the control actions current opcodes
// produce; Jump is reserved for a future branching opcode (§4.5).
var (
	AdvanceAction = ControlAction{Kind: Advance}
	ReturnAction  = ControlAction{Kind: Return}
)

// Instruction is the runtime-compiled form of one IS instruction: a
// closure that performs the opcode's effect against an Environment.
type Instruction func(e *Environment) ControlAction

// Function is the runtime-compiled function: a fixed register Layout
// plus the compiled instruction stream.
type Function struct {
	Name         string
	Layout       register.Layout
	Instructions []Instruction
}

// ControlFlow is the program-counter cursor advanced by the VM loop
// while it drives a Local environment's Function.
type ControlFlow struct {
	Function *Function
	PC       int
}

// Environment is one node in the tree. Parent and Temp are non-owning
// links (back-reference and sibling, respectively); Children are owned.
type Environment struct {
	Kind Kind

	Registers *register.File
	Registry  *types.Registry
	Pool      *data.Pool

	Parent   *Environment
	Temp     *Environment
	Children []*Environment

	// Control is non-nil only for Kind == Local.
	Control *ControlFlow

	// Result is the %res singleton dynamic register, always present on
	// a Local environment (§3).
	Result register.Dynamic
}

// IsLocal reports whether this environment carries a function activation.
func (e *Environment) IsLocal() bool {
	return e.Kind == Local
}

// NewGlobal creates the root of the environment tree, seeded with the
// shared type registry and literal data pool. It owns no registers of
// its own (nothing in the spec addresses a bare %N against the global
// file directly; it is only reached via %g / penv).
func NewGlobal(registry *types.Registry, pool *data.Pool) *Environment {
	return &Environment{
		Kind:      Global,
		Registers: &register.File{},
		Registry:  registry,
		Pool:      pool,
	}
}

// NewLocal creates a function activation environment, attaches it as a
// child of parent, and sizes its register file from fn's Layout. temp
// may be nil: not every activation has a temporary sibling.
func NewLocal(parent *Environment, fn *Function, temp *Environment) *Environment {
	child := &Environment{
		Kind:      Local,
		Registers: register.NewFile(fn.Layout, parent.Registry),
		Registry:  parent.Registry,
		Pool:      parent.Pool,
		Parent:    parent,
		Temp:      temp,
		Control:   &ControlFlow{Function: fn, PC: 0},
	}
	parent.Children = append(parent.Children, child)
	return child
}

// fileFor resolves an env qualifier to the register file it addresses.
// Resolving parent/temp is a single hop to the linked environment's own
// file — qualifiers never compose (§4.2).
func (e *Environment) fileFor(qual register.Qual) *Environment {
	switch qual {
	case register.QualParent:
		return e.Parent
	case register.QualTemp:
		return e.Temp
	default:
		return e
	}
}

var zeroDst = register.DstData{Mode: register.ModeNull}

// Dst resolves a register.Ref into a write-adapter. %0 (KindZero)
// always yields the discard-writes adapter; %res (KindResult) targets
// the environment's own Result slot regardless of qualifier, since the
// result register has no qualified form in the grammar.
func (e *Environment) Dst(ref register.Ref) register.DstData {
	if ref.Kind == register.KindZero {
		return zeroDst
	}
	if ref.Kind == register.KindResult {
		return register.DstData{Mode: register.ModeDynamicSlot, DataSlot: &e.Result.Data, TypeSlot: &e.Result.Type}
	}
	target := e.fileFor(ref.Qual)
	if target == nil {
		return zeroDst
	}
	if ref.Kind == register.KindStatic {
		return target.Registers.DstStatic(ref.Index)
	}
	return target.Registers.DstDynamic(ref.Index)
}

// Src resolves a register.Ref into a read-adapter. %0 reads as
// {nil, NullType}.
func (e *Environment) Src(ref register.Ref) register.SrcData {
	if ref.Kind == register.KindZero {
		return register.SrcData{Data: nil, Type: types.NullType}
	}
	if ref.Kind == register.KindResult {
		return register.SrcData{Data: e.Result.Data, Type: e.Result.Type}
	}
	target := e.fileFor(ref.Qual)
	if target == nil {
		return register.SrcData{Data: nil, Type: types.NullType}
	}
	if ref.Kind == register.KindStatic {
		return target.Registers.SrcStatic(ref.Index)
	}
	return target.Registers.SrcDynamic(ref.Index)
}
