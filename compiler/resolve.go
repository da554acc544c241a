// Package compiler lowers the parser's Instruction Structure (ir.Program)
// into the runtime-ready form (env.Function / env.Instruction closures):
// every symbolic name is resolved exactly once, here, never again at
// run time (§4.4).
package compiler

import (
	"cvm/ir"
	"cvm/register"
	"cvm/types"

	"github.com/pkg/errors"
)

// ErrUndefinedFunction flags a ".program / entry" naming a function the
// program never declared.
var ErrUndefinedFunction = errors.New("undefined function")

// resolver turns a source-level ir.RegOperand into a resolved
// register.Ref. It only needs the enclosing function's dyvarb count: the
// bare numeric class spans dyvarb then stvarb within whichever register
// file the qualifier ultimately reaches (§4.4 step 2). A qualified
// register ("g"/"t") is resolved against the *current* function's own
// dyvarb/stvarb split; this is a deliberate simplification, since the
// environment reached through penv/tenv need not share the caller's
// layout in general.
type resolver struct {
	dyvarbCount int
}

// resolve converts one source operand into its runtime Ref.
func (r *resolver) resolve(op ir.RegOperand) register.Ref {
	switch op.Class {
	case ir.ClassResult:
		return register.Ref{Kind: register.KindResult}
	case ir.ClassZero:
		return register.Ref{Kind: register.KindZero}
	}

	qual := r.defaultQual(op.Class)
	switch op.ExplicitQual {
	case ir.QualEnv:
		qual = register.QualCurrent
	case ir.QualPEnv:
		qual = register.QualParent
	case ir.QualTEnv:
		qual = register.QualTemp
	}

	// Bare-%N numbering is 1-based for reaching dyvarb/stvarb slots: %0
	// is permanently carved out as the zero register (handled above via
	// ir.ClassZero), so slot 0 is always written "%1" (§9 Open Question
	// resolution).
	slot := op.Index - 1
	if slot < r.dyvarbCount {
		return register.Ref{Kind: register.KindDynamic, Index: slot, Qual: qual}
	}
	return register.Ref{Kind: register.KindStatic, Index: slot - r.dyvarbCount, Qual: qual}
}

func (r *resolver) defaultQual(class ir.RegClass) register.Qual {
	switch class {
	case ir.ClassGlobal:
		return register.QualParent
	case ir.ClassTemp:
		return register.QualTemp
	default:
		return register.QualCurrent
	}
}

// buildLayout derives a register.Layout from an IS function's declared
// dyvarb count and stvarb type names, resolving each type name through
// registry.
func buildLayout(fn *ir.Function, registry *types.Registry) (register.Layout, error) {
	layout := register.Layout{DyvarbCount: fn.DyvarbCount}
	for _, name := range fn.StvarbTypes {
		idx, err := registry.MustFind(name)
		if err != nil {
			return register.Layout{}, err
		}
		layout.StvarbTypes = append(layout.StvarbTypes, idx)
	}
	return layout, nil
}
