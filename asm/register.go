package asm

import (
	"strconv"
	"strings"

	"cvm/diagnostics"
	"cvm/ir"
)

// parseRegister decodes a source-level register token: "%<class><index>
// [(%<env>)]", or the special tokens "%res" / "%0" (§3). The bare "%N"
// form is class-numeric; "%0" is carved out as the permanent zero
// register (§9 Open Question resolution — see SPEC_FULL.md §9 FULL).
// The qualifier suffix, if any, is stripped before the "%res"/"%0"
// checks: spec.md §8 scenario 2 writes the zero register as "%0(%env)",
// and that redundant qualifier must still resolve to the zero register,
// not to a class-numeric register at index 0.
func parseRegister(tok string) (ir.RegOperand, error) {
	if !strings.HasPrefix(tok, "%") {
		return ir.RegOperand{}, diagnostics.ErrUnrecognizedRegister
	}
	rest := tok[1:]

	qual := ir.QualDefault
	if i := strings.IndexByte(rest, '('); i >= 0 {
		suffix := rest[i:]
		rest = rest[:i]
		switch suffix {
		case "(%env)":
			qual = ir.QualEnv
		case "(%penv)":
			qual = ir.QualPEnv
		case "(%tenv)":
			qual = ir.QualTEnv
		default:
			return ir.RegOperand{}, diagnostics.ErrUnrecognizedEnvironment
		}
	}

	if rest == "res" {
		if qual != ir.QualDefault {
			return ir.RegOperand{}, diagnostics.ErrUnrecognizedRegister
		}
		return ir.RegOperand{Class: ir.ClassResult}, nil
	}
	if rest == "0" {
		return ir.RegOperand{Class: ir.ClassZero}, nil
	}

	class := ir.ClassNumeric
	switch {
	case strings.HasPrefix(rest, "g"):
		class = ir.ClassGlobal
		rest = rest[1:]
	case strings.HasPrefix(rest, "t"):
		class = ir.ClassTemp
		rest = rest[1:]
	}

	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 {
		return ir.RegOperand{}, diagnostics.ErrUnrecognizedRegister
	}
	if index == 0 {
		// Only the bare "%0" token (any qualifier) is the reserved
		// zero register, handled above. "%g0"/"%t0"/a stray "%00"
		// have no zero-register meaning of their own and would
		// otherwise resolve to the out-of-bounds slot -1 under the
		// 1-based dyvarb/stvarb numbering (compiler/resolve.go).
		return ir.RegOperand{}, diagnostics.ErrUnrecognizedRegister
	}

	return ir.RegOperand{Class: class, Index: index, ExplicitQual: qual}, nil
}
