// Package ir implements the Instruction Structure (IS): the symbolic,
// parser-produced representation of a program, referencing registers,
// data, and types by name or abstract index (§3, §4.4).
package ir

// Opcode enumerates the instruction set's symbolic opcodes. Grounded on
// the teacher's RegisterOpCode enum (vm/register_opcodes.go): a small
// closed tag with a String() method, rather than open-ended polymorphism
// at the IS layer.
type Opcode int

const (
	OpMov Opcode = iota
	OpLoad
	OpRet
	OpDbOpreg

	// Supplementary opcodes (SPEC_FULL.md §4.4 FULL): additive only,
	// none of them introduce control transfer or allocation policy.
	OpClear
	OpCmp
	OpSizeof
	OpDbOptype
)

// String renders an opcode the way it appears in source.
func (op Opcode) String() string {
	switch op {
	case OpMov:
		return "mov"
	case OpLoad:
		return "load"
	case OpRet:
		return "ret"
	case OpDbOpreg:
		return "db_opreg"
	case OpClear:
		return "clear"
	case OpCmp:
		return "cmp"
	case OpSizeof:
		return "sizeof"
	case OpDbOptype:
		return "db_optype"
	default:
		return "unknown"
	}
}
