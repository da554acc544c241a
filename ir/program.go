package ir

import "cvm/data"

// Instruction is one IS instruction: a tagged fixed operand tuple, still
// referencing registers/types/data by name or abstract index (§3).
type Instruction struct {
	Op   Opcode
	Line int // source line, for diagnostics (§6 message format)

	Dst  RegOperand
	SrcA RegOperand
	SrcB RegOperand // cmp's second operand

	HasImm   bool
	Imm      uint64 // load %d, <imm>, <type>
	HasData  bool
	DataRef  data.DataIndex // load %d, #<n>, <type>
	TypeName string         // load/sizeof declared type name
}

// TypeDecl is a ".type <name> / size <bytes>" declaration.
type TypeDecl struct {
	Name string
	Size uint64
	Line int
}

// DataDecl is a ".datas / data #<index> 0x<hex> <capacity>" declaration.
type DataDecl struct {
	Index    data.DataIndex
	Payload  []byte
	Capacity uint64
	Line     int
}

// Function is the parser-produced IS function: an ordered instruction
// sequence plus its declared dyvarb count and stvarb type list (§2).
type Function struct {
	Name         string
	DyvarbCount  int
	StvarbTypes  []string // one entry per static register, in declared order
	Instructions []Instruction
}

// Program is the complete IS produced by the parser: type declarations,
// the data section, every function, and the designated entry function
// (§6 ".program / entry <identifier>").
type Program struct {
	Entry string

	Types []TypeDecl
	Datas []DataDecl

	Functions     map[string]*Function
	FunctionOrder []string
}

// NewProgram returns an empty Program ready for the parser to populate.
func NewProgram() *Program {
	return &Program{
		Functions: make(map[string]*Function),
	}
}

// AddFunction registers fn, preserving declaration order for deterministic
// iteration (compiler.Compile lowers functions in this order).
func (p *Program) AddFunction(fn *Function) {
	p.Functions[fn.Name] = fn
	p.FunctionOrder = append(p.FunctionOrder, fn.Name)
}
