package asm

import (
	"cvm/diagnostics"
	"cvm/ir"
)

// parseInstruction decodes one opcode line within a ".func" body into an
// ir.Instruction, appending it to the function under construction.
func (p *Parser) parseInstruction(lineNo int, toks []string) {
	switch toks[0] {
	case "mov":
		p.parseMov(lineNo, toks)
	case "load":
		p.parseLoad(lineNo, toks)
	case "ret":
		p.parseRet(lineNo, toks)
	case "db_opreg":
		p.parseDbOpreg(lineNo, toks)
	case "clear":
		p.parseClear(lineNo, toks)
	case "cmp":
		p.parseCmp(lineNo, toks)
	case "sizeof":
		p.parseSizeof(lineNo, toks)
	case "db_optype":
		p.parseDbOptype(lineNo, toks)
	default:
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedInstruction, toks[0], lineNo))
	}
}

func (p *Parser) emit(lineNo int, inst ir.Instruction) {
	inst.Line = lineNo
	p.currentFunc.Instructions = append(p.currentFunc.Instructions, inst)
}

// regArgs parses exactly n register tokens starting at toks[1], failing
// (and returning ok=false) if the arity or any token is wrong.
func (p *Parser) regArgs(lineNo int, toks []string, n int) ([]ir.RegOperand, bool) {
	if len(toks)-1 != n {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return nil, false
	}
	out := make([]ir.RegOperand, n)
	ok := true
	for i := 0; i < n; i++ {
		reg, err := parseRegister(toks[i+1])
		if err != nil {
			p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[i+1], lineNo))
			ok = false
			continue
		}
		out[i] = reg
	}
	return out, ok
}

// mov %dst, %src
func (p *Parser) parseMov(lineNo int, toks []string) {
	regs, ok := p.regArgs(lineNo, toks, 2)
	if !ok {
		return
	}
	p.emit(lineNo, ir.Instruction{Op: ir.OpMov, Dst: regs[0], SrcA: regs[1]})
}

// load %dst, <imm>, <type>        (small immediate form)
// load %dst, #<data-index>, <type> (data-pool form)
func (p *Parser) parseLoad(lineNo int, toks []string) {
	if len(toks) != 4 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	dst, err := parseRegister(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		return
	}
	typeName, err := unescape(toks[3])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[3], lineNo))
		return
	}

	inst := ir.Instruction{Op: ir.OpLoad, Dst: dst, TypeName: typeName}
	if len(toks[2]) > 0 && toks[2][0] == '#' {
		idx, err := parseDataIndexToken(toks[2])
		if err != nil {
			p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[2], lineNo))
			return
		}
		inst.HasData = true
		inst.DataRef = idx
	} else {
		imm, err := parseNumber(toks[2])
		if err != nil {
			p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[2], lineNo))
			return
		}
		inst.HasImm = true
		inst.Imm = imm
	}
	p.emit(lineNo, inst)
}

// ret
func (p *Parser) parseRet(lineNo int, toks []string) {
	if len(toks) != 1 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	p.emit(lineNo, ir.Instruction{Op: ir.OpRet})
}

// db_opreg
func (p *Parser) parseDbOpreg(lineNo int, toks []string) {
	if len(toks) != 1 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	p.emit(lineNo, ir.Instruction{Op: ir.OpDbOpreg})
}

// clear %reg  (SPEC_FULL.md §4.4 FULL)
func (p *Parser) parseClear(lineNo int, toks []string) {
	regs, ok := p.regArgs(lineNo, toks, 1)
	if !ok {
		return
	}
	p.emit(lineNo, ir.Instruction{Op: ir.OpClear, Dst: regs[0]})
}

// cmp %dst, %a, %b  (SPEC_FULL.md §4.4 FULL)
func (p *Parser) parseCmp(lineNo int, toks []string) {
	regs, ok := p.regArgs(lineNo, toks, 3)
	if !ok {
		return
	}
	p.emit(lineNo, ir.Instruction{Op: ir.OpCmp, Dst: regs[0], SrcA: regs[1], SrcB: regs[2]})
}

// sizeof %dst, <type>  (SPEC_FULL.md §4.4 FULL)
func (p *Parser) parseSizeof(lineNo int, toks []string) {
	if len(toks) != 3 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	dst, err := parseRegister(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		return
	}
	typeName, err := unescape(toks[2])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[2], lineNo))
		return
	}
	p.emit(lineNo, ir.Instruction{Op: ir.OpSizeof, Dst: dst, TypeName: typeName})
}

// db_optype  (SPEC_FULL.md §4.4 FULL)
func (p *Parser) parseDbOptype(lineNo int, toks []string) {
	if len(toks) != 1 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	p.emit(lineNo, ir.Instruction{Op: ir.OpDbOptype})
}
