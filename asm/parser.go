package asm

import (
	"strings"

	"cvm/diagnostics"
	"cvm/ir"
	"cvm/types"

	"go.uber.org/multierr"
)

// section identifies which ".<name>" block the parser is currently
// inside (§6).
type section int

const (
	sectionNone section = iota
	sectionProgram
	sectionImports
	sectionExports
	sectionDatas
	sectionModule
	sectionFunc
	sectionType
)

// Parser turns line-oriented source text into an ir.Program. Parse
// errors are collected (not fatal) so the caller sees every problem in
// one pass (§7 policy); compile/runtime errors, by contrast, abort.
type Parser struct {
	program *ir.Program
	errs    error

	section     section
	currentFunc *ir.Function
	currentType *ir.TypeDecl

	seenFuncs  map[string]bool
	seenTypes  map[string]bool
	seenDatas  map[uint64]bool
}

// NewParser returns a Parser ready to consume source text.
func NewParser() *Parser {
	return &Parser{
		program:   ir.NewProgram(),
		seenFuncs: make(map[string]bool),
		seenTypes: make(map[string]bool),
		seenDatas: make(map[uint64]bool),
	}
}

// Parse runs the full line-oriented grammar over source and returns the
// accumulated IS program. The returned error is nil only if every line
// parsed cleanly; otherwise it is a multierr.Errors()-enumerable
// collection with at least one entry per malformed line (a line with
// several bad register operands contributes one entry for each).
func Parse(source string) (*ir.Program, error) {
	p := NewParser()
	for i, raw := range strings.Split(source, "\n") {
		p.parseLine(i+1, raw)
	}
	return p.program, p.errs
}

// Errors exposes each accumulated parse error individually.
func (p *Parser) Errors() []error {
	return multierr.Errors(p.errs)
}

func (p *Parser) fail(err error) {
	p.errs = multierr.Append(p.errs, err)
}

func (p *Parser) parseLine(lineNo int, raw string) {
	line := stripComment(raw)
	if isBlank(line) {
		return
	}

	if line[0] == '.' {
		p.parseHeader(lineNo, line)
		return
	}
	if line[0] == ' ' || line[0] == '\t' {
		p.parseBody(lineNo, strings.TrimLeft(line, " \t"))
		return
	}
	p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, line, lineNo))
}

func (p *Parser) parseHeader(lineNo int, line string) {
	toks := fields(line)
	name := strings.TrimPrefix(toks[0], ".")

	switch name {
	case "program":
		p.section = sectionProgram
	case "imports":
		p.section = sectionImports
	case "exports":
		p.section = sectionExports
	case "datas":
		p.section = sectionDatas
	case "module":
		p.section = sectionModule
	case "func":
		p.section = sectionFunc
		p.beginFunc(lineNo, toks)
	case "type":
		p.section = sectionType
		p.beginType(lineNo, toks)
	default:
		p.section = sectionNone
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
	}
}

func (p *Parser) beginFunc(lineNo int, toks []string) {
	if len(toks) != 2 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		p.currentFunc = nil
		return
	}
	name, err := unescape(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		p.currentFunc = nil
		return
	}
	if p.seenFuncs[name] {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrDuplicateFunction, name, lineNo))
		p.currentFunc = nil
		return
	}
	p.seenFuncs[name] = true
	p.currentFunc = &ir.Function{Name: name}
	p.program.AddFunction(p.currentFunc)
}

func (p *Parser) beginType(lineNo int, toks []string) {
	if len(toks) != 2 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		p.currentType = nil
		return
	}
	name, err := unescape(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		p.currentType = nil
		return
	}
	if p.seenTypes[name] {
		p.fail(diagnostics.AtToken(diagnostics.Parse, types.ErrDuplicateType, name, lineNo))
		p.currentType = nil
		return
	}
	p.seenTypes[name] = true
	p.currentType = &ir.TypeDecl{Name: name, Line: lineNo}
}

func (p *Parser) parseBody(lineNo int, line string) {
	toks := fields(line)
	if len(toks) == 0 {
		return
	}

	switch p.section {
	case sectionProgram:
		p.parseProgramDirective(lineNo, toks)
	case sectionDatas:
		p.parseDataDirective(lineNo, toks)
	case sectionType:
		p.parseTypeDirective(lineNo, toks)
	case sectionFunc:
		p.parseFuncBody(lineNo, toks)
	case sectionImports, sectionExports, sectionModule:
		// Reserved but semantically empty (§9 Open Question): parsed,
		// never consulted.
	default:
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
	}
}

func (p *Parser) parseProgramDirective(lineNo int, toks []string) {
	if toks[0] != "entry" || len(toks) != 2 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	name, err := unescape(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		return
	}
	p.program.Entry = name
}

func (p *Parser) parseTypeDirective(lineNo int, toks []string) {
	if p.currentType == nil {
		return
	}
	if toks[0] != "size" || len(toks) != 2 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	size, err := parseNumber(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		return
	}
	p.currentType.Size = size
	p.program.Types = append(p.program.Types, *p.currentType)
}

func (p *Parser) parseDataDirective(lineNo int, toks []string) {
	if toks[0] != "data" || len(toks) != 4 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	idx, err := parseDataIndexToken(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		return
	}
	if p.seenDatas[uint64(idx)] {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrDuplicateDataIndex, toks[1], lineNo))
		return
	}
	capacity, err := parseNumber(toks[3])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[3], lineNo))
		return
	}
	payload, err := parseHexPayload(toks[2], capacity)
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[2], lineNo))
		return
	}
	p.seenDatas[uint64(idx)] = true
	p.program.Datas = append(p.program.Datas, ir.DataDecl{
		Index: idx, Payload: payload, Capacity: capacity, Line: lineNo,
	})
}

func (p *Parser) parseFuncBody(lineNo int, toks []string) {
	if p.currentFunc == nil {
		return
	}
	switch toks[0] {
	case "arg", "data":
		// Reserved, no-op (§9 Open Question): calling-convention
		// directives the spec leaves semantically empty.
	case "dyvarb":
		p.parseDyvarb(lineNo, toks)
	case "stvarb":
		p.parseStvarb(lineNo, toks)
	default:
		p.parseInstruction(lineNo, toks)
	}
}

func (p *Parser) parseDyvarb(lineNo int, toks []string) {
	if len(toks) != 2 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	count, err := parseNumber(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		return
	}
	p.currentFunc.DyvarbCount = int(count)
}

func (p *Parser) parseStvarb(lineNo int, toks []string) {
	if len(toks) != 3 {
		p.fail(diagnostics.AtToken(diagnostics.Parse, diagnostics.ErrUnrecognizedCommand, toks[0], lineNo))
		return
	}
	count, err := parseNumber(toks[1])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[1], lineNo))
		return
	}
	typeName, err := unescape(toks[2])
	if err != nil {
		p.fail(diagnostics.AtToken(diagnostics.Parse, err, toks[2], lineNo))
		return
	}
	for i := uint64(0); i < count; i++ {
		p.currentFunc.StvarbTypes = append(p.currentFunc.StvarbTypes, typeName)
	}
}
