// Package asm implements the external source-program parser (§6): a
// line-oriented textual format that the core (§1) treats as an external
// collaborator. Nothing here is part of the spec's scoped execution
// model; it exists so the module can run a program end to end.
package asm

import (
	"strings"

	"cvm/diagnostics"
)

// stripComment removes a ";"-introduced comment, returning the line with
// trailing whitespace trimmed.
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimRight(line, " \t\r")
}

// isBlank reports whether line has nothing left once trimmed.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// fields splits a line on runs of space, tab, or comma (§6 "Tokens
// separate on [ \t,]").
func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// unescape decodes the %-escapes an identifier needs when it contains a
// literal '%' or '#' (§6: "any characters except % and #, which must be
// %-escaped").
func unescape(tok string) (string, error) {
	if !strings.ContainsRune(tok, '%') {
		return tok, nil
	}
	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		if tok[i] != '%' {
			b.WriteByte(tok[i])
			continue
		}
		if i+1 >= len(tok) {
			return "", diagnostics.ErrUnrecognizedEscape
		}
		switch tok[i+1] {
		case '%':
			b.WriteByte('%')
		case '#':
			b.WriteByte('#')
		default:
			return "", diagnostics.ErrUnrecognizedEscape
		}
		i++
	}
	return b.String(), nil
}
