// Package diagnostics centralizes the error taxonomy (§7) and the
// diagnostic message formatting shared by the parser, compiler, and CLI.
package diagnostics

import (
	"fmt"

	"github.com/pkg/errors"
)

// Parse-stage sentinels (§7).
var (
	ErrUnrecognizedNumber      = errors.New("unrecognized number")
	ErrNumberTooLarge          = errors.New("number too large")
	ErrUnrecognizedRegister    = errors.New("unrecognized register")
	ErrUnrecognizedEnvironment = errors.New("unrecognized environment")
	ErrUnrecognizedEscape      = errors.New("unrecognized escape")
	ErrUnrecognizedInstruction = errors.New("unrecognized instruction")
	ErrUnrecognizedCommand     = errors.New("unrecognized command")
	ErrUnrecognizedDataIndex   = errors.New("unrecognized data index")
)

// Symbol-resolution sentinels (§7). UndefinedType and UndefinedDataIndex
// are defined alongside their owning registries (types.ErrUndefinedType,
// data.ErrUndefinedDataIndex) and re-exported here is deliberately
// avoided — call sites import the owning package directly, keeping each
// sentinel next to the invariant it guards.
var (
	ErrUndefinedFunction  = errors.New("undefined function")
	ErrDuplicateFunction  = errors.New("function name duplicate")
	ErrDuplicateDataIndex = errors.New("data index duplicate")
)

// ErrInternal marks a diagnostic synthesized from a recovered panic
// (§7 "assertion failure on malformed runtime instruction") rather than
// from an ordinary error return.
var ErrInternal = errors.New("internal assertion failure")

// Stage names for the §6 diagnostic message format:
//
//	<Stage> Error for '<msg>' at '<token>' in line(<n>).
type Stage string

const (
	Parse   Stage = "Parse"
	Compile Stage = "Compile"
	Runtime Stage = "Runtime"
)

// located carries the §6 message shape while still unwrapping to the
// original sentinel, so callers can errors.Is/errors.As through it.
type located struct {
	stage Stage
	err   error
	token string
	line  int
}

func (l *located) Error() string {
	return fmt.Sprintf("%s Error for '%s' at '%s' in line(%d).", l.stage, l.err.Error(), l.token, l.line)
}

func (l *located) Unwrap() error { return l.err }

// AtToken wraps err in the §6 diagnostic message format:
//
//	<Stage> Error for '<msg>' at '<token>' in line(<n>).
func AtToken(stage Stage, err error, token string, line int) error {
	return &located{stage: stage, err: err, token: token, line: line}
}
