package runtime

import (
	"cvm/env"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrFatalInstruction is the error Run returns when it is handed an
// environment with no ControlFlow; per §7, runtime errors are fatal and
// abort the run. Instruction closures return only a ControlAction and
// report no errors of their own.
var ErrFatalInstruction = errors.New("runtime error")

// Run drives the program counter of a Local environment's ControlFlow
// through its Function's instructions (§4.5). Fetch, execute, observe:
// Advance steps the pc, Jump sets it directly (reserved; no current
// opcode emits it), Return exits. Falling off the end of the
// instruction list is equivalent to Return.
func Run(logger *logrus.Logger, local *env.Environment) error {
	cf := local.Control
	if cf == nil {
		return errors.Wrap(ErrFatalInstruction, "Run called on a non-local environment")
	}

	for {
		if cf.PC >= len(cf.Function.Instructions) {
			logger.WithField("function", cf.Function.Name).Debug("instruction stream exhausted, implicit return")
			return nil
		}

		instr := cf.Function.Instructions[cf.PC]
		action := instr(local)

		switch action.Kind {
		case env.Advance:
			cf.PC++
		case env.Jump:
			cf.PC = action.N
		case env.Return:
			logger.WithField("function", cf.Function.Name).Debug("ret")
			return nil
		}
	}
}
