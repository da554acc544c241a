package compiler

import (
	"cvm/data"
	"cvm/env"
	"cvm/ir"
	"cvm/types"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Program is the fully-resolved, runtime-ready form of an ir.Program: a
// shared type registry, a shared data pool, and every function compiled
// to its env.Function form.
type Program struct {
	Registry  *types.Registry
	Pool      *data.Pool
	Entry     string
	Functions map[string]*env.Function
}

// Compile lowers prog into a runtime-ready Program. Type and data
// declarations are built first since function bodies reference them by
// name/index; errors across distinct functions accumulate via multierr
// so a caller sees every undefined symbol in one pass, matching the
// parser's continue-past-errors policy (§7).
func Compile(prog *ir.Program) (*Program, error) {
	registry := types.NewRegistry()
	var errs error
	for _, t := range prog.Types {
		if _, err := registry.Insert(t.Name, t.Size); err != nil {
			errs = multierr.Append(errs, wrapLine(err, t.Line))
		}
	}

	pool := data.NewPool()
	for _, d := range prog.Datas {
		pool.Declare(d.Index, d.Payload, d.Capacity)
	}

	out := &Program{
		Registry:  registry,
		Pool:      pool,
		Entry:     prog.Entry,
		Functions: make(map[string]*env.Function),
	}

	for _, name := range prog.FunctionOrder {
		fn, err := compileFunction(prog.Functions[name], registry, pool)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out.Functions[name] = fn
	}

	if prog.Entry != "" {
		if _, ok := out.Functions[prog.Entry]; !ok {
			errs = multierr.Append(errs, errors.Wrapf(ErrUndefinedFunction, "%q", prog.Entry))
		}
	}

	return out, errs
}

func wrapLine(err error, line int) error {
	return errors.Wrapf(err, "line %d", line)
}

// compileFunction builds one function's register Layout and lowers each
// of its IS instructions into a runtime closure.
func compileFunction(fn *ir.Function, registry *types.Registry, pool *data.Pool) (*env.Function, error) {
	layout, err := buildLayout(fn, registry)
	if err != nil {
		return nil, err
	}

	r := &resolver{dyvarbCount: fn.DyvarbCount}

	out := &env.Function{Name: fn.Name, Layout: layout}
	var errs error
	for _, inst := range fn.Instructions {
		compiled, err := lower(inst, r, registry, pool)
		if err != nil {
			errs = multierr.Append(errs, wrapLine(err, inst.Line))
			continue
		}
		out.Instructions = append(out.Instructions, compiled)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
