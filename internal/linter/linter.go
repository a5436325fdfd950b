package linter

import (
	"strings"

	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
)

// Linter checks a module for declarations that translate but are likely mistakes.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	mod  *ir.Module
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on mod and returns diagnostics.
func Lint(mod *ir.Module) *diagnostic.Diagnostics {
	l := &Linter{
		mod:  mod,
		diag: diagnostic.New(),
	}

	l.lintConstants()
	l.lintStructs()
	l.lintFunctions()

	return l.diag
}

// lintConstants warns about constants no function or constant refers to.
func (l *Linter) lintConstants() {
	used := map[string]bool{}

	for _, c := range l.mod.Constants {
		collectUsedConstants(c.Value, used)
	}
	for _, fn := range l.mod.Functions {
		collectUsedConstants(fn.Body, used)
	}

	for _, c := range l.mod.Constants {
		if !used[c.Name] {
			l.warnf(c.Loc, "constant '%s' is never used", c.Name)
		}
	}
}

// lintStructs checks type parameters of struct declarations.
func (l *Linter) lintStructs() {
	for _, s := range l.mod.Structs {
		if s.Native {
			continue
		}

		used := map[string]bool{}
		for _, f := range s.Fields {
			collectTypeParams(f.Type, used)
		}

		for _, p := range s.TypeParams {
			if !p.IsPhantom && !used[p.Name] {
				l.diag.Add(diagnostic.Diagnostic{
					Severity: diagnostic.Warning,
					Message:  "type parameter '" + p.Name + "' of struct '" + s.Name + "' is not used by any field",
					File:     s.Loc.File,
					Line:     s.Loc.Line,
					Column:   s.Loc.Column,
					Hint:     "declare it phantom",
				})
			}
		}
	}
}

// lintFunctions checks all defined functions.
func (l *Linter) lintFunctions() {
	for _, fn := range l.mod.Functions {
		if fn.Native {
			continue
		}

		l.checkEmptyFunctionBody(fn)

		used := collectUsedNames(fn.Body)
		l.checkUnusedParams(fn, used)
		l.checkUnusedLocals(fn, used)
	}
}

func (l *Linter) checkEmptyFunctionBody(fn *ir.Function) {
	if len(fn.Body) == 0 {
		l.warnf(fn.Loc, "function '%s' has an empty body", fn.Name)
	}
}

func (l *Linter) checkUnusedParams(fn *ir.Function, used map[string]bool) {
	for _, p := range fn.Signature.Params {
		if ignored(p.Name) || used[p.Name] {
			continue
		}

		if ir.IsSigner(p.Type) && fn.IsEntry() {
			continue
		}

		l.warnf(fn.Loc, "parameter '%s' in '%s' is never used", p.Name, fn.Name)
	}
}

// checkUnusedLocals warns about locals that are declared but never read.
// Each one becomes a hoisted declaration in the generated function.
func (l *Linter) checkUnusedLocals(fn *ir.Function, used map[string]bool) {
	params := map[string]bool{}
	for _, p := range fn.Signature.Params {
		params[p.Name] = true
	}

	for _, loc := range fn.Locals {
		if params[loc.Name] || ignored(loc.Name) || used[loc.Name] {
			continue
		}

		l.warnf(fn.Loc, "local '%s' in '%s' is declared but never used", loc.Name, fn.Name)
	}
}

func (l *Linter) warnf(loc ir.Loc, format string, args ...interface{}) {
	file := loc.File
	if file == "" {
		file = l.mod.File
	}

	l.diag.Warningf(file, loc.Line, loc.Column, format, args...)
}

func ignored(name string) bool {
	return strings.HasPrefix(name, "_")
}

// collectUsedNames returns the locals read anywhere in b.
func collectUsedNames(b ir.Block) map[string]bool {
	used := map[string]bool{}

	walkBlock(b, func(e ir.Exp) {
		switch e := e.(type) {
		case *ir.MoveExp:
			used[e.Name] = true
		case *ir.CopyExp:
			used[e.Name] = true
		case *ir.BorrowLocalExp:
			used[e.Name] = true
		}
	})

	return used
}

func collectUsedConstants(b ir.Block, used map[string]bool) {
	walkBlock(b, func(e ir.Exp) {
		if c, ok := e.(*ir.ConstantExp); ok {
			used[c.Name] = true
		}
	})
}

func collectTypeParams(t ir.BaseType, used map[string]bool) {
	switch t := t.(type) {
	case *ir.TypeParam:
		used[t.Name] = true
	case *ir.BuiltinType:
		for _, a := range t.Args {
			collectTypeParams(a, used)
		}
	case *ir.StructType:
		for _, a := range t.Args {
			collectTypeParams(a, used)
		}
	}
}

// walkBlock calls fn for every expression in b, outer expressions first.
func walkBlock(b ir.Block, fn func(ir.Exp)) {
	for _, s := range b {
		switch s := s.(type) {
		case *ir.IfElse:
			walkExp(s.Cond, fn)
			walkBlock(s.If, fn)
			walkBlock(s.Else, fn)
		case *ir.While:
			walkBlock(s.Pre, fn)
			walkExp(s.Cond, fn)
			walkBlock(s.Body, fn)
		case *ir.Loop:
			walkBlock(s.Body, fn)
		case *ir.Assign:
			walkExp(s.Exp, fn)
		case *ir.Mutate:
			walkExp(s.Target, fn)
			walkExp(s.Exp, fn)
		case *ir.Abort:
			walkExp(s.Code, fn)
		case *ir.Return:
			walkExp(s.Exp, fn)
		case *ir.IgnoreAndPop:
			walkExp(s.Exp, fn)
		case *ir.Jump:
			walkExp(s.Cond, fn)
		}
	}
}

func walkExp(e ir.Exp, fn func(ir.Exp)) {
	if e == nil {
		return
	}

	fn(e)

	switch e := e.(type) {
	case *ir.ModuleCallExp:
		walkExps(e.Args, fn)
	case *ir.BuiltinCallExp:
		walkExps(e.Args, fn)
	case *ir.VectorExp:
		walkExps(e.Elems, fn)
	case *ir.DereferenceExp:
		walkExp(e.Exp, fn)
	case *ir.BorrowExp:
		walkExp(e.Exp, fn)
	case *ir.UnaryExp:
		walkExp(e.Exp, fn)
	case *ir.BinopExp:
		walkExp(e.Left, fn)
		walkExp(e.Right, fn)
	case *ir.PackExp:
		for _, f := range e.Fields {
			walkExp(f.Exp, fn)
		}
	case *ir.ExpListExp:
		walkExps(e.Exps, fn)
	case *ir.CastExp:
		walkExp(e.Exp, fn)
	}
}

func walkExps(es []ir.Exp, fn func(ir.Exp)) {
	for _, e := range es {
		walkExp(e, fn)
	}
}
