package ir

import (
	"fmt"
)

// Validate checks the structural invariants translation relies on and returns
// a list of error messages. An empty slice indicates the module is valid.
func Validate(mod *Module) []string {
	var errors []string

	errors = append(errors, uniqueNames("constant", len(mod.Constants), func(i int) string { return mod.Constants[i].Name })...)
	errors = append(errors, uniqueNames("struct", len(mod.Structs), func(i int) string { return mod.Structs[i].Name })...)
	errors = append(errors, uniqueNames("function", len(mod.Functions), func(i int) string { return mod.Functions[i].Name })...)

	for _, c := range mod.Constants {
		if c.Type == nil {
			errors = append(errors, fmt.Sprintf("constant %s has nil Type", c.Name))
		}
		if len(c.Value) == 0 {
			errors = append(errors, fmt.Sprintf("constant %s has empty value block", c.Name))
		}
	}

	for _, s := range mod.Structs {
		context := fmt.Sprintf("struct %s", s.Name)

		errors = append(errors, uniqueNames(context+" type parameter", len(s.TypeParams), func(i int) string { return s.TypeParams[i].Name })...)

		if s.Native {
			if len(s.Fields) != 0 {
				errors = append(errors, fmt.Sprintf("%s is native but has fields", context))
			}
			continue
		}

		errors = append(errors, uniqueNames(context+" field", len(s.Fields), func(i int) string { return s.Fields[i].Name })...)

		for _, f := range s.Fields {
			errors = append(errors, validateType(f.Type, fmt.Sprintf("%s field %s", context, f.Name))...)
		}
	}

	for _, fn := range mod.Functions {
		context := fmt.Sprintf("function %s", fn.Name)

		errors = append(errors, uniqueNames(context+" type parameter", len(fn.Signature.TypeParams), func(i int) string { return fn.Signature.TypeParams[i] })...)
		errors = append(errors, uniqueNames(context+" parameter", len(fn.Signature.Params), func(i int) string { return fn.Signature.Params[i].Name })...)

		if fn.Signature.Return == nil {
			errors = append(errors, fmt.Sprintf("%s has nil Return type", context))
		}

		for _, p := range fn.Signature.Params {
			if p.Type == nil {
				errors = append(errors, fmt.Sprintf("%s parameter %s has nil Type", context, p.Name))
				continue
			}

			errors = append(errors, validateType(p.Type.Base, fmt.Sprintf("%s parameter %s", context, p.Name))...)
		}

		if fn.Native {
			if len(fn.Body) != 0 {
				errors = append(errors, fmt.Sprintf("%s is native but has a body", context))
			}
			continue
		}

		errors = append(errors, uniqueNames(context+" local", len(fn.Locals), func(i int) string { return fn.Locals[i].Name })...)
		errors = append(errors, validateBlock(fn.Body, context)...)
	}

	return errors
}

func uniqueNames(what string, n int, name func(i int) string) []string {
	var errors []string
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		nm := name(i)

		if nm == "" {
			errors = append(errors, fmt.Sprintf("%s %d has empty name", what, i))
			continue
		}

		if seen[nm] {
			errors = append(errors, fmt.Sprintf("duplicate %s name: %s", what, nm))
		}
		seen[nm] = true
	}

	return errors
}

// validateType checks builtin arities.
func validateType(t BaseType, context string) []string {
	switch t := t.(type) {
	case nil:
		return []string{fmt.Sprintf("%s: nil type", context)}
	case *BuiltinType:
		var errors []string

		if want := builtinArity(t.Name); len(t.Args) != want {
			errors = append(errors, fmt.Sprintf("%s: %s takes %d type arguments, got %d", context, t.Name, want, len(t.Args)))
		}

		for _, a := range t.Args {
			errors = append(errors, validateType(a, context)...)
		}

		return errors
	case *StructType:
		var errors []string

		for _, a := range t.Args {
			errors = append(errors, validateType(a, context)...)
		}

		return errors
	default:
		return nil
	}
}

func builtinArity(b Builtin) int {
	if b == BuiltinVector {
		return 1
	}

	return 0
}

// validateBlock checks that statements carry the expressions they need.
func validateBlock(b Block, context string) []string {
	var errors []string

	for _, s := range b {
		switch s := s.(type) {
		case *IfElse:
			if s.Cond == nil {
				errors = append(errors, fmt.Sprintf("%s: if without condition", context))
			}
			errors = append(errors, validateBlock(s.If, context)...)
			errors = append(errors, validateBlock(s.Else, context)...)
		case *While:
			if s.Cond == nil {
				errors = append(errors, fmt.Sprintf("%s: while without condition", context))
			}
			errors = append(errors, validateBlock(s.Pre, context)...)
			errors = append(errors, validateBlock(s.Body, context)...)
		case *Loop:
			errors = append(errors, validateBlock(s.Body, context)...)
		case *Assign:
			if s.Exp == nil {
				errors = append(errors, fmt.Sprintf("%s: assign without value", context))
			}
		case *Mutate:
			if s.Target == nil || s.Exp == nil {
				errors = append(errors, fmt.Sprintf("%s: incomplete mutate", context))
			}
		case *Return:
			if s.Exp == nil {
				errors = append(errors, fmt.Sprintf("%s: return without value", context))
			}
		}
	}

	return errors
}
