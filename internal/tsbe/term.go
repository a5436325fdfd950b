package tsbe

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
)

type (
	// Evaluator renders an expression as an inline TypeScript expression.
	Evaluator interface {
		Term(c *Context, e ir.Exp) (string, error)
	}

	// DefaultEvaluator targets the move-to-ts runtime library.
	DefaultEvaluator struct{}
)

// methodOps are integer operators implemented as wrapper methods.
var methodOps = map[string]string{
	"+":  "add",
	"-":  "sub",
	"*":  "mul",
	"/":  "div",
	"%":  "mod",
	"&":  "and",
	"|":  "or",
	"^":  "xor",
	"<<": "shl",
	">>": "shr",
	"<":  "lt",
	"<=": "le",
	">":  "gt",
	">=": "ge",
}

var storageCalls = map[ir.BuiltinFunc]string{
	ir.MoveTo:          "move_to",
	ir.MoveFrom:        "move_from",
	ir.BorrowGlobal:    "borrow_global",
	ir.BorrowGlobalMut: "borrow_global_mut",
	ir.Exists:          "exists",
}

func (ev DefaultEvaluator) Term(c *Context, e ir.Exp) (string, error) {
	switch e := e.(type) {
	case *ir.UnitExp:
		return "", nil
	case *ir.ValueExp:
		return ev.value(e)
	case *ir.MoveExp:
		return Rename(e.Name), nil
	case *ir.CopyExp:
		return "$.copy(" + Rename(e.Name) + ")", nil
	case *ir.BorrowLocalExp:
		return Rename(e.Name), nil
	case *ir.ConstantExp:
		return Rename(e.Name), nil
	case *ir.ModuleCallExp:
		args, err := ev.terms(c, e.Args)
		if err != nil {
			return "", err
		}

		args = append(args, "$c")

		if len(e.TypeArgs) != 0 {
			tags, err := typeTagList(c, e.TypeArgs)
			if err != nil {
				return "", err
			}

			args = append(args, tags)
		}

		return c.Qualifier(e.Module) + Rename(e.Name) + "$(" + strings.Join(args, ", ") + ")", nil
	case *ir.BuiltinCallExp:
		return ev.builtinCall(c, e)
	case *ir.VectorExp:
		elems, err := ev.terms(c, e.Elems)
		if err != nil {
			return "", err
		}

		return "[" + strings.Join(elems, ", ") + "]", nil
	case *ir.DereferenceExp:
		inner, err := ev.Term(c, e.Exp)
		if err != nil {
			return "", err
		}

		return "$.copy(" + inner + ")", nil
	case *ir.BorrowExp:
		inner, err := ev.Term(c, e.Exp)
		if err != nil {
			return "", err
		}

		return inner + "." + Rename(e.Field), nil
	case *ir.UnaryExp:
		if e.Op != "!" {
			return "", errorf(e.Loc, "unsupported unary operator %q", e.Op)
		}

		inner, err := ev.Term(c, e.Exp)
		if err != nil {
			return "", err
		}

		return "!(" + inner + ")", nil
	case *ir.BinopExp:
		return ev.binop(c, e)
	case *ir.PackExp:
		var fields []string

		for _, f := range e.Fields {
			v, err := ev.Term(c, f.Exp)
			if err != nil {
				return "", err
			}

			fields = append(fields, Rename(f.Name)+": "+v)
		}

		tag, err := typeTagExpr(c, e.Struct)
		if err != nil {
			return "", err
		}

		proto := "{ }"
		if len(fields) != 0 {
			proto = "{ " + strings.Join(fields, ", ") + " }"
		}

		return fmt.Sprintf("new %s%s(%s, %s)", c.Qualifier(e.Struct.Module), Rename(e.Struct.Name), proto, tag), nil
	case *ir.ExpListExp:
		vals, err := ev.terms(c, e.Exps)
		if err != nil {
			return "", err
		}

		return "[" + strings.Join(vals, ", ") + "]", nil
	case *ir.CastExp:
		inner, err := ev.Term(c, e.Exp)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%v(%s)", e.To, inner), nil
	default:
		return "", diagnostic.Internalf("unexpected expression %T", e)
	}
}

func (ev DefaultEvaluator) value(e *ir.ValueExp) (string, error) {
	switch e.Kind {
	case ir.BuiltinBool:
		if e.Lit != "true" && e.Lit != "false" {
			return "", errorf(e.Loc, "bad bool literal %q", e.Lit)
		}

		return e.Lit, nil
	case ir.BuiltinU8, ir.BuiltinU64, ir.BuiltinU128:
		return fmt.Sprintf("%v(%s)", e.Kind, Quote(e.Lit)), nil
	case ir.BuiltinAddress:
		return "new HexString(" + Quote(e.Lit) + ")", nil
	case ir.BuiltinVector:
		data, err := hex.DecodeString(strings.TrimPrefix(e.Lit, "0x"))
		if err != nil {
			return "", errorf(e.Loc, "bad byte string literal %q", e.Lit)
		}

		bytes := make([]string, len(data))
		for i, b := range data {
			bytes[i] = fmt.Sprintf("u8(\"%d\")", b)
		}

		return "[" + strings.Join(bytes, ", ") + "]", nil
	default:
		return "", errorf(e.Loc, "unsupported literal of type %v", e.Kind)
	}
}

func (ev DefaultEvaluator) builtinCall(c *Context, e *ir.BuiltinCallExp) (string, error) {
	args, err := ev.terms(c, e.Args)
	if err != nil {
		return "", err
	}

	if e.Func == ir.Freeze {
		if len(args) != 1 {
			return "", diagnostic.Internalf("freeze with %d arguments", len(args))
		}

		return args[0], nil
	}

	if e.TypeArg == nil {
		return "", errorf(e.Loc, "%v needs a type argument", e.Func)
	}

	tag, err := typeTagExpr(c, e.TypeArg)
	if err != nil {
		return "", err
	}

	call := storageCalls[e.Func]

	if e.Func == ir.MoveFrom || e.Func == ir.BorrowGlobal || e.Func == ir.BorrowGlobalMut {
		ts, err := TSType(c, e.TypeArg)
		if err != nil {
			return "", err
		}

		call += "<" + ts + ">"
	}

	return "$c." + call + "(" + strings.Join(append([]string{tag}, args...), ", ") + ")", nil
}

func (ev DefaultEvaluator) binop(c *Context, e *ir.BinopExp) (string, error) {
	l, err := ev.Term(c, e.Left)
	if err != nil {
		return "", err
	}

	r, err := ev.Term(c, e.Right)
	if err != nil {
		return "", err
	}

	switch e.Op {
	case "==":
		return "$.deep_eq(" + l + ", " + r + ")", nil
	case "!=":
		return "!$.deep_eq(" + l + ", " + r + ")", nil
	case "&&", "||":
		return "(" + l + ") " + e.Op + " (" + r + ")", nil
	}

	m, ok := methodOps[e.Op]
	if !ok {
		return "", errorf(e.Loc, "unsupported binary operator %q", e.Op)
	}

	return "(" + l + ")." + m + "(" + r + ")", nil
}

func (ev DefaultEvaluator) terms(c *Context, es []ir.Exp) ([]string, error) {
	r := make([]string, 0, len(es))

	for _, e := range es {
		s, err := ev.Term(c, e)
		if err != nil {
			return nil, err
		}

		r = append(r, s)
	}

	return r, nil
}

func errorf(l ir.Loc, format string, args ...interface{}) error {
	return diagnostic.Errorf(l.File, l.Line, l.Column, format, args...)
}
