package tsbe

import (
	"strings"

	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
)

var atomicTypes = map[ir.Builtin]string{
	ir.BuiltinBool:    "boolean",
	ir.BuiltinAddress: "HexString",
	ir.BuiltinU8:      "U8",
	ir.BuiltinU64:     "U64",
	ir.BuiltinU128:    "U128",
	ir.BuiltinSigner:  "HexString",
}

// TSType returns the TypeScript type of t.
// Struct references record the imports they need in c.
func TSType(c *Context, t ir.BaseType) (string, error) {
	switch t := t.(type) {
	case *ir.BuiltinType:
		if t.Name == ir.BuiltinVector {
			if len(t.Args) != 1 {
				return "", diagnostic.Internalf("vector with %d type arguments", len(t.Args))
			}

			elem, err := TSType(c, t.Args[0])
			if err != nil {
				return "", err
			}

			return elem + "[]", nil
		}

		name, ok := atomicTypes[t.Name]
		if !ok {
			return "", diagnostic.Internalf("unexpected builtin %v", t.Name)
		}

		return name, nil
	case *ir.StructType:
		name := c.Qualifier(t.Module) + Rename(t.Name)

		if len(t.Args) == 0 {
			return name, nil
		}

		args, err := tsTypes(c, t.Args)
		if err != nil {
			return "", err
		}

		return name + "<" + strings.Join(args, ", ") + ">", nil
	case *ir.TypeParam:
		if c.inStruct() {
			return Rename(t.Name), nil
		}

		return "any", nil
	default:
		return "", diagnostic.Internalf("unexpected type %T", t)
	}
}

// SingleTSType maps a possibly reference type. References erase to their target.
func SingleTSType(c *Context, t *ir.SingleType) (string, error) {
	return TSType(c, t.Base)
}

// ReturnTSType maps a function return type: void for unit, a tuple for several values.
func ReturnTSType(c *Context, t ir.Type) (string, error) {
	switch t := t.(type) {
	case nil, *ir.UnitType:
		return "void", nil
	case *ir.SingleType:
		return SingleTSType(c, t)
	case *ir.MultipleType:
		ts := make([]string, len(t.Types))

		for i, st := range t.Types {
			s, err := SingleTSType(c, st)
			if err != nil {
				return "", err
			}

			ts[i] = s
		}

		return "[" + strings.Join(ts, ", ") + "]", nil
	default:
		return "", diagnostic.Internalf("unexpected type %T", t)
	}
}

// ConstantType maps the type of a module constant.
// Only atomic types and vectors of them have a representation without generic context.
func ConstantType(t ir.BaseType) (string, error) {
	b, ok := ir.AsBuiltin(t)
	if ok && b.Name == ir.BuiltinVector && len(b.Args) == 1 {
		elem, ok := ir.AsBuiltin(b.Args[0])
		if ok && isAtomic(elem) {
			return atomicTypes[elem.Name] + "[]", nil
		}
	}

	if ok && isAtomic(b) {
		return atomicTypes[b.Name], nil
	}

	l := t.Pos()

	return "", diagnostic.Errorf(l.File, l.Line, l.Column, "unsupported constant type %v", t)
}

func isAtomic(b *ir.BuiltinType) bool {
	return b.Name != ir.BuiltinVector && b.Name != ir.BuiltinSigner
}

func tsTypes(c *Context, ts []ir.BaseType) ([]string, error) {
	r := make([]string, len(ts))

	for i, t := range ts {
		s, err := TSType(c, t)
		if err != nil {
			return nil, err
		}

		r[i] = s
	}

	return r, nil
}
