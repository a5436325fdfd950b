package tsbe

import (
	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/tsgen"
)

const intToPayload = "u => u.toPayloadArg()"

// EmitPayloadBuilder writes buildPayload_<name> for entry function f.
// Signer parameters are supplied by the executing account and left out.
func EmitPayloadBuilder(w *tsgen.Writer, c *Context, f *ir.Function) error {
	var params []ir.Param

	for _, p := range f.Signature.Params {
		if !ir.IsSigner(p.Type) {
			params = append(params, p)
		}
	}

	args := make([]string, len(params))

	for i, p := range params {
		a, err := PayloadArg(Rename(p.Name), p.Type)
		if err != nil {
			return err
		}

		args[i] = a
	}

	w.Writelnf("export function buildPayload_%s (", Rename(f.Name))

	err := w.Indent(func() error {
		if err := writeParams(w, c, params); err != nil {
			return err
		}

		writeTypeParamsArg(w, f)

		return nil
	})
	if err != nil {
		return err
	}

	w.Write(") ")

	err = w.ShortBlock(func() error {
		if len(f.Signature.TypeParams) != 0 {
			w.Writeln("const typeParamStrings = $p.map(t=>$.getTypeTagFullname(t));")
		} else {
			w.Writeln("const typeParamStrings = [] as string[];")
		}

		w.Writeln("return $.buildPayload(")

		err := w.Indent(func() error {
			w.Writelnf("%s,", Quote(c.Module.Address.Hex+"::"+c.Module.Module+"::"+f.Name))
			w.Writeln("typeParamStrings,")

			if len(args) == 0 {
				w.Writeln("[]")
				return nil
			}

			w.Writeln("[")

			err := w.Indent(func() error {
				for _, a := range args {
					w.Writeln(a + ",")
				}

				return nil
			})

			w.Writeln("]")

			return err
		})

		w.Writeln(");")

		return err
	})
	if err != nil {
		return err
	}

	w.NewLine()

	return nil
}

// PayloadArg converts parameter name of type t into a transaction argument.
// Integers are converted with toPayloadArg, vectors element-wise at any depth.
func PayloadArg(name string, t *ir.SingleType) (string, error) {
	if ir.IsSigner(t) {
		return "", diagnostic.Internalf("signer parameter %s reached payload conversion", name)
	}

	b, ok := ir.AsBuiltin(t.Base)
	if !ok {
		l := t.Base.Pos()
		return "", errorf(l, "type %v is not supported as a script function parameter", t.Base)
	}

	switch {
	case b.Name == ir.BuiltinBool, b.Name == ir.BuiltinAddress:
		return name, nil
	case b.Name.IsInteger():
		return name + ".toPayloadArg()", nil
	}

	if len(b.Args) != 1 {
		return "", diagnostic.Internalf("vector with %d type arguments", len(b.Args))
	}

	mapper, err := elemMapper(b.Args[0])
	if err != nil {
		return "", err
	}

	if mapper == "" {
		return name, nil
	}

	return name + ".map(" + mapper + ")", nil
}

// elemMapper returns the function converting one vector element,
// or "" if elements pass through unchanged.
func elemMapper(t ir.BaseType) (string, error) {
	b, ok := ir.AsBuiltin(t)
	if !ok || b.Name == ir.BuiltinSigner {
		l := t.Pos()
		return "", errorf(l, "vector of %v is not supported as a script function parameter", t)
	}

	switch {
	case b.Name == ir.BuiltinBool, b.Name == ir.BuiltinAddress:
		return "", nil
	case b.Name.IsInteger():
		return intToPayload, nil
	}

	if len(b.Args) != 1 {
		return "", diagnostic.Internalf("vector with %d type arguments", len(b.Args))
	}

	inner, err := elemMapper(b.Args[0])
	if err != nil || inner == "" {
		return "", err
	}

	return "array => array.map(" + inner + ")", nil
}
