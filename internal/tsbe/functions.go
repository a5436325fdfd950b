package tsbe

import (
	"fmt"
	"strings"

	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/tsgen"
)

// EmitFunction writes function f and, for entry functions, its payload builder.
// Every function is exported whatever its visibility.
func EmitFunction(w *tsgen.Writer, c *Context, f *ir.Function) error {
	c.enterFunction(f)
	defer c.leave()

	if c.opts.Test && f.IsTest {
		w.Writeln("// test func")
	}

	w.Writelnf("export function %s$ (", Rename(f.Name))

	err := w.Indent(func() error {
		if err := writeParams(w, c, f.Signature.Params); err != nil {
			return err
		}

		w.Writeln("$c: AptosDataCache,")
		writeTypeParamsArg(w, f)

		return nil
	})
	if err != nil {
		return err
	}

	ret, err := ReturnTSType(c, f.Signature.Return)
	if err != nil {
		return err
	}

	w.Write("): " + ret + " ")

	if f.Native {
		err = w.ShortBlock(func() error {
			w.Writeln(nativeCall(c, f))
			return nil
		})
	} else {
		err = writeBody(w, c, f)
	}
	if err != nil {
		return err
	}

	w.NewLine()

	if !f.IsEntry() {
		return nil
	}

	return EmitPayloadBuilder(w, c, f)
}

func writeParams(w *tsgen.Writer, c *Context, params []ir.Param) error {
	for _, p := range params {
		t, err := SingleTSType(c, p.Type)
		if err != nil {
			return err
		}

		w.Writelnf("%s: %s,", Rename(p.Name), t)
	}

	return nil
}

func writeTypeParamsArg(w *tsgen.Writer, f *ir.Function) {
	if len(f.Signature.TypeParams) == 0 {
		return
	}

	w.Writelnf("$p: TypeTag[], /* <%s>*/", strings.Join(f.Signature.TypeParams, ", "))
}

// nativeCall forwards to the runtime implementation named after
// the address, module and function.
func nativeCall(c *Context, f *ir.Function) string {
	args := make([]string, 0, len(f.Signature.Params)+2)

	for _, p := range f.Signature.Params {
		args = append(args, Rename(p.Name))
	}

	args = append(args, "$c")

	if n := len(f.Signature.TypeParams); n != 0 {
		tags := make([]string, n)
		for i := range tags {
			tags[i] = fmt.Sprintf("$p[%d]", i)
		}

		args = append(args, "["+strings.Join(tags, ", ")+"]")
	}

	return fmt.Sprintf("return $.%s_%s_%s(%s);", c.Module.Address.Name, c.Module.Module, f.Name, strings.Join(args, ", "))
}

func writeBody(w *tsgen.Writer, c *Context, f *ir.Function) error {
	params := make(map[string]bool, len(f.Signature.Params))
	for _, p := range f.Signature.Params {
		params[p.Name] = true
	}

	var locals []string

	for _, l := range f.Locals {
		if !params[l.Name] {
			locals = append(locals, l.Name)
		}
	}

	return w.ShortBlock(func() error {
		if hoisted := Undeclared(f.Body, locals); len(hoisted) != 0 {
			for i, n := range hoisted {
				hoisted[i] = Rename(n)
			}

			w.Writeln("let " + strings.Join(hoisted, ", ") + ";")
		}

		return writeStatements(w, c, f.Body)
	})
}
