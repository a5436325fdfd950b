package tsbe

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/tsgen"
)

// OutputPath is the file a module is written to, relative to the output root.
func OutputPath(id ir.ModuleIdent) string {
	return path.Join(id.Address.Name, id.Module+".ts")
}

// TranslateModule translates mod into a TypeScript file.
// It returns the output path and the file content.
// The first diagnostic aborts the module.
func TranslateModule(mod *ir.Module, opts Options, eval Evaluator) (string, string, error) {
	c := NewContext(mod, opts, eval)

	var w tsgen.Writer

	if err := EmitModule(&w, c, mod); err != nil {
		return "", "", err
	}

	var b strings.Builder

	for _, l := range header(c) {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	b.WriteString(w.String())

	return OutputPath(mod.Ident), b.String(), nil
}

// header are the import lines. It is built after the body
// so the import sets are complete.
func header(c *Context) []string {
	rt, cl := Quote(c.opts.RuntimePackage), Quote(c.opts.ClientPackage)

	lines := []string{
		"import * as $ from " + rt + ";",
		"import {AptosDataCache, AptosParserRepo} from " + rt + ";",
		"import {U8, U64, U128} from " + rt + ";",
		"import {u8, u64, u128} from " + rt + ";",
		"import {TypeParamDeclType, FieldDeclType} from " + rt + ";",
		"import {AtomicTypeTag, StructTag, TypeTag, VectorTag} from " + rt + ";",
		"import {HexString, AptosClient} from " + cl + ";",
	}

	for _, p := range c.PackageImports() {
		lines = append(lines, fmt.Sprintf("import * as %s from %s;", ImportName(p), Quote("../"+p)))
	}

	for _, m := range c.SamePackageImports() {
		lines = append(lines, fmt.Sprintf("import * as %s from %s;", ImportName(m), Quote("./"+m)))
	}

	return lines
}

// EmitModule writes the module body: metadata, constants, structs, functions
// and the parser registration.
func EmitModule(w *tsgen.Writer, c *Context, mod *ir.Module) error {
	w.ExportConst("packageName", Quote(mod.Package))
	w.ExportConst("moduleAddress", "new HexString("+Quote(mod.Ident.Address.Hex)+")")
	w.ExportConst("moduleName", Quote(mod.Ident.Module))
	w.NewLine()

	for _, k := range mod.Constants {
		if err := EmitConstant(w, c, k); err != nil {
			return err
		}
	}

	w.NewLine()

	for _, s := range mod.Structs {
		if err := EmitStruct(w, c, s); err != nil {
			return err
		}
	}

	for _, f := range mod.Functions {
		if err := EmitFunction(w, c, f); err != nil {
			return err
		}
	}

	writeLoadParsers(w, mod)

	return nil
}

// EmitConstant writes a module constant. A value block that is a single return
// becomes a plain expression, anything else an immediately invoked closure.
func EmitConstant(w *tsgen.Writer, c *Context, k *ir.Constant) error {
	typ, err := ConstantType(k.Type)
	if err != nil {
		return err
	}

	w.Writef("export const %s : %s = ", Rename(k.Name), typ)

	if len(k.Value) == 1 {
		if r, ok := k.Value[0].(*ir.Return); ok {
			v, err := c.Term(r.Exp)
			if err != nil {
				return err
			}

			w.Writeln(v + ";")

			return nil
		}
	}

	w.Writeln("( () => {")

	err = w.Indent(func() error {
		return writeStatements(w, c, k.Value)
	})
	if err != nil {
		return err
	}

	w.Writeln("})();")

	return nil
}

func writeLoadParsers(w *tsgen.Writer, mod *ir.Module) {
	w.Write("export function loadParsers(repo:AptosParserRepo) ")

	_ = w.ShortBlock(func() error {
		for _, s := range mod.Structs {
			if s.Native {
				continue
			}

			name := Rename(s.Name)
			full := mod.Ident.Address.Hex + "::" + mod.Ident.Module + "::" + s.Name

			w.Writelnf("repo.addParser(%s, %s.%sParser);", Quote(full), name, name)
		}

		return nil
	})

	w.NewLine()
}

// PackageIndex renders index.ts of a package directory
// re-exporting its modules.
func PackageIndex(modules []string) string {
	sorted := append([]string(nil), modules...)
	sort.Strings(sorted)

	var b strings.Builder

	for _, m := range sorted {
		fmt.Fprintf(&b, "export * as %s from %s;\n", ImportName(m), Quote("./"+m))
	}

	return b.String()
}
