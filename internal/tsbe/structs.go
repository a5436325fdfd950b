package tsbe

import (
	"fmt"
	"strings"

	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/tsgen"
)

// FieldDecl is one entry of a struct field descriptor table.
type FieldDecl struct {
	Name string
	Tag  Tag
}

// FieldDecls builds the field descriptor table of s.
// Type parameters resolve against the struct's own parameter list.
func FieldDecls(s *ir.Struct) ([]FieldDecl, error) {
	params := make([]string, len(s.TypeParams))
	for i, p := range s.TypeParams {
		params[i] = p.Name
	}

	decls := make([]FieldDecl, 0, len(s.Fields))

	for _, f := range s.Fields {
		tag, err := TypeTag(f.Type, params)
		if err != nil {
			return nil, err
		}

		decls = append(decls, FieldDecl{Name: f.Name, Tag: tag})
	}

	return decls, nil
}

// HasResourceLoader reports whether s gets a static async load method.
func HasResourceLoader(s *ir.Struct) bool {
	return !s.Native && s.Abilities.Has(ir.AbilityKey)
}

// EmitStruct writes the class of struct s.
func EmitStruct(w *tsgen.Writer, c *Context, s *ir.Struct) error {
	c.enterStruct(s)
	defer c.leave()

	name := Rename(s.Name)

	w.Write("export class " + name)

	if len(s.TypeParams) != 0 {
		params := make([]string, len(s.TypeParams))
		for i, p := range s.TypeParams {
			params[i] = Rename(p.Name) + " = any"
		}

		w.Write("<" + strings.Join(params, ", ") + ">")
	}

	w.Write(" ")

	err := w.ShortBlock(func() error {
		w.Writeln("static moduleAddress = moduleAddress;")
		w.Writeln("static moduleName = moduleName;")
		w.Writelnf("static structName: string = %s;", Quote(s.Name))

		writeTable(w, "static typeParameters: TypeParamDeclType[]", s.TypeParams, func(p ir.StructTypeParam) string {
			return fmt.Sprintf("{ name: %s, isPhantom: %t }", Quote(p.Name), p.IsPhantom)
		})

		if s.Native {
			return nil
		}

		return writeStructBody(w, c, s, name)
	})
	if err != nil {
		return err
	}

	w.NewLine()

	return nil
}

func writeStructBody(w *tsgen.Writer, c *Context, s *ir.Struct, name string) error {
	decls, err := FieldDecls(s)
	if err != nil {
		return err
	}

	writeTable(w, "static fields: FieldDeclType[]", decls, func(d FieldDecl) string {
		return fmt.Sprintf("{ name: %s, typeTag: %s }", Quote(Rename(d.Name)), d.Tag.Expr(StructScope))
	})
	w.NewLine()

	types := make([]string, len(s.Fields))

	for i, f := range s.Fields {
		types[i], err = TSType(c, f.Type)
		if err != nil {
			return err
		}

		w.Writelnf("%s: %s;", Rename(f.Name), types[i])
	}

	if len(s.Fields) != 0 {
		w.NewLine()
	}

	w.Write("constructor(proto: any, public typeTag: TypeTag) ")

	err = w.ShortBlock(func() error {
		for i, f := range s.Fields {
			fname := Rename(f.Name)
			w.Writelnf("this.%s = proto['%s'] as %s;", fname, fname, types[i])
		}

		return nil
	})
	if err != nil {
		return err
	}

	w.NewLine()
	w.Writelnf("static %sParser(data:any, typeTag: TypeTag, repo: AptosParserRepo) : %s {", name, name)
	w.Writelnf("  const proto = $.parseStructProto(data, typeTag, repo, %s);", name)
	w.Writelnf("  return new %s(proto, typeTag);", name)
	w.Writeln("}")

	if !HasResourceLoader(s) {
		return nil
	}

	w.NewLine()
	w.Writeln("static async load(repo: AptosParserRepo, client: AptosClient, address: HexString, typeParams: TypeTag[]) {")
	w.Writelnf("  const result = await repo.loadResource(client, address, %s, typeParams);", name)
	w.Writelnf("  return result as unknown as %s;", name)
	w.Writeln("}")

	return nil
}

// writeTable writes a static array initializer, one element per line.
func writeTable[T any](w *tsgen.Writer, decl string, items []T, elem func(T) string) {
	if len(items) == 0 {
		w.Writeln(decl + " = [];")
		return
	}

	w.Writeln(decl + " = [")

	_ = w.Indent(func() error {
		return tsgen.List(w, items, ",", func(item T) error {
			w.Write(elem(item))
			return nil
		})
	})

	w.Writeln("];")
}
