package tsbe

import (
	"fmt"
	"strings"

	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
)

type (
	// Tag is a runtime type tag: an expression constructing a type
	// descriptor at run time, where generics are erased.
	Tag interface {
		// Expr renders the TypeScript expression building the tag.
		Expr(s Scope) string
		// BaseType is the type the tag describes.
		BaseType() ir.BaseType

		tag()
	}

	AtomicTag struct {
		Builtin ir.Builtin
	}

	VectorTag struct {
		Elem Tag
	}

	StructTag struct {
		Module ir.ModuleIdent
		Name   string
		Args   []Tag
	}

	// ParamTag refers to a type argument by its position
	// in the enclosing type parameter list.
	ParamTag struct {
		Index int
		Name  string
	}

	// Scope is where a tag expression is evaluated.
	Scope int
)

const (
	// StructScope resolves type parameters against the struct descriptor.
	StructScope Scope = iota
	// FunctionScope resolves type parameters against the $p argument.
	FunctionScope
)

var atomicTagNames = map[ir.Builtin]string{
	ir.BuiltinBool:    "Bool",
	ir.BuiltinAddress: "Address",
	ir.BuiltinU8:      "U8",
	ir.BuiltinU64:     "U64",
	ir.BuiltinU128:    "U128",
}

func (*AtomicTag) tag() {}
func (*VectorTag) tag() {}
func (*StructTag) tag() {}
func (*ParamTag) tag()  {}

func (t *AtomicTag) Expr(Scope) string {
	return "AtomicTypeTag." + atomicTagNames[t.Builtin]
}

func (t *VectorTag) Expr(s Scope) string {
	return "new VectorTag(" + t.Elem.Expr(s) + ")"
}

func (t *StructTag) Expr(s Scope) string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Expr(s)
	}

	return fmt.Sprintf("new StructTag(new HexString(%s), %s, %s, [%s])",
		Quote(t.Module.Address.Hex), Quote(t.Module.Module), Quote(t.Name), strings.Join(args, ", "))
}

func (t *ParamTag) Expr(s Scope) string {
	if s == StructScope {
		return fmt.Sprintf("new $.TypeParamIdx(%d)", t.Index)
	}

	return fmt.Sprintf("$p[%d]", t.Index)
}

func (t *AtomicTag) BaseType() ir.BaseType {
	return ir.Prim(t.Builtin)
}

func (t *VectorTag) BaseType() ir.BaseType {
	return ir.VectorOf(t.Elem.BaseType())
}

func (t *StructTag) BaseType() ir.BaseType {
	args := make([]ir.BaseType, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.BaseType()
	}

	if len(args) == 0 {
		args = nil
	}

	return &ir.StructType{Module: t.Module, Name: t.Name, Args: args}
}

func (t *ParamTag) BaseType() ir.BaseType {
	return &ir.TypeParam{Name: t.Name}
}

// TypeTag builds the runtime tag of t.
// Type parameters are resolved to their position in params.
func TypeTag(t ir.BaseType, params []string) (Tag, error) {
	switch t := t.(type) {
	case *ir.BuiltinType:
		switch t.Name {
		case ir.BuiltinSigner:
			l := t.Pos()
			return nil, diagnostic.Errorf(l.File, l.Line, l.Column, "signer has no runtime type tag")
		case ir.BuiltinVector:
			if len(t.Args) != 1 {
				return nil, diagnostic.Internalf("vector with %d type arguments", len(t.Args))
			}

			elem, err := TypeTag(t.Args[0], params)
			if err != nil {
				return nil, err
			}

			return &VectorTag{Elem: elem}, nil
		default:
			return &AtomicTag{Builtin: t.Name}, nil
		}
	case *ir.StructType:
		tag := &StructTag{Module: t.Module, Name: t.Name}

		for _, a := range t.Args {
			at, err := TypeTag(a, params)
			if err != nil {
				return nil, err
			}

			tag.Args = append(tag.Args, at)
		}

		return tag, nil
	case *ir.TypeParam:
		for i, p := range params {
			if p == t.Name {
				return &ParamTag{Index: i, Name: t.Name}, nil
			}
		}

		return nil, diagnostic.Internalf("type parameter %s is not in scope", t.Name)
	default:
		return nil, diagnostic.Internalf("unexpected type %T", t)
	}
}

// typeTagExpr builds and renders the tag of t in the current context.
func typeTagExpr(c *Context, t ir.BaseType) (string, error) {
	tag, err := TypeTag(t, c.tagParams())
	if err != nil {
		return "", err
	}

	return tag.Expr(c.tagScope()), nil
}

// typeTagList renders tags of ts as a TypeScript array.
func typeTagList(c *Context, ts []ir.BaseType) (string, error) {
	tags := make([]string, len(ts))

	for i, t := range ts {
		s, err := typeTagExpr(c, t)
		if err != nil {
			return "", err
		}

		tags[i] = s
	}

	return "[" + strings.Join(tags, ", ") + "]", nil
}
