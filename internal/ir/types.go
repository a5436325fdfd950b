package ir

import (
	"fmt"
	"strings"
)

// Builtin names a builtin type.
type Builtin int

const (
	BuiltinBool Builtin = iota
	BuiltinAddress
	BuiltinU8
	BuiltinU64
	BuiltinU128
	BuiltinSigner
	BuiltinVector
)

var builtinNames = [...]string{
	BuiltinBool:    "bool",
	BuiltinAddress: "address",
	BuiltinU8:      "u8",
	BuiltinU64:     "u64",
	BuiltinU128:    "u128",
	BuiltinSigner:  "signer",
	BuiltinVector:  "vector",
}

func (b Builtin) String() string {
	if b >= 0 && int(b) < len(builtinNames) {
		return builtinNames[b]
	}

	return fmt.Sprintf("Builtin(%d)", int(b))
}

// ParseBuiltin returns the builtin with the given source name.
func ParseBuiltin(s string) (Builtin, bool) {
	for i, n := range builtinNames {
		if n == s {
			return Builtin(i), true
		}
	}

	return 0, false
}

// IsInteger reports whether b is a fixed width unsigned integer.
func (b Builtin) IsInteger() bool {
	return b == BuiltinU8 || b == BuiltinU64 || b == BuiltinU128
}

type (
	// BaseType is a non-reference type.
	BaseType interface {
		Pos() Loc
		String() string
		baseType()
	}

	// BuiltinType is a builtin type application. BuiltinVector has exactly one argument.
	BuiltinType struct {
		Loc  Loc
		Name Builtin
		Args []BaseType
	}

	// StructType refers to a struct, possibly generic.
	StructType struct {
		Loc    Loc
		Module ModuleIdent
		Name   string
		Args   []BaseType
	}

	// TypeParam refers to a type parameter of the enclosing struct or function.
	TypeParam struct {
		Loc  Loc
		Name string
	}

	// SingleType is a base type or a reference to one.
	SingleType struct {
		Loc  Loc
		Ref  bool
		Mut  bool
		Base BaseType
	}

	// Type is the type of an expression or a function result.
	Type interface {
		typeNode()
	}

	// UnitType is the empty tuple.
	UnitType struct{}

	// MultipleType is a tuple of two or more values.
	MultipleType struct {
		Types []*SingleType
	}
)

func (t *BuiltinType) Pos() Loc { return t.Loc }
func (t *StructType) Pos() Loc  { return t.Loc }
func (t *TypeParam) Pos() Loc   { return t.Loc }

func (*BuiltinType) baseType() {}
func (*StructType) baseType()  {}
func (*TypeParam) baseType()   {}

func (*UnitType) typeNode()     {}
func (*SingleType) typeNode()   {}
func (*MultipleType) typeNode() {}

func (t *BuiltinType) String() string {
	if len(t.Args) == 0 {
		return t.Name.String()
	}

	return t.Name.String() + "<" + joinTypes(t.Args) + ">"
}

func (t *StructType) String() string {
	s := t.Module.String() + "::" + t.Name
	if len(t.Args) != 0 {
		s += "<" + joinTypes(t.Args) + ">"
	}

	return s
}

func (t *TypeParam) String() string { return t.Name }

func (t *SingleType) String() string {
	switch {
	case t.Ref && t.Mut:
		return "&mut " + t.Base.String()
	case t.Ref:
		return "&" + t.Base.String()
	default:
		return t.Base.String()
	}
}

func joinTypes(ts []BaseType) string {
	s := make([]string, len(ts))
	for i, t := range ts {
		s[i] = t.String()
	}

	return strings.Join(s, ", ")
}

// Prim returns a builtin type without arguments.
func Prim(b Builtin) *BuiltinType {
	return &BuiltinType{Name: b}
}

// VectorOf returns vector<elem>.
func VectorOf(elem BaseType) *BuiltinType {
	return &BuiltinType{Name: BuiltinVector, Args: []BaseType{elem}}
}

// Base wraps a base type into a non-reference SingleType.
func Base(t BaseType) *SingleType {
	return &SingleType{Loc: t.Pos(), Base: t}
}

// AsBuiltin returns t as a builtin application, if it is one.
func AsBuiltin(t BaseType) (*BuiltinType, bool) {
	b, ok := t.(*BuiltinType)
	return b, ok
}

// IsSigner reports whether t is signer or a reference to signer.
func IsSigner(t *SingleType) bool {
	b, ok := AsBuiltin(t.Base)
	return ok && b.Name == BuiltinSigner
}

// EqualTypes reports whether a and b denote the same base type.
func EqualTypes(a, b BaseType) bool {
	switch a := a.(type) {
	case *BuiltinType:
		b, ok := b.(*BuiltinType)
		return ok && a.Name == b.Name && equalArgs(a.Args, b.Args)
	case *StructType:
		b, ok := b.(*StructType)
		return ok && a.Module == b.Module && a.Name == b.Name && equalArgs(a.Args, b.Args)
	case *TypeParam:
		b, ok := b.(*TypeParam)
		return ok && a.Name == b.Name
	default:
		return false
	}
}

func equalArgs(a, b []BaseType) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !EqualTypes(a[i], b[i]) {
			return false
		}
	}

	return true
}
