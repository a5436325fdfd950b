package ir

import "fmt"

// Loc is a position in the source the IR was produced from.
type Loc struct {
	File   string
	Line   int
	Column int
}

// Address is a named account address.
// Name doubles as the package directory of generated code.
type Address struct {
	Name string
	Hex  string
}

// ModuleIdent identifies a module by address and name.
type ModuleIdent struct {
	Address Address
	Module  string
}

func (id ModuleIdent) String() string {
	return fmt.Sprintf("%s::%s", id.Address.Name, id.Module)
}

// Module is a single lowered module, the unit of translation.
type Module struct {
	Ident   ModuleIdent
	Package string
	File    string // document the module was loaded from
	Deps    []ModuleIdent

	Constants []*Constant
	Structs   []*Struct
	Functions []*Function
}

// Constant is a module-level constant. Value is a block whose
// returned value is the constant.
type Constant struct {
	Loc   Loc
	Name  string
	Type  BaseType
	Value Block
}

// Ability is a capability flag of a struct.
type Ability uint8

const (
	AbilityCopy Ability = 1 << iota
	AbilityDrop
	AbilityStore
	AbilityKey
)

// Abilities is a set of Ability flags.
type Abilities uint8

// Has reports whether a is in the set.
func (s Abilities) Has(a Ability) bool {
	return s&Abilities(a) != 0
}

// With returns the set extended with a.
func (s Abilities) With(a Ability) Abilities {
	return s | Abilities(a)
}

// StructTypeParam is a declared struct type parameter.
type StructTypeParam struct {
	Name      string
	IsPhantom bool
}

// Field is a named struct field.
type Field struct {
	Name string
	Type BaseType
}

// Struct is a struct definition. Native structs have no visible fields.
type Struct struct {
	Loc        Loc
	Name       string
	Abilities  Abilities
	TypeParams []StructTypeParam
	Native     bool
	Fields     []Field
}

// Visibility is a declared function visibility.
type Visibility int

const (
	Internal Visibility = iota
	Public
	Friend
	Script
)

func (v Visibility) String() string {
	switch v {
	case Internal:
		return "internal"
	case Public:
		return "public"
	case Friend:
		return "friend"
	case Script:
		return "script"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// Param is a named function parameter.
type Param struct {
	Name string
	Type *SingleType
}

// Signature is a function signature.
type Signature struct {
	TypeParams []string
	Params     []Param
	Return     Type
}

// Local is a declared local variable of a function body.
type Local struct {
	Name string
	Type *SingleType
}

// Function is a function definition.
// Native functions have neither Locals nor Body.
type Function struct {
	Loc        Loc
	Name       string
	Visibility Visibility
	IsTest     bool
	Signature  Signature
	Native     bool
	Locals     []Local
	Body       Block
}

// IsEntry reports whether the function can be called as a transaction.
func (f *Function) IsEntry() bool {
	return f.Visibility == Script
}
