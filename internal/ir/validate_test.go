package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validModule() *Module {
	return &Module{
		Ident: ModuleIdent{Address: Address{Name: "std", Hex: "0x1"}, Module: "m"},
		Constants: []*Constant{
			{Name: "E", Type: Prim(BuiltinU64), Value: Block{&Return{Exp: &ValueExp{Kind: BuiltinU64, Lit: "1"}}}},
		},
		Structs: []*Struct{
			{Name: "S", Fields: []Field{{Name: "a", Type: Prim(BuiltinBool)}, {Name: "b", Type: VectorOf(Prim(BuiltinU8))}}},
			{Name: "N", Native: true},
		},
		Functions: []*Function{
			{
				Name:      "f",
				Signature: Signature{Params: []Param{{Name: "x", Type: Base(Prim(BuiltinU64))}}, Return: &UnitType{}},
				Locals:    []Local{{Name: "x", Type: Base(Prim(BuiltinU64))}},
				Body:      Block{&Return{Exp: &UnitExp{}}},
			},
			{
				Name:      "g",
				Native:    true,
				Signature: Signature{Return: &UnitType{}},
			},
		},
	}
}

func TestValidateValidModule(t *testing.T) {
	assert.Empty(t, Validate(validModule()))
}

func TestValidateDuplicateNames(t *testing.T) {
	m := validModule()
	m.Structs = append(m.Structs, &Struct{Name: "S", Native: true})
	m.Functions = append(m.Functions, &Function{Name: "f", Native: true, Signature: Signature{Return: &UnitType{}}})

	errs := Validate(m)
	assert.Contains(t, errs, "duplicate struct name: S")
	assert.Contains(t, errs, "duplicate function name: f")
}

func TestValidateStructs(t *testing.T) {
	m := validModule()
	m.Structs = []*Struct{
		{
			Name:       "S",
			TypeParams: []StructTypeParam{{Name: "T"}, {Name: "T"}},
			Fields: []Field{
				{Name: "a", Type: Prim(BuiltinBool)},
				{Name: "a", Type: &BuiltinType{Name: BuiltinVector}},
			},
		},
	}

	errs := Validate(m)
	assert.Contains(t, errs, "duplicate struct S type parameter name: T")
	assert.Contains(t, errs, "duplicate struct S field name: a")
	assert.Contains(t, errs, "struct S field a: vector takes 1 type arguments, got 0")
}

func TestValidateFunctionBodies(t *testing.T) {
	m := validModule()
	m.Functions[0].Body = Block{
		&IfElse{If: Block{&Return{}}},
		&While{Cond: &UnitExp{}, Body: Block{&Mutate{Exp: &UnitExp{}}}},
	}
	m.Functions[1].Body = Block{&Break{}}

	errs := Validate(m)
	assert.Contains(t, errs, "function f: if without condition")
	assert.Contains(t, errs, "function f: return without value")
	assert.Contains(t, errs, "function f: incomplete mutate")
	assert.Contains(t, errs, "function g is native but has a body")
}
