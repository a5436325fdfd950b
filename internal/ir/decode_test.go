package ir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/movingco/move-to-ts/internal/diagnostic"
)

const coinDoc = `
file: sources/coin.move
addresses:
  aptos_framework: "0x1"
  std: "0x1"
address: aptos_framework
module: coin
package: AptosFramework
deps: ["std::signer", "std::vector"]

constants:
  - name: ECOIN_INFO_NOT_PUBLISHED
    line: 12
    type: u64
    value:
      - kind: return
        exp: {kind: value, type: u64, lit: "2"}

structs:
  - name: Coin
    abilities: [store, key]
    type_params: [{name: CoinType, phantom: true}]
    fields:
      - {name: value, type: u64}
  - name: Tag
    native: true

functions:
  - name: transfer
    line: 40
    col: 5
    visibility: script
    type_params: [CoinType]
    params:
      - {name: from, type: "&signer"}
      - {name: amounts, type: "vector<vector<u64>>"}
    locals:
      - {name: from, type: "&signer"}
      - {name: amounts, type: "vector<vector<u64>>"}
      - {name: v, type: u64}
    body:
      - kind: assign
        lvalues:
          - kind: unpack
            struct: "aptos_framework::coin::Coin<CoinType>"
            fields:
              - {name: value, lvalue: {kind: var, name: v}}
        exp: {kind: call, module: "aptos_framework::coin", name: zero, type_args: [CoinType], type: "aptos_framework::coin::Coin<CoinType>"}
      - kind: while
        pre:
          - kind: pop
            exp: {kind: unit}
        cond: {kind: value, type: bool, lit: "true"}
        body:
          - {kind: break}
      - kind: return
`

func TestDecodeModule(t *testing.T) {
	m, err := Decode("coin.yaml", []byte(coinDoc))
	require.NoError(t, err)

	assert.Equal(t, "aptos_framework::coin", m.Ident.String())
	assert.Equal(t, "0x1", m.Ident.Address.Hex)
	assert.Equal(t, "AptosFramework", m.Package)
	assert.Equal(t, "sources/coin.move", m.File)
	require.Len(t, m.Deps, 2)
	assert.Equal(t, "std::vector", m.Deps[1].String())

	require.Len(t, m.Constants, 1)
	c := m.Constants[0]
	assert.Equal(t, 12, c.Loc.Line)
	assert.Equal(t, "u64", c.Type.String())
	require.Len(t, c.Value, 1)
	ret, ok := c.Value[0].(*Return)
	require.True(t, ok)
	assert.Equal(t, "2", ret.Exp.(*ValueExp).Lit)
	assert.Equal(t, BuiltinU64, ret.Exp.(*ValueExp).Kind)

	require.Len(t, m.Structs, 2)
	coin := m.Structs[0]
	assert.True(t, coin.Abilities.Has(AbilityKey))
	assert.True(t, coin.Abilities.Has(AbilityStore))
	assert.False(t, coin.Abilities.Has(AbilityCopy))
	assert.Equal(t, []StructTypeParam{{Name: "CoinType", IsPhantom: true}}, coin.TypeParams)
	assert.True(t, m.Structs[1].Native)

	require.Len(t, m.Functions, 1)
	f := m.Functions[0]
	assert.True(t, f.IsEntry())
	assert.Equal(t, Loc{File: "sources/coin.move", Line: 40, Column: 5}, f.Loc)
	assert.True(t, IsSigner(f.Signature.Params[0].Type))
	assert.True(t, f.Signature.Params[0].Type.Ref)
	assert.Equal(t, "vector<vector<u64>>", f.Signature.Params[1].Type.String())
	assert.IsType(t, &UnitType{}, f.Signature.Return)

	require.Len(t, f.Body, 3)
	assign := f.Body[0].(*Assign)
	unpack := assign.LValues[0].(*UnpackLValue)
	assert.Equal(t, "aptos_framework::coin::Coin<CoinType>", unpack.Struct.String())
	assert.Equal(t, "v", unpack.Fields[0].LValue.(*VarLValue).Name)

	w := f.Body[1].(*While)
	assert.Len(t, w.Pre, 1)
	assert.IsType(t, &Break{}, w.Body[0])

	assert.True(t, IsUnit(f.Body[2].(*Return).Exp))
}

func TestDecodeErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"no address":   "module: m\n",
		"bad kind":     "address: a\nmodule: m\nfunctions: [{name: f, body: [{kind: goto}]}]\n",
		"bad ability":  "address: a\nmodule: m\nstructs: [{name: S, abilities: [fly]}]\n",
		"bad type":     "address: a\nmodule: m\nconstants: [{name: C, type: \"vector<u8\", value: []}]\n",
		"vector arity": "address: a\nmodule: m\nconstants: [{name: C, type: \"vector\", value: []}]\n",
		"bad yaml":     "address: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode("doc.yaml", []byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeErrorLocation(t *testing.T) {
	doc := "address: a\nmodule: m\nfunctions: [{name: f, body: [{kind: goto, line: 7, col: 3}]}]\n"

	_, err := Decode("doc.yaml", []byte(doc))
	require.Error(t, err)

	var derr *diagnostic.TranslationError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "doc.yaml", derr.File)
	assert.Equal(t, 7, derr.Line)
	assert.Equal(t, 3, derr.Column)
}

func TestLoadFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.json")

	err := os.WriteFile(path, []byte(`{"address": "0x2", "module": "m", "structs": [{"name": "S", "fields": [{"name": "a", "type": "bool"}]}]}`), 0644)
	require.NoError(t, err)

	m, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0x2", m.Ident.Address.Hex)
	assert.Equal(t, "bool", m.Structs[0].Fields[0].Type.String())
}

func TestParseTypes(t *testing.T) {
	d := &decoder{addresses: map[string]string{"std": "0x1"}}

	for _, s := range []string{
		"u8",
		"vector<vector<u128>>",
		"&mut std::coin::Coin<T, vector<u8>>",
		"&signer",
		"T",
	} {
		typ, err := d.typ(s, Loc{})
		require.NoError(t, err, s)
		assert.Equal(t, s, typ.(*SingleType).String())
	}

	typ, err := d.typ("(u64, bool)", Loc{})
	require.NoError(t, err)
	require.IsType(t, &MultipleType{}, typ)
	assert.Len(t, typ.(*MultipleType).Types, 2)

	typ, err = d.typ("()", Loc{})
	require.NoError(t, err)
	assert.IsType(t, &UnitType{}, typ)

	typ, err = d.typ("std::coin::Coin<u8>", Loc{})
	require.NoError(t, err)
	assert.Equal(t, "0x1", typ.(*SingleType).Base.(*StructType).Module.Address.Hex)

	for _, s := range []string{"u8<u8>", "T<u8>", "std::coin", "vector<u8, u8>", "u8 u8", "&"} {
		_, err := d.typ(s, Loc{})
		assert.Error(t, err, s)
	}
}
