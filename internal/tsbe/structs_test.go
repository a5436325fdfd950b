package tsbe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/tsgen"
)

func emitStruct(t *testing.T, s *ir.Struct) string {
	t.Helper()

	var w tsgen.Writer

	err := EmitStruct(&w, testContext(), s)
	require.NoError(t, err)

	return w.String()
}

func TestEmitStructConcrete(t *testing.T) {
	s := &ir.Struct{
		Name:      "Coin",
		Abilities: ir.Abilities(0).With(ir.AbilityStore),
		Fields: []ir.Field{
			{Name: "value", Type: prim(ir.BuiltinU64)},
			{Name: "flag", Type: prim(ir.BuiltinBool)},
		},
	}

	want := `export class Coin {
  static moduleAddress = moduleAddress;
  static moduleName = moduleName;
  static structName: string = "Coin";
  static typeParameters: TypeParamDeclType[] = [];
  static fields: FieldDeclType[] = [
    { name: "value", typeTag: AtomicTypeTag.U64 },
    { name: "flag", typeTag: AtomicTypeTag.Bool }
  ];

  value: U64;
  flag: boolean;

  constructor(proto: any, public typeTag: TypeTag) {
    this.value = proto['value'] as U64;
    this.flag = proto['flag'] as boolean;
  }

  static CoinParser(data:any, typeTag: TypeTag, repo: AptosParserRepo) : Coin {
    const proto = $.parseStructProto(data, typeTag, repo, Coin);
    return new Coin(proto, typeTag);
  }
}

`

	assert.Equal(t, want, emitStruct(t, s))
}

func TestEmitStructKeyLoader(t *testing.T) {
	s := &ir.Struct{
		Name:       "CoinStore",
		Abilities:  ir.Abilities(0).With(ir.AbilityKey),
		TypeParams: []ir.StructTypeParam{{Name: "CoinType", IsPhantom: true}},
		Fields: []ir.Field{
			{Name: "coin", Type: structType(coinID, "Coin", tparam("CoinType"))},
		},
	}

	out := emitStruct(t, s)

	assert.Contains(t, out, "export class CoinStore<CoinType = any> {\n")
	assert.Contains(t, out, "  static typeParameters: TypeParamDeclType[] = [\n    { name: \"CoinType\", isPhantom: true }\n  ];\n")
	assert.Contains(t, out, `{ name: "coin", typeTag: new StructTag(new HexString("0x1"), "coin", "Coin", [new $.TypeParamIdx(0)]) }`)
	assert.Contains(t, out, "  coin: Coin<CoinType>;\n")
	assert.Contains(t, out, "this.coin = proto['coin'] as Coin<CoinType>;")
	assert.Contains(t, out, "  static async load(repo: AptosParserRepo, client: AptosClient, address: HexString, typeParams: TypeTag[]) {\n")
	assert.Contains(t, out, "const result = await repo.loadResource(client, address, CoinStore, typeParams);")
	assert.Contains(t, out, "return result as unknown as CoinStore;")
}

func TestResourceLoaderFollowsKey(t *testing.T) {
	all := []ir.Ability{ir.AbilityCopy, ir.AbilityDrop, ir.AbilityStore, ir.AbilityKey}

	for mask := 0; mask < 1<<len(all); mask++ {
		var abs ir.Abilities
		for i, a := range all {
			if mask&(1<<i) != 0 {
				abs = abs.With(a)
			}
		}

		s := &ir.Struct{Name: "S", Abilities: abs, Fields: []ir.Field{{Name: "x", Type: prim(ir.BuiltinU8)}}}

		out := emitStruct(t, s)

		assert.Equal(t, abs.Has(ir.AbilityKey), HasResourceLoader(s))
		assert.Equal(t, abs.Has(ir.AbilityKey), containsLoader(out), "abilities %b", abs)
	}
}

func containsLoader(out string) bool {
	return strings.Contains(out, "static async load(")
}

func TestEmitNativeStruct(t *testing.T) {
	s := &ir.Struct{
		Name:       "Table",
		Native:     true,
		Abilities:  ir.Abilities(0).With(ir.AbilityKey),
		TypeParams: []ir.StructTypeParam{{Name: "K"}, {Name: "V"}},
	}

	out := emitStruct(t, s)

	assert.Contains(t, out, "export class Table<K = any, V = any> {")
	assert.Contains(t, out, `{ name: "K", isPhantom: false },`)
	assert.NotContains(t, out, "static fields")
	assert.NotContains(t, out, "constructor")
	assert.NotContains(t, out, "Parser")
	assert.NotContains(t, out, "load")
}

func TestFieldDeclsRoundTrip(t *testing.T) {
	s := &ir.Struct{
		Name:       "Pool",
		TypeParams: []ir.StructTypeParam{{Name: "X"}, {Name: "Y"}},
		Fields: []ir.Field{
			{Name: "reserve_x", Type: structType(coinID, "Coin", tparam("X"))},
			{Name: "reserve_y", Type: structType(coinID, "Coin", tparam("Y"))},
			{Name: "history", Type: ir.VectorOf(ir.VectorOf(prim(ir.BuiltinU128)))},
			{Name: "owner", Type: prim(ir.BuiltinAddress)},
			{Name: "meta", Type: structType(optionID, "Option", ir.VectorOf(prim(ir.BuiltinU8)))},
		},
	}

	decls, err := FieldDecls(s)
	require.NoError(t, err)
	require.Len(t, decls, len(s.Fields))

	for i, f := range s.Fields {
		assert.Equal(t, f.Name, decls[i].Name)
		assert.True(t, ir.EqualTypes(f.Type, decls[i].Tag.BaseType()), f.Name)
	}

	assert.Equal(t, "new $.TypeParamIdx(1)", decls[1].Tag.(*StructTag).Args[0].Expr(StructScope))
}

func TestEmitStructSignerField(t *testing.T) {
	var w tsgen.Writer

	err := EmitStruct(&w, testContext(), &ir.Struct{Name: "S", Fields: []ir.Field{{Name: "s", Type: prim(ir.BuiltinSigner)}}})
	assert.Error(t, err)
}

func TestEmitStructRenamedField(t *testing.T) {
	s := &ir.Struct{
		Name: "Transfer",
		Fields: []ir.Field{
			{Name: "default", Type: prim(ir.BuiltinAddress)},
			{Name: "from", Type: prim(ir.BuiltinAddress)},
		},
	}

	out := emitStruct(t, s)

	assert.Contains(t, out, `{ name: "default__", typeTag: AtomicTypeTag.Address },`)
	assert.Contains(t, out, "  default__: HexString;\n")
	assert.Contains(t, out, "this.default__ = proto['default__'] as HexString;")

	assert.Contains(t, out, `{ name: "from", typeTag: AtomicTypeTag.Address }`)
	assert.Contains(t, out, "this.from = proto['from'] as HexString;")

	pack, err := DefaultEvaluator{}.Term(testContext(), &ir.PackExp{
		Struct: structType(coinID, "Transfer"),
		Fields: []ir.FieldExp{{Name: "default", Exp: move("a")}, {Name: "from", Exp: move("b")}},
	})
	require.NoError(t, err)
	assert.Contains(t, pack, "{ default__: a, from: b }")

	unpack := unpackLV(field("default", varLV("d")))
	unpack.Struct = structType(coinID, "Transfer")

	out, err = lower(testContext(), ir.Block{assign(move("t"), unpack)})
	require.NoError(t, err)
	assert.Contains(t, out, "default__: d")
}
