package tsbe

import (
	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/tsgen"
)

var (
	framework = ir.Address{Name: "aptos_framework", Hex: "0x1"}
	stdAddr   = ir.Address{Name: "std", Hex: "0x1"}

	coinID    = ir.ModuleIdent{Address: framework, Module: "coin"}
	accountID = ir.ModuleIdent{Address: framework, Module: "account"}
	optionID  = ir.ModuleIdent{Address: stdAddr, Module: "option"}
)

func testModule() *ir.Module {
	return &ir.Module{Ident: coinID, Package: "AptosFramework"}
}

func testContext() *Context {
	return NewContext(testModule(), DefaultOptions(), nil)
}

func prim(b ir.Builtin) *ir.BuiltinType { return ir.Prim(b) }

func single(t ir.BaseType) *ir.SingleType { return ir.Base(t) }

func signerRef() *ir.SingleType {
	return &ir.SingleType{Ref: true, Base: prim(ir.BuiltinSigner)}
}

func structType(id ir.ModuleIdent, name string, args ...ir.BaseType) *ir.StructType {
	return &ir.StructType{Module: id, Name: name, Args: args}
}

func tparam(name string) *ir.TypeParam { return &ir.TypeParam{Name: name} }

func move(name string) ir.Exp { return &ir.MoveExp{Name: name} }

func cp(name string) ir.Exp { return &ir.CopyExp{Name: name} }

func u64Lit(lit string) ir.Exp {
	return &ir.ValueExp{Kind: ir.BuiltinU64, Lit: lit, Type: single(prim(ir.BuiltinU64))}
}

func call(name string, args ...ir.Exp) ir.Exp {
	return &ir.ModuleCallExp{Module: coinID, Name: name, Args: args, Type: &ir.UnitType{}}
}

func binop(l ir.Exp, op string, r ir.Exp) ir.Exp {
	return &ir.BinopExp{Left: l, Op: op, Right: r}
}

func assign(e ir.Exp, lvs ...ir.LValue) *ir.Assign {
	return &ir.Assign{LValues: lvs, Exp: e}
}

func varLV(name string) ir.LValue { return &ir.VarLValue{Name: name} }

func unpackLV(fields ...ir.FieldLValue) *ir.UnpackLValue {
	return &ir.UnpackLValue{Struct: structType(coinID, "Coin"), Fields: fields}
}

func field(name string, lv ir.LValue) ir.FieldLValue {
	return ir.FieldLValue{Name: name, LValue: lv}
}

func ret(e ir.Exp) *ir.Return { return &ir.Return{Exp: e} }

func unitRet() *ir.Return { return &ir.Return{Exp: &ir.UnitExp{}} }

// lower renders statements with a fresh writer.
func lower(c *Context, b ir.Block) (string, error) {
	var w tsgen.Writer

	err := writeStatements(&w, c, b)

	return w.String(), err
}
