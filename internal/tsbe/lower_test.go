package tsbe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
)

func TestLowerIfElse(t *testing.T) {
	c := testContext()

	out, err := lower(c, ir.Block{
		&ir.IfElse{Cond: move("flag"), If: ir.Block{&ir.Break{}}, Else: ir.Block{&ir.Continue{}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "if (flag) {\n  break;\n}\nelse {\n  continue;\n}\n", out)

	out, err = lower(c, ir.Block{
		&ir.IfElse{Cond: move("flag"), If: ir.Block{&ir.Break{}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "if (flag) {\n  break;\n}\n", out)
}

func TestLowerIfEmptyThen(t *testing.T) {
	c := testContext()

	for _, then := range []ir.Block{
		nil,
		{&ir.IgnoreAndPop{Exp: &ir.UnitExp{}}},
	} {
		out, err := lower(c, ir.Block{
			&ir.IfElse{Cond: binop(cp("a"), "<", u64Lit("3")), If: then, Else: ir.Block{unitRet()}},
		})
		require.NoError(t, err)

		assert.Equal(t, "if (!(($.copy(a)).lt(u64(\"3\")))) {\n  return;\n}\n", out)
		assert.NotContains(t, out, "else")
	}
}

func TestLowerWhileWithPreBlock(t *testing.T) {
	c := testContext()

	out, err := lower(c, ir.Block{
		&ir.While{
			Pre:  ir.Block{assign(binop(move("i"), "+", u64Lit("1")), varLV("i"))},
			Cond: binop(cp("i"), "<", u64Lit("10")),
			Body: ir.Block{&ir.IgnoreAndPop{Exp: call("tick")}},
		},
	})
	require.NoError(t, err)

	want := `while (true) {
  i = (i).add(u64("1"));
  if (!(($.copy(i)).lt(u64("10")))) break;
  {
    tick$($c);
  }
}
`
	assert.Equal(t, want, out)

	// pre-block runs before the test on every iteration, the body only after it
	pre := strings.Index(out, "i = ")
	test := strings.Index(out, "break;")
	body := strings.Index(out, "tick$")
	assert.True(t, pre < test && test < body)
	assert.Equal(t, 1, strings.Count(out, "i = "))
}

func TestLowerLoops(t *testing.T) {
	c := testContext()

	out, err := lower(c, ir.Block{
		&ir.While{Cond: move("flag"), Body: ir.Block{&ir.Break{}}},
		&ir.Loop{HasBreak: true, Body: ir.Block{&ir.Break{}}},
		&ir.Loop{Body: ir.Block{&ir.Continue{}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "while (flag) {\n  break;\n}\nwhile (true) {\n  break;\n}\nwhile (true) {\n  continue;\n}\n", out)
}

func TestLowerCommands(t *testing.T) {
	c := testContext()

	for _, tc := range []struct {
		name string
		cmd  ir.Statement
		want string
	}{
		{"return unit", unitRet(), "return;\n"},
		{"return value", ret(move("x")), "return x;\n"},
		{"abort", &ir.Abort{Code: u64Lit("7")}, "throw $.abortCode(u64(\"7\"));\n"},
		{"ignored assign", assign(call("f"), &ir.IgnoreLValue{}), "f$($c);\n"},
		{"plain assign", assign(cp("y"), varLV("x")), "x = $.copy(y);\n"},
		{"multi assign", assign(call("pair"), varLV("a"), &ir.IgnoreLValue{}, varLV("b")), "[a, , b] = pair$($c);\n"},
		{
			"lone unpack",
			assign(move("c"), unpackLV(field("value", varLV("v")), field("info", unpackLV(field("n", varLV("n")))), field("flag", &ir.IgnoreLValue{}))),
			"let { value: v, info: { n: n } } = c;\n",
		},
		{
			"unpack in list",
			assign(call("pair"), varLV("a"), unpackLV(field("value", varLV("v")))),
			"[a, { value: v }] = pair$($c);\n",
		},
		{
			"mutate through borrow",
			&ir.Mutate{Target: &ir.BorrowExp{Mut: true, Exp: move("r"), Field: "value"}, Exp: u64Lit("2")},
			"r.value = u64(\"2\");\n",
		},
		{"mutate reference", &ir.Mutate{Target: move("r"), Exp: u64Lit("2")}, "r.$set(u64(\"2\"));\n"},
		{"pop unit", &ir.IgnoreAndPop{Exp: &ir.UnitExp{}}, ""},
		{"pop value", &ir.IgnoreAndPop{PopNum: 1, Exp: call("f")}, "f$($c);\n"},
		{"break", &ir.Break{}, "break;\n"},
		{"continue", &ir.Continue{}, "continue;\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := lower(c, ir.Block{tc.cmd})
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestLowerJump(t *testing.T) {
	c := testContext()

	_, err := lower(c, ir.Block{
		&ir.Loop{Body: ir.Block{&ir.Jump{Loc: ir.Loc{File: "coin.move", Line: 9, Column: 4}, Target: 2}}},
	})
	require.Error(t, err)

	var derr *diagnostic.TranslationError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "unsupported command (jump)", derr.Message)
	assert.Equal(t, "coin.move", derr.File)
	assert.Equal(t, 9, derr.Line)
}

func TestLowerTermError(t *testing.T) {
	c := testContext()

	_, err := lower(c, ir.Block{
		&ir.IfElse{Cond: &ir.UnaryExp{Op: "-", Exp: move("x")}, If: ir.Block{&ir.Break{}}},
	})
	assert.ErrorContains(t, err, "unsupported unary operator")
}
