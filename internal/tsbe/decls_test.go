package tsbe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movingco/move-to-ts/internal/ir"
)

func TestUndeclared(t *testing.T) {
	body := ir.Block{
		assign(u64Lit("1"), varLV("a")),
		&ir.IfElse{
			Cond: move("flag"),
			If:   ir.Block{assign(move("c"), unpackLV(field("value", varLV("v"))))},
			Else: ir.Block{assign(move("c"), unpackLV(field("inner", unpackLV(field("n", varLV("n"))))))},
		},
		&ir.While{
			Pre:  ir.Block{assign(move("c"), unpackLV(field("value", varLV("p"))))},
			Cond: move("flag"),
			Body: ir.Block{
				&ir.Loop{Body: ir.Block{assign(move("c"), unpackLV(field("value", varLV("l"))))}},
			},
		},
		// destructured inside a list: a plain assignment, so m needs a declaration
		assign(call("pair"), varLV("a"), unpackLV(field("value", varLV("m")))),
	}

	got := Undeclared(body, []string{"z", "a", "v", "n", "p", "l", "m"})
	assert.Equal(t, []string{"z", "a", "m"}, got)
}

func TestUndeclaredOnlyDestructured(t *testing.T) {
	body := ir.Block{
		assign(move("c"), unpackLV(field("value", varLV("v")), field("flag", varLV("f")))),
	}

	assert.Empty(t, Undeclared(body, []string{"v", "f"}))
	assert.Empty(t, Undeclared(nil, nil))
	assert.Equal(t, []string{"x"}, Undeclared(nil, []string{"x"}))
}
