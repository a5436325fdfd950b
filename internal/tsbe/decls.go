package tsbe

import (
	"github.com/movingco/move-to-ts/internal/ir"
)

// Undeclared returns the locals that need a forward let declaration:
// all of them except names bound by a destructuring declaration anywhere in body.
// The result keeps the order of locals.
func Undeclared(body ir.Block, locals []string) []string {
	bound := map[string]bool{}
	collectBlock(body, bound)

	var r []string

	for _, l := range locals {
		if !bound[l] {
			r = append(r, l)
		}
	}

	return r
}

func collectBlock(b ir.Block, bound map[string]bool) {
	for _, s := range b {
		switch s := s.(type) {
		case *ir.IfElse:
			collectBlock(s.If, bound)
			collectBlock(s.Else, bound)
		case *ir.While:
			collectBlock(s.Pre, bound)
			collectBlock(s.Body, bound)
		case *ir.Loop:
			collectBlock(s.Body, bound)
		case *ir.Assign:
			// Only a lone unpack is emitted as a let declaration.
			if u, ok := loneUnpack(s.LValues); ok {
				collectUnpack(u, bound)
			}
		}
	}
}

func collectUnpack(u *ir.UnpackLValue, bound map[string]bool) {
	for _, f := range u.Fields {
		switch lv := f.LValue.(type) {
		case *ir.VarLValue:
			bound[lv.Name] = true
		case *ir.UnpackLValue:
			collectUnpack(lv, bound)
		}
	}
}

func loneUnpack(lvs []ir.LValue) (*ir.UnpackLValue, bool) {
	if len(lvs) != 1 {
		return nil, false
	}

	u, ok := lvs[0].(*ir.UnpackLValue)

	return u, ok
}
