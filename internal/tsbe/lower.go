package tsbe

import (
	"strings"

	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/tsgen"
)

// WriteBlock writes b as a braced TypeScript block.
func WriteBlock(w *tsgen.Writer, c *Context, b ir.Block) error {
	return w.ShortBlock(func() error {
		return writeStatements(w, c, b)
	})
}

func writeStatements(w *tsgen.Writer, c *Context, b ir.Block) error {
	for _, s := range b {
		if err := WriteStatement(w, c, s); err != nil {
			return err
		}
	}

	return nil
}

// WriteStatement lowers a single statement.
func WriteStatement(w *tsgen.Writer, c *Context, s ir.Statement) error {
	switch s := s.(type) {
	case *ir.IfElse:
		cond, err := c.Term(s.Cond)
		if err != nil {
			return err
		}

		if isEmptyBlock(s.If) {
			w.Write("if (!(" + cond + ")) ")
			return WriteBlock(w, c, s.Else)
		}

		w.Write("if (" + cond + ") ")

		if err := WriteBlock(w, c, s.If); err != nil {
			return err
		}

		if isEmptyBlock(s.Else) {
			return nil
		}

		w.Write("else ")

		return WriteBlock(w, c, s.Else)
	case *ir.While:
		if len(s.Pre) == 0 {
			cond, err := c.Term(s.Cond)
			if err != nil {
				return err
			}

			w.Write("while (" + cond + ") ")

			return WriteBlock(w, c, s.Body)
		}

		w.Write("while (true) ")

		return w.ShortBlock(func() error {
			if err := writeStatements(w, c, s.Pre); err != nil {
				return err
			}

			cond, err := c.Term(s.Cond)
			if err != nil {
				return err
			}

			w.Writeln("if (!(" + cond + ")) break;")

			return WriteBlock(w, c, s.Body)
		})
	case *ir.Loop:
		w.Write("while (true) ")

		return WriteBlock(w, c, s.Body)
	case ir.Command:
		return WriteCommand(w, c, s)
	default:
		return diagnostic.Internalf("unexpected statement %T", s)
	}
}

// WriteCommand lowers a command.
func WriteCommand(w *tsgen.Writer, c *Context, cmd ir.Command) error {
	switch cmd := cmd.(type) {
	case *ir.Assign:
		return writeAssign(w, c, cmd)
	case *ir.Mutate:
		lhs, err := c.Term(cmd.Target)
		if err != nil {
			return err
		}

		rhs, err := c.Term(cmd.Exp)
		if err != nil {
			return err
		}

		if _, ok := cmd.Target.(*ir.BorrowExp); ok {
			w.Writeln(lhs + " = " + rhs + ";")
		} else {
			w.Writeln(lhs + ".$set(" + rhs + ");")
		}
	case *ir.Abort:
		code, err := c.Term(cmd.Code)
		if err != nil {
			return err
		}

		w.Writeln("throw $.abortCode(" + code + ");")
	case *ir.Return:
		if ir.IsUnit(cmd.Exp) {
			w.Writeln("return;")
			return nil
		}

		v, err := c.Term(cmd.Exp)
		if err != nil {
			return err
		}

		w.Writeln("return " + v + ";")
	case *ir.Break:
		w.Writeln("break;")
	case *ir.Continue:
		w.Writeln("continue;")
	case *ir.IgnoreAndPop:
		if ir.IsUnit(cmd.Exp) {
			return nil
		}

		v, err := c.Term(cmd.Exp)
		if err != nil {
			return err
		}

		w.Writeln(v + ";")
	case *ir.Jump:
		return errorf(cmd.Loc, "unsupported command (jump)")
	default:
		return diagnostic.Internalf("unexpected command %T", cmd)
	}

	return nil
}

func writeAssign(w *tsgen.Writer, c *Context, a *ir.Assign) error {
	rhs, err := c.Term(a.Exp)
	if err != nil {
		return err
	}

	if allIgnored(a.LValues) {
		if !ir.IsUnit(a.Exp) {
			w.Writeln(rhs + ";")
		}

		return nil
	}

	if u, ok := loneUnpack(a.LValues); ok {
		w.Writeln("let " + unpackPattern(u) + " = " + rhs + ";")
		return nil
	}

	if len(a.LValues) == 1 {
		w.Writeln(lvaluePattern(a.LValues[0]) + " = " + rhs + ";")
		return nil
	}

	pats := make([]string, len(a.LValues))
	for i, lv := range a.LValues {
		pats[i] = lvaluePattern(lv)
	}

	w.Writeln("[" + strings.Join(pats, ", ") + "] = " + rhs + ";")

	return nil
}

// lvaluePattern renders a destructuring target. Ignored positions are empty.
func lvaluePattern(lv ir.LValue) string {
	switch lv := lv.(type) {
	case *ir.VarLValue:
		return Rename(lv.Name)
	case *ir.UnpackLValue:
		return unpackPattern(lv)
	default:
		return ""
	}
}

func unpackPattern(u *ir.UnpackLValue) string {
	var fields []string

	for _, f := range u.Fields {
		if _, ok := f.LValue.(*ir.IgnoreLValue); ok {
			continue
		}

		fields = append(fields, Rename(f.Name)+": "+lvaluePattern(f.LValue))
	}

	if len(fields) == 0 {
		return "{ }"
	}

	return "{ " + strings.Join(fields, ", ") + " }"
}

func allIgnored(lvs []ir.LValue) bool {
	for _, lv := range lvs {
		if _, ok := lv.(*ir.IgnoreLValue); !ok {
			return false
		}
	}

	return true
}

// isEmptyBlock reports whether b has no observable effect:
// it is empty or only pops the unit value.
func isEmptyBlock(b ir.Block) bool {
	switch len(b) {
	case 0:
		return true
	case 1:
		p, ok := b[0].(*ir.IgnoreAndPop)
		return ok && ir.IsUnit(p.Exp)
	default:
		return false
	}
}
