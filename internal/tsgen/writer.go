package tsgen

import (
	"fmt"
	"strings"
)

// Writer accumulates TypeScript source text.
// Indentation is two spaces per level and is written lazily,
// so a line started with Write can be continued by a block opener.
// The zero value is ready to use.
type Writer struct {
	sb     strings.Builder
	indent int
	mid    bool // inside a line
}

func New() *Writer {
	return &Writer{}
}

// Write appends s to the current line.
func (w *Writer) Write(s string) {
	if s == "" {
		return
	}

	if !w.mid {
		w.sb.WriteString(strings.Repeat("  ", w.indent))
		w.mid = true
	}

	w.sb.WriteString(s)
}

func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// Writeln appends s and ends the line.
func (w *Writer) Writeln(s string) {
	w.Write(s)
	w.NewLine()
}

func (w *Writer) Writelnf(format string, args ...any) {
	w.Writeln(fmt.Sprintf(format, args...))
}

// NewLine ends the current line. On an empty line it emits a blank line.
func (w *Writer) NewLine() {
	w.sb.WriteByte('\n')
	w.mid = false
}

func (w *Writer) IncIndent() { w.indent++ }

func (w *Writer) DecIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Indent runs fn one level deeper.
func (w *Writer) Indent(fn func() error) error {
	w.IncIndent()
	defer w.DecIndent()

	return fn()
}

// ShortBlock wraps fn output into braces:
//
//	{
//	  ...
//	}
//
// The opening brace continues the current line if there is one.
func (w *Writer) ShortBlock(fn func() error) error {
	w.Writeln("{")

	if err := w.Indent(fn); err != nil {
		return err
	}

	w.Writeln("}")

	return nil
}

// ExportConst writes export const name = value;
func (w *Writer) ExportConst(name, value string) {
	w.Writelnf("export const %s = %s;", name, value)
}

func (w *Writer) String() string {
	return w.sb.String()
}

// List writes one line per item, separating items with sep.
// The separator follows every item but the last.
func List[T any](w *Writer, items []T, sep string, fn func(item T) error) error {
	for i, item := range items {
		if err := fn(item); err != nil {
			return err
		}

		if i != len(items)-1 {
			w.Write(sep)
		}

		w.NewLine()
	}

	return nil
}
