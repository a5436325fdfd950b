package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single translation message tied to a source location.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
	Line     int
	Column   int
	Hint     string // optional suggestion
}

// String renders the diagnostic as error[file:3:10]: message.
func (d Diagnostic) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s[%s:%d:%d]: %s", d.Severity, d.File, d.Line, d.Column, d.Message)

	if d.Hint != "" {
		fmt.Fprintf(&b, "\n  hint: %s", d.Hint)
	}

	return b.String()
}

// Diagnostics accumulates diagnostics from several modules.
// It is not safe for concurrent use.
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Add appends d to the collection.
func (d *Diagnostics) Add(item Diagnostic) {
	d.items = append(d.items, item)
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(file string, line, col int, format string, args ...interface{}) {
	d.Add(Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Line:     line,
		Column:   col,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(file string, line, col int, format string, args ...interface{}) {
	d.Add(Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Line:     line,
		Column:   col,
	})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Error {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	return len(d.items) - d.ErrorCount()
}

// Format returns human-readable messages, one per line:
//
//	error[coin.yaml:3:10]: unsupported command (jump)
//	  hint: ...
//	warning[coin.yaml:0:0]: dependency 0x1::event not loaded
func (d *Diagnostics) Format() string {
	var b strings.Builder

	for i, item := range d.items {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(item.String())
	}

	return b.String()
}
