package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"

	"github.com/movingco/move-to-ts/internal/diagnostic"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightBlue
)

// Reporter prints diagnostics and build results for humans.
type Reporter struct {
	w io.Writer
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Error prints a tagged error.
func (r *Reporter) Error(tag string, err error) {
	fmt.Fprintln(r.w, ErrorStyleBG.Sprint(" "+tag+" ")+" "+ErrorColorFG.Sprint(err.Error()))
}

// Info prints a tagged message.
func (r *Reporter) Info(tag, msg string) {
	fmt.Fprintln(r.w, SuccessStyleBG.Sprint(" "+tag+" ")+" "+msg)
}

// Diagnostic prints one diagnostic with a banner naming its file.
func (r *Reporter) Diagnostic(d diagnostic.Diagnostic) {
	style, color := ErrorStyleBG, ErrorColorFG
	if d.Severity == diagnostic.Warning {
		style, color = WarnStyleBG, WarnColorFG
	}

	fmt.Fprintf(r.w, "%s %s:%d:%d\n", style.Sprint(" "+d.Severity.String()+" "), InfoColorFG.Sprint(filepath.Base(d.File)), d.Line, d.Column)
	fmt.Fprintln(r.w, "  "+color.Sprint(d.Message))

	if d.Hint != "" {
		fmt.Fprintln(r.w, "  hint: "+d.Hint)
	}
}

// Diagnostics prints every diagnostic of ds.
func (r *Reporter) Diagnostics(ds *diagnostic.Diagnostics) {
	for _, d := range ds.All() {
		r.Diagnostic(d)
	}
}

// Summary prints the outcome of a build or check.
func (r *Reporter) Summary(modules, files int, ds *diagnostic.Diagnostics, took time.Duration) {
	msg := fmt.Sprintf("%d modules, %d files, %d errors, %d warnings in %v",
		modules, files, ds.ErrorCount(), ds.WarningCount(), took.Round(time.Millisecond))

	if ds.HasErrors() {
		fmt.Fprintln(r.w, ErrorStyleBG.Sprint(" FAILED ")+" "+msg)
		return
	}

	fmt.Fprintln(r.w, SuccessStyleBG.Sprint(" OK ")+" "+msg)
}

// Order prints modules in translation order.
func (r *Reporter) Order(ids []string) {
	for i, id := range ids {
		fmt.Fprintf(r.w, "%3d  %s\n", i+1, id)
	}
}
