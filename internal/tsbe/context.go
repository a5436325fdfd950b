package tsbe

import (
	"sort"

	"github.com/movingco/move-to-ts/internal/ir"
)

type (
	// Options are the per-build translation settings.
	Options struct {
		Test bool // mark test functions

		RuntimePackage string
		ClientPackage  string
	}

	// Context is the translation state of one module.
	// A fresh Context is created for every module and is not safe for concurrent use.
	Context struct {
		Module  ir.ModuleIdent
		Package string

		opts Options
		eval Evaluator

		// set while a struct or a function is emitted
		st *ir.Struct
		fn *ir.Function

		packageImports     map[string]struct{}
		samePackageImports map[string]struct{}
	}
)

const (
	DefaultRuntimePackage = "@manahippo/move-to-ts"
	DefaultClientPackage  = "aptos"
)

func DefaultOptions() Options {
	return Options{
		RuntimePackage: DefaultRuntimePackage,
		ClientPackage:  DefaultClientPackage,
	}
}

// NewContext returns the translation state for mod.
// nil eval means DefaultEvaluator.
func NewContext(mod *ir.Module, opts Options, eval Evaluator) *Context {
	if opts.RuntimePackage == "" {
		opts.RuntimePackage = DefaultRuntimePackage
	}
	if opts.ClientPackage == "" {
		opts.ClientPackage = DefaultClientPackage
	}
	if eval == nil {
		eval = DefaultEvaluator{}
	}

	return &Context{
		Module:             mod.Ident,
		Package:            mod.Package,
		opts:               opts,
		eval:               eval,
		packageImports:     map[string]struct{}{},
		samePackageImports: map[string]struct{}{},
	}
}

// Term renders e with the context evaluator.
func (c *Context) Term(e ir.Exp) (string, error) {
	return c.eval.Term(c, e)
}

// Qualifier returns the prefix a reference into module id needs
// and records the import it requires.
func (c *Context) Qualifier(id ir.ModuleIdent) string {
	switch {
	case id == c.Module:
		return ""
	case id.Address.Name == c.Module.Address.Name:
		c.samePackageImports[id.Module] = struct{}{}

		return ImportName(id.Module) + "."
	default:
		c.packageImports[id.Address.Name] = struct{}{}

		return ImportName(id.Address.Name) + "." + ImportName(id.Module) + "."
	}
}

// PackageImports returns imported package directories in sorted order.
func (c *Context) PackageImports() []string {
	return sortedKeys(c.packageImports)
}

// SamePackageImports returns imported sibling modules in sorted order.
func (c *Context) SamePackageImports() []string {
	return sortedKeys(c.samePackageImports)
}

// Function returns the function being emitted, if any.
func (c *Context) Function() *ir.Function {
	return c.fn
}

func (c *Context) enterStruct(s *ir.Struct) {
	c.st = s
	c.fn = nil
}

func (c *Context) enterFunction(f *ir.Function) {
	c.fn = f
	c.st = nil
}

func (c *Context) leave() {
	c.fn = nil
	c.st = nil
}

func (c *Context) inStruct() bool {
	return c.st != nil
}

// tagParams are the type parameters positional tags refer to.
func (c *Context) tagParams() []string {
	if c.inStruct() {
		names := make([]string, len(c.st.TypeParams))
		for i, p := range c.st.TypeParams {
			names[i] = p.Name
		}

		return names
	}

	if c.fn != nil {
		return c.fn.Signature.TypeParams
	}

	return nil
}

func (c *Context) tagScope() Scope {
	if c.inStruct() {
		return StructScope
	}

	return FunctionScope
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
