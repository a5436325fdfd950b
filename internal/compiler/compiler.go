package compiler

import (
	"context"
	"path"
	"sort"

	"golang.org/x/sync/errgroup"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/movingco/move-to-ts/internal/config"
	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
	"github.com/movingco/move-to-ts/internal/linter"
	"github.com/movingco/move-to-ts/internal/tsbe"
)

type (
	// Compiler translates every module of a registry.
	Compiler struct {
		Options tsbe.Options
		Jobs    int

		// Evaluator renders expressions. Nil means tsbe.DefaultEvaluator.
		Evaluator tsbe.Evaluator
	}

	// Result holds the output of a compilation.
	Result struct {
		Order       []string
		Files       []File
		Diagnostics *diagnostic.Diagnostics

		// Internal are translator defects, kept apart from diagnostics.
		Internal []error
	}

	moduleResult struct {
		path    string
		content string
		errs    []error
		warns   *diagnostic.Diagnostics
	}
)

func New(cfg *config.Config) *Compiler {
	return &Compiler{
		Options: cfg.Options(),
		Jobs:    cfg.Jobs,
	}
}

// Failed reports whether any module failed to translate.
func (r *Result) Failed() bool {
	return r.Diagnostics.HasErrors() || len(r.Internal) != 0
}

// Translate orders the modules of reg and translates each one concurrently.
// A failed module does not stop the others. The returned error is only set
// when no translation could start, as for a dependency cycle.
func (c *Compiler) Translate(ctx context.Context, reg *ModuleRegistry) (res *Result, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "modules", reg.Len(), "jobs", c.Jobs)
	defer tr.Finish("err", &err)

	order, err := reg.TopologicalSort()
	if err != nil {
		return nil, errors.Wrap(err, "order modules")
	}

	tr.Printw("module order", "order", order)

	res = &Result{
		Order:       order,
		Diagnostics: reg.MissingDeps(),
	}

	out := make([]moduleResult, len(order))

	var g errgroup.Group

	if c.Jobs > 0 {
		g.SetLimit(c.Jobs)
	}

	for i, id := range order {
		i, mod := i, reg.Get(id)

		g.Go(func() error {
			out[i] = c.translate(ctx, mod)
			return nil
		})
	}

	_ = g.Wait()

	packages := map[string][]string{}

	for i, id := range order {
		mod := reg.Get(id)
		r := out[i]

		if r.warns != nil {
			for _, w := range r.warns.All() {
				res.Diagnostics.Add(w)
			}
		}

		if len(r.errs) != 0 {
			for _, err := range r.errs {
				if diagnostic.IsInternal(err) {
					res.Internal = append(res.Internal, errors.Wrap(err, "module %v", id))
					continue
				}

				res.Diagnostics.Add(diagnostic.From(err, mod.File))
			}

			continue
		}

		res.Files = append(res.Files, File{Path: r.path, Content: r.content})

		dir := mod.Ident.Address.Name
		packages[dir] = append(packages[dir], mod.Ident.Module)
	}

	res.Files = append(res.Files, indexFiles(packages)...)

	tr.Printw("translated", "files", len(res.Files), "errors", res.Diagnostics.ErrorCount(), "internal", len(res.Internal))

	return res, nil
}

func (c *Compiler) translate(ctx context.Context, mod *ir.Module) (r moduleResult) {
	var err error

	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "translate module", "module", mod.Ident.String(), "file", mod.File)
	defer tr.Finish("err", &err)

	if msgs := ir.Validate(mod); len(msgs) != 0 {
		for _, m := range msgs {
			r.errs = append(r.errs, diagnostic.Errorf(mod.File, 0, 0, "%s", m))
		}

		err = errors.New("%d validation errors", len(msgs))

		return r
	}

	r.warns = linter.Lint(mod)

	r.path, r.content, err = tsbe.TranslateModule(mod, c.Options, c.Evaluator)
	if err != nil {
		r.errs = append(r.errs, err)
		return r
	}

	tr.Printw("module translated", "path", r.path, "size", len(r.content))

	return r
}

// indexFiles renders index.ts for every package directory.
func indexFiles(packages map[string][]string) []File {
	dirs := make([]string, 0, len(packages))
	for d := range packages {
		dirs = append(dirs, d)
	}

	sort.Strings(dirs)

	files := make([]File, 0, len(dirs))

	for _, d := range dirs {
		files = append(files, File{
			Path:    path.Join(d, "index.ts"),
			Content: tsbe.PackageIndex(packages[d]),
		})
	}

	return files
}

