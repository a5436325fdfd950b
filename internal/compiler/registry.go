package compiler

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nikand.dev/go/heap"
	"tlog.app/go/errors"

	"github.com/movingco/move-to-ts/internal/diagnostic"
	"github.com/movingco/move-to-ts/internal/ir"
)

// ModuleRegistry holds loaded modules keyed by "address::module"
// and orders them by their dependencies.
type ModuleRegistry struct {
	modules map[string]*ir.Module
}

// Extensions are the IR document extensions picked up from directories.
var Extensions = []string{".yaml", ".yml", ".json"}

func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		modules: make(map[string]*ir.Module),
	}
}

// Add registers mod. A module with the same ident is an error.
func (r *ModuleRegistry) Add(mod *ir.Module) error {
	id := mod.Ident.String()

	if prev, ok := r.modules[id]; ok {
		return errors.New("duplicate module %v: %v and %v", id, prev.File, mod.File)
	}

	r.modules[id] = mod

	return nil
}

// LoadPaths loads IR documents from files and directories.
// Directories are walked for files with one of Extensions.
func (r *ModuleRegistry) LoadPaths(paths []string) error {
	var files []string

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return errors.Wrap(err, "stat")
		}

		if !fi.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && isIRFile(path) {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return errors.Wrap(err, "walk %v", p)
		}
	}

	for _, f := range files {
		mod, err := ir.LoadFile(f)
		if err != nil {
			return errors.Wrap(err, "load %v", f)
		}

		if err := r.Add(mod); err != nil {
			return err
		}
	}

	return nil
}

func isIRFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}

	return false
}

// Get returns the module with the given ident or nil.
func (r *ModuleRegistry) Get(id string) *ir.Module {
	return r.modules[id]
}

// Modules returns the loaded modules in ident order.
func (r *ModuleRegistry) Modules() []*ir.Module {
	ids := r.ids()

	mods := make([]*ir.Module, len(ids))
	for i, id := range ids {
		mods[i] = r.modules[id]
	}

	return mods
}

func (r *ModuleRegistry) Len() int { return len(r.modules) }

func (r *ModuleRegistry) ids() []string {
	ids := make([]string, 0, len(r.modules))
	for id := range r.modules {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// deps are the loaded dependencies of id, deduplicated and sorted.
func (r *ModuleRegistry) deps(id string) []string {
	seen := map[string]struct{}{}
	var ds []string

	for _, d := range r.modules[id].Deps {
		s := d.String()
		if _, ok := r.modules[s]; !ok || s == id {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		ds = append(ds, s)
	}

	sort.Strings(ds)

	return ds
}

// MissingDeps reports dependencies of loaded modules that are not loaded.
// They do not take part in ordering.
func (r *ModuleRegistry) MissingDeps() *diagnostic.Diagnostics {
	ds := diagnostic.New()

	for _, id := range r.ids() {
		mod := r.modules[id]

		for _, d := range mod.Deps {
			if _, ok := r.modules[d.String()]; ok {
				continue
			}

			ds.Add(diagnostic.Diagnostic{
				Severity: diagnostic.Warning,
				Message:  "module " + id + " depends on " + d.String() + " which is not loaded",
				File:     mod.File,
				Hint:     "add its IR document to the inputs",
			})
		}
	}

	return ds
}

// TopologicalSort returns module idents dependencies first.
// Among modules whose dependencies are all placed the smallest ident goes first,
// so the order does not depend on load order.
func (r *ModuleRegistry) TopologicalSort() ([]string, error) {
	ids := r.ids()

	waiting := make(map[string]int, len(ids))
	users := make(map[string][]string, len(ids))

	ready := heap.Heap[string]{Less: func(d []string, i, j int) bool { return d[i] < d[j] }}

	for _, id := range ids {
		ds := r.deps(id)
		waiting[id] = len(ds)

		for _, d := range ds {
			users[d] = append(users[d], id)
		}

		if len(ds) == 0 {
			ready.Push(id)
		}
	}

	sorted := make([]string, 0, len(ids))

	for ready.Len() != 0 {
		id := ready.Pop()
		sorted = append(sorted, id)

		for _, u := range users[id] {
			waiting[u]--

			if waiting[u] == 0 {
				ready.Push(u)
			}
		}
	}

	if len(sorted) == len(ids) {
		return sorted, nil
	}

	return nil, errors.New("dependency cycle detected: %s", strings.Join(r.cycle(waiting), " -> "))
}

// cycle finds a dependency cycle among modules still waiting.
func (r *ModuleRegistry) cycle(waiting map[string]int) []string {
	visiting := map[string]bool{}
	visited := map[string]bool{}

	var found []string

	var visit func(id string, stack []string) bool
	visit = func(id string, stack []string) bool {
		if visiting[id] {
			for i, s := range stack {
				if s == id {
					found = append(append([]string{}, stack[i:]...), id)
					break
				}
			}

			return true
		}
		if visited[id] {
			return false
		}

		visiting[id] = true
		stack = append(stack, id)

		for _, d := range r.deps(id) {
			if waiting[d] != 0 && visit(d, stack) {
				return true
			}
		}

		visiting[id] = false
		visited[id] = true

		return false
	}

	for _, id := range r.ids() {
		if waiting[id] != 0 && visit(id, nil) {
			break
		}
	}

	return found
}
