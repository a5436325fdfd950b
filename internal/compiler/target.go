package compiler

import (
	"context"
	"os"
	"path/filepath"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// File is a generated file. Path is slash separated and relative
// to the output directory.
type File struct {
	Path    string
	Content string
}

// WriteFiles writes files under dir, creating package directories as needed.
func WriteFiles(ctx context.Context, dir string, files []File) (err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "write files", "dir", dir, "files", len(files))
	defer tr.Finish("err", &err)

	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f.Path))

		if err = os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return errors.Wrap(err, "create dir")
		}

		if err = os.WriteFile(p, []byte(f.Content), 0644); err != nil {
			return errors.Wrap(err, "write %v", f.Path)
		}

		tr.V("files").Printw("wrote file", "path", p, "size", len(f.Content))
	}

	return nil
}
