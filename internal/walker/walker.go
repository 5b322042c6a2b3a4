package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrIsDir is reported for a directory argument when walking is not recursive.
var ErrIsDir = errors.New("is a directory")

// FileEntry represents a file discovered during traversal.
type FileEntry struct {
	Path string
	Size int64
}

// WalkOptions configures directory traversal behavior.
type WalkOptions struct {
	Recursive bool
	NoIgnore  bool // skip .gitignore processing
	Hidden    bool // include hidden files and directories
}

// WalkError records a path that could not be visited.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error { return e.Err }

// Walk sends every regular file named by roots on the returned channel,
// descending into directories when opts.Recursive is set. Both channels are
// closed when the walk ends or ctx is cancelled; callers must drain errors.
func Walk(ctx context.Context, roots []string, opts WalkOptions) (<-chan FileEntry, <-chan error) {
	fileCh := make(chan FileEntry, 256)
	errCh := make(chan error, 16)

	w := &walk{ctx: ctx, opts: opts, fileCh: fileCh, errCh: errCh}

	go func() {
		defer close(fileCh)
		defer close(errCh)

		for _, root := range roots {
			info, err := os.Stat(root)
			if err != nil {
				w.fail(root, err)
				continue
			}
			if !info.IsDir() {
				if !w.send(FileEntry{Path: root, Size: info.Size()}) {
					return
				}
				continue
			}
			if !opts.Recursive {
				w.fail(root, ErrIsDir)
				continue
			}
			if err := w.dir(root); err != nil {
				return
			}
		}
	}()

	return fileCh, errCh
}

type walk struct {
	ctx    context.Context
	opts   WalkOptions
	fileCh chan<- FileEntry
	errCh  chan<- error
}

func (w *walk) send(e FileEntry) bool {
	select {
	case w.fileCh <- e:
		return true
	case <-w.ctx.Done():
		return false
	}
}

func (w *walk) fail(path string, err error) {
	select {
	case w.errCh <- &WalkError{Path: path, Err: err}:
	case <-w.ctx.Done():
	}
}

func (w *walk) dir(root string) error {
	ignores := newIgnoreStack(!w.opts.NoIgnore)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.fail(path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if w.ctx.Err() != nil {
			return w.ctx.Err()
		}

		if path != root {
			name := d.Name()
			if name == ".git" && d.IsDir() {
				return fs.SkipDir
			}
			if !w.opts.Hidden && strings.HasPrefix(name, ".") {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if ignores.isIgnored(path, d.IsDir()) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			ignores.enter(path)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w.fail(path, err)
			return nil
		}
		if !w.send(FileEntry{Path: path, Size: info.Size()}) {
			return w.ctx.Err()
		}
		return nil
	})
}
