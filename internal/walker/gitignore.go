package walker

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreStack tracks .gitignore rules as we descend into directories.
// filepath.WalkDir visits depth first, so a directory's layer stays valid
// until the walk leaves it.
type ignoreStack struct {
	enabled bool
	layers  []ignoreLayer
}

type ignoreLayer struct {
	dir    string
	parser *ignore.GitIgnore
}

func newIgnoreStack(enabled bool) *ignoreStack {
	return &ignoreStack{enabled: enabled}
}

// enter drops layers the walk has left and pushes the .gitignore of dir, if any.
func (s *ignoreStack) enter(dir string) {
	if !s.enabled {
		return
	}
	s.trim(dir)

	parser, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		// no .gitignore or unreadable: nothing to push
		return
	}
	s.layers = append(s.layers, ignoreLayer{dir: dir, parser: parser})
}

func (s *ignoreStack) trim(path string) {
	for len(s.layers) > 0 {
		if within(path, s.layers[len(s.layers)-1].dir) {
			return
		}
		s.layers = s.layers[:len(s.layers)-1]
	}
}

// within reports whether path is dir or lies below it. WalkDir paths are
// lexical, so "." contains every relative path it yields.
func within(path, dir string) bool {
	if path == dir || dir == "." {
		return true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// isIgnored checks path against every active layer that contains it.
func (s *ignoreStack) isIgnored(path string, isDir bool) bool {
	if !s.enabled {
		return false
	}
	s.trim(filepath.Dir(path))

	for _, l := range s.layers {
		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isDir {
			rel += "/"
		}
		if l.parser.MatchesPath(rel) {
			return true
		}
	}
	return false
}
