package source

import (
	"fmt"
	"path"
	"path/filepath"
)

// Info describes the file a capture boundary originates from: a normalized
// relative path and the base file name derived from it. Both are treated as
// opaque text by identifier synthesis, except for the leading "./" that
// hashing strips.
type Info struct {
	RelPath  string
	FileName string
}

// New builds an Info from a relative path. Separators are normalized to "/";
// a leading "./" is kept as supplied. The only rejected inputs are paths
// that name no file at all, since those cannot participate in extraction.
func New(relPath string) (Info, error) {
	rel := filepath.ToSlash(relPath)
	name := path.Base(rel)
	if rel == "" || name == "." || name == ".." || name == "/" {
		return Info{}, fmt.Errorf("source path %q names no file", relPath)
	}
	return Info{RelPath: rel, FileName: name}, nil
}
