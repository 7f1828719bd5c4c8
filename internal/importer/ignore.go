package importer

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignorer decides whether a path below the import root is skipped.
type ignorer struct {
	matcher gitignore.Matcher
}

// loadIgnorer reads root/.gitignore. A missing file yields an ignorer that
// only skips hidden entries.
func loadIgnorer(fsys fs.FS, root string) (*ignorer, error) {
	p := path.Join(root, ".gitignore")
	content, err := fs.ReadFile(fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return &ignorer{}, nil
	}
	if err != nil {
		return nil, &GitignoreReadError{Path: p, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &ignorer{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ignored reports whether rel, relative to the import root, is skipped.
func (i *ignorer) ignored(rel string, isDir bool) bool {
	segments := splitPath(rel)
	if len(segments) == 0 {
		return false
	}
	if strings.HasPrefix(segments[len(segments)-1], ".") {
		return true
	}
	if i.matcher == nil {
		return false
	}
	return i.matcher.Match(segments, isDir)
}

func splitPath(p string) []string {
	var segments []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
