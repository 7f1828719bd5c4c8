// Package importer turns markdown files on disk into document drafts.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/folio/internal/export"
	"gopkg.in/yaml.v3"
)

// Draft is a parsed document that has not been stored yet.
type Draft struct {
	Title    string
	Text     string
	Icon     string
	Color    string
	Template bool
	// Path is the file the draft came from, relative to the import root.
	Path string
}

var extensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ImportPath reads a file or a directory from the local filesystem.
func ImportPath(p string) ([]Draft, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", p, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return Import(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	}
	return Import(os.DirFS(abs), ".")
}

// Import reads root from fsys. A file yields a single draft; a directory is
// walked for markdown files, skipping hidden and .gitignored entries. Drafts
// are returned in walk order, which is lexical.
func Import(fsys fs.FS, root string) ([]Draft, error) {
	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !extensions[strings.ToLower(path.Ext(root))] {
			return nil, &ParseError{Path: root, Cause: fmt.Errorf("unsupported file type %q", path.Ext(root))}
		}
		data, err := fs.ReadFile(fsys, root)
		if err != nil {
			return nil, err
		}
		d, err := Parse(path.Base(root), data)
		if err != nil {
			return nil, err
		}
		return []Draft{d}, nil
	}

	ig, err := loadIgnorer(fsys, root)
	if err != nil {
		return nil, err
	}

	var drafts []Draft
	err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := p
		if root != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		}
		if ig.ignored(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !extensions[strings.ToLower(path.Ext(p))] {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		draft, err := Parse(rel, data)
		if err != nil {
			return err
		}
		drafts = append(drafts, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoDocuments)
	}
	return drafts, nil
}

// Parse reads a markdown file with optional YAML front matter. The title comes
// from the front matter, then a leading "# " heading (which is removed from the
// text), then the file name.
func Parse(name string, data []byte) (Draft, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	draft := Draft{Path: name}

	body, fm, err := splitFrontMatter(data)
	if err != nil {
		return Draft{}, &ParseError{Path: name, Cause: err}
	}
	if fm != nil {
		var meta export.FrontMatter
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return Draft{}, &ParseError{Path: name, Cause: fmt.Errorf("front matter: %w", err)}
		}
		draft.Title = meta.Title
		draft.Icon = meta.Icon
		draft.Color = meta.Color
		draft.Template = meta.Template
	}

	text := strings.TrimLeft(string(body), "\n")
	if heading, rest, ok := leadingHeading(text); ok && (draft.Title == "" || draft.Title == heading) {
		draft.Title = heading
		text = strings.TrimLeft(rest, "\n")
	}
	if draft.Title == "" {
		draft.Title = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	draft.Text = text
	return draft, nil
}

var errUnterminated = errors.New("front matter is not terminated")

func splitFrontMatter(data []byte) (body, fm []byte, err error) {
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return data, nil, nil
	}
	rest := data[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return rest[len("---\n"):], nil, nil
	}
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return nil, rest[:len(rest)-len("\n---")], nil
		}
		return nil, nil, errUnterminated
	}
	return rest[end+len("\n---\n"):], rest[:end], nil
}

func leadingHeading(text string) (heading, rest string, ok bool) {
	line, rest, _ := strings.Cut(text, "\n")
	if !strings.HasPrefix(line, "# ") {
		return "", "", false
	}
	return strings.TrimSpace(line[2:]), rest, true
}
