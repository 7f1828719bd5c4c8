package importer

import (
	"errors"
	"fmt"
)

// ErrNoDocuments is returned when an import path holds nothing importable.
var ErrNoDocuments = errors.New("no markdown documents found")

// ParseError is returned when a file cannot be turned into a draft.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// UserMessage names the file, which the innermost cause alone would not.
func (e *ParseError) UserMessage() string {
	return fmt.Sprintf("could not import %s: %v", e.Path, e.Cause)
}

// GitignoreReadError is returned when the .gitignore of an imported directory
// exists but cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}

func (e *GitignoreReadError) Unwrap() error { return e.Cause }
