// Package input provides sources that menus are loaded from.
package input

import (
	"context"

	"github.com/jmylchreest/dropmenu/internal/menu"
)

// Source loads a menu file.
type Source interface {
	// Name returns the source identifier (e.g., "file", "stdin").
	Name() string

	// Load reads and validates the menus.
	Load(ctx context.Context) (*menu.File, error)
}

// StdinName selects standard input as the menu source.
const StdinName = "-"

// NewSource creates a Source for the given path. StdinName or "stdin"
// reads from standard input; anything else is a menu file path.
func NewSource(path string, opts StdinOptions) (Source, error) {
	switch path {
	case "":
		return nil, &SourceError{
			Source:  "file",
			Message: "no menu file given",
		}
	case StdinName, "stdin":
		return NewStdinSource(opts), nil
	default:
		return NewFileSource(path), nil
	}
}

// SourceError represents a source-related error.
type SourceError struct {
	Source  string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
