package input

import (
	"context"

	"github.com/jmylchreest/dropmenu/internal/menu"
)

// FileSource reads menus from a YAML file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the source identifier.
func (s *FileSource) Name() string {
	return "file"
}

// Path returns the menu file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads the menu file.
func (s *FileSource) Load(ctx context.Context) (*menu.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := menu.Load(s.path)
	if err != nil {
		return nil, &SourceError{Source: "file", Message: s.path, Err: err}
	}
	return f, nil
}
