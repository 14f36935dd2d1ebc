// Package output provides formatters for the selected menu item.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/dropmenu/internal/tui"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter writes a selection.
type Formatter interface {
	// Format writes the formatted selection to the writer.
	Format(w io.Writer, sel tui.Selection) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatValue    FormatType = "value"
	FormatLabel    FormatType = "label"
	FormatID       FormatType = "id"
	FormatJSON     FormatType = "json"
	FormatYAML     FormatType = "yaml"
	FormatTemplate FormatType = "template"
)

// Formats lists the supported format names.
func Formats() []FormatType {
	return []FormatType{FormatValue, FormatLabel, FormatID, FormatJSON, FormatYAML, FormatTemplate}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // text/template for FormatTemplate
}

// NewFormatter creates a formatter for the named format.
func NewFormatter(format string, opts FormatterOptions) (Formatter, error) {
	switch FormatType(strings.ToLower(strings.TrimSpace(format))) {
	case FormatValue, "":
		return fieldFormatter(Field(FormatValue)), nil
	case FormatLabel:
		return fieldFormatter(Field(FormatLabel)), nil
	case FormatID:
		return fieldFormatter(Field(FormatID)), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatTemplate:
		return NewTemplateFormatter(opts.Template)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Field returns the part of a selection a single-field format prints.
func Field(format FormatType) func(tui.Selection) string {
	return func(sel tui.Selection) string {
		switch format {
		case FormatLabel:
			return sel.Item.Label
		case FormatID:
			return sel.Item.ID
		default:
			return sel.Item.Value
		}
	}
}

// fieldFormatter prints one field followed by a newline.
type fieldFormatter func(tui.Selection) string

func (f fieldFormatter) Format(w io.Writer, sel tui.Selection) error {
	_, err := fmt.Fprintln(w, f(sel))
	return err
}
