package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/dropmenu/internal/tui"
)

// templateData is the data passed to output templates.
type templateData struct {
	Menu      string
	MenuLabel string
	ID        string
	Label     string
	Value     string
}

// TemplateFormatter formats a selection with a text/template.
type TemplateFormatter struct {
	template *template.Template
}

// NewTemplateFormatter parses text as a template. A trailing newline is
// added to the output when the template does not end with one.
func NewTemplateFormatter(text string) (*TemplateFormatter, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: template format needs a template", ErrUnknownFormat)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	tmpl, err := template.New("output").Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse output template: %w", err)
	}
	return &TemplateFormatter{template: tmpl}, nil
}

// Format executes the template against the selection.
func (f *TemplateFormatter) Format(w io.Writer, sel tui.Selection) error {
	return f.template.Execute(w, templateData{
		Menu:      sel.MenuID,
		MenuLabel: sel.MenuLabel,
		ID:        sel.Item.ID,
		Label:     sel.Item.Label,
		Value:     sel.Item.Value,
	})
}

// templateFuncs returns helper functions for templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
		"quote": func(s string) string { return fmt.Sprintf("%q", s) },
	}
}
