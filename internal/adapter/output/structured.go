package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/dropmenu/internal/tui"
)

// record is the serialized form of a selection.
type record struct {
	Menu      string `json:"menu" yaml:"menu"`
	MenuLabel string `json:"menu_label" yaml:"menu_label"`
	ID        string `json:"id" yaml:"id"`
	Label     string `json:"label" yaml:"label"`
	Value     string `json:"value" yaml:"value"`
}

func newRecord(sel tui.Selection) record {
	return record{
		Menu:      sel.MenuID,
		MenuLabel: sel.MenuLabel,
		ID:        sel.Item.ID,
		Label:     sel.Item.Label,
		Value:     sel.Item.Value,
	}
}

// JSONFormatter formats a selection as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the selection as an indented JSON object.
func (f *JSONFormatter) Format(w io.Writer, sel tui.Selection) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newRecord(sel))
}

// YAMLFormatter formats a selection as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes the selection as a YAML mapping.
func (f *YAMLFormatter) Format(w io.Writer, sel tui.Selection) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(newRecord(sel)); err != nil {
		return err
	}
	return encoder.Close()
}
