// Package menu loads menu definitions from YAML files.
//
// A menu file is a list of menus:
//
//	menus:
//	  - label: File
//	    icon: "≡"
//	    placement: bottom-start
//	    items:
//	      - label: Open
//	        value: open
//	      - label: Save
//	        disabled: true
package menu

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/dropmenu/internal/dropdown"
	"github.com/jmylchreest/dropmenu/internal/placement"
)

// ErrNoMenus is returned for a file that defines no menus.
var ErrNoMenus = errors.New("menu file defines no menus")

// File is the top-level document of a menu file.
type File struct {
	Menus []Menu `yaml:"menus"`
}

// Menu is a single dropdown definition.
type Menu struct {
	ID        string               `yaml:"id,omitempty"`
	Label     string               `yaml:"label"`
	Icon      string               `yaml:"icon,omitempty"`
	Placement *placement.Placement `yaml:"placement,omitempty"` // nil = configured default
	Active    bool                 `yaml:"active,omitempty"`
	Items     []Item               `yaml:"items"`
}

// Item is a single menu entry.
type Item struct {
	ID       string `yaml:"id,omitempty"`
	Label    string `yaml:"label"`
	Value    string `yaml:"value,omitempty"` // Printed on selection; defaults to Label
	Disabled bool   `yaml:"disabled,omitempty"`
}

// Load reads and parses a menu file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates menu YAML, filling in missing ids and values.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse menu file: %w", err)
	}

	if err := f.normalize(); err != nil {
		return nil, err
	}
	return &f, nil
}

// New validates menus built in code, filling in missing ids and values.
func New(menus []Menu) (*File, error) {
	f := File{Menus: menus}
	if err := f.normalize(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) normalize() error {
	if len(f.Menus) == 0 {
		return ErrNoMenus
	}

	seen := make(map[string]bool)
	for i := range f.Menus {
		m := &f.Menus[i]
		m.Label = strings.TrimSpace(m.Label)
		if m.Label == "" {
			return fmt.Errorf("menu %d: label is required", i+1)
		}
		if len(m.Items) == 0 {
			return fmt.Errorf("menu %q: at least one item is required", m.Label)
		}
		if m.ID == "" {
			m.ID = slug(m.Label)
		}
		if m.ID == "" {
			m.ID = strconv.Itoa(i + 1)
		}
		if seen[m.ID] {
			return fmt.Errorf("menu %q: duplicate id %q", m.Label, m.ID)
		}
		seen[m.ID] = true

		for j := range m.Items {
			it := &m.Items[j]
			if strings.TrimSpace(it.Label) == "" {
				return fmt.Errorf("menu %q item %d: label is required", m.Label, j+1)
			}
			if it.ID == "" {
				it.ID = m.ID + "." + strconv.Itoa(j+1)
			}
			if it.Value == "" {
				it.Value = it.Label
			}
		}
	}
	return nil
}

// DropdownItems converts the menu's items for a dropdown.
func (m Menu) DropdownItems() []dropdown.Item {
	items := make([]dropdown.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = dropdown.Item{
			ID:       it.ID,
			Label:    it.Label,
			Value:    it.Value,
			Disabled: it.Disabled,
		}
	}
	return items
}

// PlacementOr returns the menu's placement, or def when unset.
func (m Menu) PlacementOr(def placement.Placement) placement.Placement {
	if m.Placement == nil {
		return def
	}
	return *m.Placement
}

// Marshal encodes the file as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
