// Package theme maps TOML theme files onto lipgloss styles for dropdowns.
// It supports loading themes from ~/.config/dropmenu/themes/, ships a set of
// embedded themes, and can hot-reload the active user theme when its file
// changes on disk.
package theme
