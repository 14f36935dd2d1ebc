// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/dropmenu/internal/config"
	"github.com/jmylchreest/dropmenu/internal/dropdown"
	"github.com/jmylchreest/dropmenu/internal/menu"
	"github.com/jmylchreest/dropmenu/internal/menubar"
	"github.com/jmylchreest/dropmenu/internal/placement"
	"github.com/jmylchreest/dropmenu/internal/theme"
)

// statusTimeout is how long a status message stays in the footer.
const statusTimeout = 3 * time.Second

// ThemeChangedMsg carries a reloaded theme into the program.
type ThemeChangedMsg struct {
	Theme *theme.Theme
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Selection is the item chosen before the program exited.
type Selection struct {
	MenuID    string
	MenuLabel string
	Item      dropdown.Item
}

// Options configures a Model.
type Options struct {
	Config       *config.Config
	Menus        *menu.File
	Theme        *theme.Theme
	ThemeChanges <-chan *theme.Theme // Reloaded themes; nil disables hot reload
	Logger       *slog.Logger
}

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	bar    *menubar.Bar
	menus  map[string]menu.Menu
	keys   KeyMap
	help   help.Model
	logger *slog.Logger

	themeCh <-chan *theme.Theme

	width  int
	height int
	ready  bool

	// Status message
	statusMsg string
	statusErr bool

	selection *Selection
	quitting  bool
}

// New creates a new TUI model with one dropdown per menu.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	keys := KeyMapFromConfig(cfg.Keys)
	menus := make(map[string]menu.Menu)

	var dropdowns []*dropdown.Dropdown
	if opts.Menus != nil {
		for _, mn := range opts.Menus.Menus {
			menus[mn.ID] = mn
			dropdowns = append(dropdowns, dropdown.New(dropdown.Options{
				ID:              mn.ID,
				Label:           mn.Label,
				Icon:            mn.Icon,
				Items:           mn.DropdownItems(),
				Active:          mn.Active,
				Placement:       mn.PlacementOr(cfg.Dropdown.Placement),
				Theme:           opts.Theme,
				KeyMap:          &keys.Dropdown,
				MaxItems:        cfg.Dropdown.MaxItems,
				DismissOnSelect: cfg.Dropdown.DismissOnSelect,
				Logger:          logger,
			}))
		}
	}

	bar := menubar.New(dropdowns, menubar.Options{
		Origin: placement.Point{},
		Gap:    1,
		KeyMap: &keys.Bar,
		Logger: logger,
	})

	return Model{
		cfg:     cfg,
		bar:     bar,
		menus:   menus,
		keys:    keys,
		help:    help.New(),
		logger:  logger,
		themeCh: opts.ThemeChanges,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return waitForTheme(m.themeCh)
}

// waitForTheme blocks until the next reloaded theme arrives.
func waitForTheme(ch <-chan *theme.Theme) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return ThemeChangedMsg{Theme: t}
	}
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Selection returns the chosen item, or nil if the user quit without one.
func (m Model) Selection() *Selection {
	return m.selection
}

// Bar returns the menu bar.
func (m Model) Bar() *menubar.Bar {
	return m.bar
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, m.bar.Update(msg)

	case ThemeChangedMsg:
		if msg.Theme == nil {
			return m, waitForTheme(m.themeCh)
		}
		m.bar.SetTheme(msg.Theme)
		m.logger.Debug("theme applied", "name", msg.Theme.Name)
		return m, tea.Batch(
			setStatus("Theme reloaded: "+msg.Theme.Name, false),
			waitForTheme(m.themeCh),
		)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case dropdown.SelectedMsg:
		mn := m.menus[msg.DropdownID]
		m.selection = &Selection{
			MenuID:    msg.DropdownID,
			MenuLabel: mn.Label,
			Item:      msg.Item,
		}
		m.logger.Debug("item selected", "menu", msg.DropdownID, "item", msg.Item.ID)
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.bar.Update(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	// Dismiss with nothing open cancels the program.
	case key.Matches(msg, m.keys.Dropdown.Dismiss) && m.bar.Open() == nil:
		m.quitting = true
		return m, tea.Quit
	}

	return m, m.bar.Update(msg)
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	top := m.bar.View()
	if len(m.bar.Dropdowns()) == 0 {
		top = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("No menus loaded")
	}
	footer := m.footer()

	parts := []string{top}
	if n := m.height - lipgloss.Height(top) - lipgloss.Height(footer); n > 0 {
		parts = append(parts, strings.Repeat("\n", n-1))
	}
	parts = append(parts, footer)

	return m.bar.Overlay(strings.Join(parts, "\n"))
}

func (m Model) footer() string {
	s := m.help.View(m.keys)
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s = statusStyle.Render(m.statusMsg) + "\n" + s
	}
	return s
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	Menus  *menu.File
	Loader *theme.Loader // Defaults to a loader over config.ThemesDir()
	Logger *slog.Logger

	// InputTTY reads keys from the controlling terminal, for when stdin
	// carried the menus.
	InputTTY bool
}

// Run starts the TUI and returns the selection, or nil if the user quit
// without choosing an item. The interface is drawn on stderr so stdout
// stays free for the selection.
func Run(opts RunOptions) (*Selection, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loader := opts.Loader
	if loader == nil {
		loader = theme.NewLoader(config.ThemesDir(), logger)
	}

	t := loader.LoadTheme(cfg.Theme.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var themeCh chan *theme.Theme
	if cfg.Theme.HotReload {
		themeCh = make(chan *theme.Theme, 1)
		err := loader.Watch(ctx, func(t *theme.Theme) {
			select {
			case themeCh <- t:
			default:
				logger.Debug("dropping theme reload, previous not yet applied", "name", t.Name)
			}
		})
		if err != nil {
			logger.Warn("failed to start theme watcher", "error", err)
			themeCh = nil
		}
		defer func() {
			if err := loader.Close(); err != nil {
				logger.Debug("failed to close theme watcher", "error", err)
			}
		}()
	}

	m := New(Options{
		Config:       cfg,
		Menus:        opts.Menus,
		Theme:        t,
		ThemeChanges: themeCh,
		Logger:       logger,
	})
	defer m.bar.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(os.Stderr)}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	if cfg.Mouse.Enabled {
		if cfg.Mouse.AllMotion {
			progOpts = append(progOpts, tea.WithMouseAllMotion())
		} else {
			progOpts = append(progOpts, tea.WithMouseCellMotion())
		}
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run tui: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return fm.Selection(), nil
}
