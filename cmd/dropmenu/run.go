package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dropmenu/internal/adapter/input"
	"github.com/jmylchreest/dropmenu/internal/adapter/output"
	"github.com/jmylchreest/dropmenu/internal/placement"
	"github.com/jmylchreest/dropmenu/internal/tui"
)

// loadTimeout bounds reading the menu source.
const loadTimeout = 10 * time.Second

var runOpts struct {
	menuFile  string
	prompt    string
	separator string
	placement string
	format    string
	template  string
	copy      bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the menus and print the selection",
	Long: `Show the menus and print the chosen item to stdout.

The interface is drawn on stderr so the selection can be captured:

  choice=$(dropmenu --menu ~/menus/power.yaml) && systemctl "$choice"
  printf 'Firefox\tfirefox\nTerminal\tfoot\n' | dropmenu -m - -s '\t'

Key bindings:
  enter/space  Open or close the focused menu, choose an item
  ←/→, tab     Move between menus
  ↑/↓, j/k     Move between items
  esc          Close the menu, or quit when none is open
  ?            Show help
  q            Quit`,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runOpts.menuFile, "menu", "m", "",
		"Menu file, or - for stdin (default: ~/.config/dropmenu/menu.yaml)")
	cmd.Flags().StringVarP(&runOpts.prompt, "prompt", "p", input.DefaultPrompt,
		"Menu label when reading plain lines from stdin")
	cmd.Flags().StringVarP(&runOpts.separator, "separator", "s", "",
		"Split stdin lines into label and value")
	cmd.Flags().StringVar(&runOpts.placement, "placement", "",
		"Default placement for menus that set none (e.g. bottom-start, right, auto)")
	cmd.Flags().StringVarP(&runOpts.format, "format", "f", "",
		"Output format: value, label, id, json, yaml, template")
	cmd.Flags().StringVar(&runOpts.template, "template", "",
		"Go template for --format template (fields: .Menu .MenuLabel .ID .Label .Value)")
	cmd.Flags().BoolVarP(&runOpts.copy, "copy", "c", false,
		"Also copy the selected value to the clipboard")
}

func runMenu(cmd *cobra.Command, args []string) error {
	c := getConfig()

	path := runOpts.menuFile
	if path == "" {
		path = c.MenuFile()
	}

	src, err := input.NewSource(path, input.StdinOptions{
		Prompt:    runOpts.prompt,
		Separator: unescape(runOpts.separator),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	menus, err := src.Load(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to load menus: %w", err)
	}
	logger.Debug("menus loaded", "source", src.Name(), "count", len(menus.Menus))

	if runOpts.placement != "" {
		p, err := placement.Parse(runOpts.placement)
		if err != nil {
			return err
		}
		c.Dropdown.Placement = p
	}

	format := c.Output.Format
	if runOpts.format != "" {
		format = runOpts.format
	}
	tmpl := c.Output.Template
	if runOpts.template != "" {
		tmpl = runOpts.template
	}
	formatter, err := output.NewFormatter(format, output.FormatterOptions{Template: tmpl})
	if err != nil {
		return err
	}

	sel, err := tui.Run(tui.RunOptions{
		Config:   c,
		Menus:    menus,
		Logger:   logger,
		InputTTY: src.Name() == "stdin",
	})
	if err != nil {
		return err
	}
	if sel == nil {
		return errCancelled
	}

	if err := formatter.Format(os.Stdout, *sel); err != nil {
		return fmt.Errorf("failed to write selection: %w", err)
	}

	if runOpts.copy || c.Output.Copy {
		value := output.Field(output.FormatValue)(*sel)
		if err := output.CopyToClipboard(context.Background(), value, c.Output.ClipboardCommand); err != nil {
			logger.Warn("failed to copy selection", "error", err)
		}
	}
	return nil
}

// unescape turns the common escapes typed on a command line into the
// characters they name.
func unescape(s string) string {
	switch s {
	case `\t`:
		return "\t"
	case `\0`:
		return "\x00"
	}
	return s
}
