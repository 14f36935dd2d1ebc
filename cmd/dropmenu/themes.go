package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dropmenu/internal/config"
	"github.com/jmylchreest/dropmenu/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled themes and user themes from ~/.config/dropmenu/themes.

A user theme with the same name as a bundled theme replaces it. The
active theme is marked with *.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes, err := theme.ListAvailableThemes(config.ThemesDir())
	if err != nil {
		logger.Warn("failed to read user themes", "dir", config.ThemesDir(), "error", err)
	}
	return writeThemes(os.Stdout, themes, getConfig().Theme.Name)
}

func writeThemes(w io.Writer, themes []theme.ThemeInfo, active string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tSOURCE\tMODIFIED")
	for _, t := range themes {
		marker := ""
		if t.Name == active {
			marker = "*"
		}
		source, modified := "bundled", "-"
		if !t.IsBundled {
			source = t.Path
			modified = humanize.Time(t.ModTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, t.Name, source, modified)
	}
	return tw.Flush()
}
