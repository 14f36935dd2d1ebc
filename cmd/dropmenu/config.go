package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dropmenu/internal/config"
	"github.com/jmylchreest/dropmenu/internal/menu"
)

var configInitOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and an example menu",
	Long: `Write the default configuration to the config path, and an example
menu file to ~/.config/dropmenu/menu.yaml if none exists.

Existing config files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := toml.Marshal(getConfig())
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing config file")
}

func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := initConfig(path, configInitOpts.force); err != nil {
		return err
	}
	fmt.Println("Wrote", path)

	menuPath := config.MenuPath()
	written, err := initMenu(menuPath)
	if err != nil {
		return err
	}
	if written {
		fmt.Println("Wrote", menuPath)
	}
	return nil
}

func initConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}
	return config.DefaultConfig().Save(path)
}

// initMenu writes the example menu unless path already exists.
func initMenu(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create menu directory: %w", err)
	}

	data, err := exampleMenu().Marshal()
	if err != nil {
		return false, fmt.Errorf("failed to marshal example menu: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write menu file: %w", err)
	}
	return true, nil
}

func exampleMenu() *menu.File {
	return &menu.File{Menus: []menu.Menu{
		{
			Label: "Session",
			Icon:  "⏻",
			Items: []menu.Item{
				{Label: "Lock", Value: "loginctl lock-session"},
				{Label: "Log out", Value: "loginctl terminate-user $USER"},
				{Label: "Suspend", Value: "systemctl suspend"},
				{Label: "Reboot", Value: "systemctl reboot"},
				{Label: "Power off", Value: "systemctl poweroff"},
			},
		},
		{
			Label: "Apps",
			Items: []menu.Item{
				{Label: "Terminal", Value: "foot"},
				{Label: "Browser", Value: "firefox"},
				{Label: "Files", Value: "nautilus", Disabled: true},
			},
		},
	}}
}
