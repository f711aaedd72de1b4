package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Inspect the style preset registry",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all preset ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, registry, err := loadEnvironment()
		if err != nil {
			return err
		}

		for _, s := range registry.All() {
			fmt.Printf("%-20s %-16s %s\n", s.ID, s.Label, s.Description)
		}
		return nil
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one preset in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, registry, err := loadEnvironment()
		if err != nil {
			return err
		}

		style, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("preset not found: %s", args[0])
		}

		data, err := yaml.Marshal(style)
		if err != nil {
			return fmt.Errorf("failed to marshal preset: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
}
