package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gearwright",
	Short: "Gearwright - a persona-routed workshop copilot",
	Long: `Gearwright answers contraption-building questions through one of three
behavioral personas and generates structured engineering schematics with
derived stress estimates.`,
}

func Execute() error {
	return rootCmd.Execute()
}
