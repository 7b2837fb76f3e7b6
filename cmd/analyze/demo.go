package main

import (
	"github.com/spf13/cobra"

	"hirelens/resume-analyzer/internal/models"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show the built-in demo report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeView(cmd, models.DemoView(), true, demoJSON, demoChart)
	},
}

var (
	demoJSON  bool
	demoChart string
)

func init() {
	demoCmd.Flags().BoolVar(&demoJSON, "json", false, "Print the demo view as JSON")
	demoCmd.Flags().StringVar(&demoChart, "chart", "", "Write the demo score chart as PNG to this path")

	rootCmd.AddCommand(demoCmd)
}
