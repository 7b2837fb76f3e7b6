package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hirelens/resume-analyzer/internal/models"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the selectable target roles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, role := range models.RoleCatalog {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), role); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
