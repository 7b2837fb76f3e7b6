// Package main provides the HireLens command line client for the resume analysis service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "analyze",
	Short:         "HireLens resume analysis client",
	Long:          "Submit a resume with a target role or job description to the analysis service and print a normalized ATS report.",
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
