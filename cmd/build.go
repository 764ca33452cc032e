package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gallery-site/pkg/services"
)

// newBuildCmd creates a new command for building the site once
func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the site",
		Long:  `Collect all galleries, render one page per gallery and every site template, and write the result to the destination.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg.PrintBuildMessage()

			_, report, err := services.NewBuilder(cfg).Build()
			printReport(report)
			return err
		},
	}
}

// printReport prints the build summary
func printReport(report *services.BuildReport) {
	if report == nil {
		return
	}
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Galleries: %d\n", report.Galleries)
	fmt.Printf("  Gallery pages written: %d\n", report.Pages)
	fmt.Printf("  Templates written: %d\n", report.Templates)
	fmt.Printf("  Photos copied: %d\n", report.Photos)
	fmt.Printf("  Failed renders: %d\n", report.Failed)
}
