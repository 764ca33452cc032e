package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"gallery-site/pkg/config"
)

// Configuration flags
var (
	sourceDir     string
	destination   string
	galleryDir    string
	galleryLayout string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gallery-site",
		Short: "Gallery Site builds static photo gallery pages",
		Long: `Gallery Site is a command line application that turns a directory of photo folders
into one page per gallery, publishes a gallery index to every site template, and lets
templates load YAML data files with the yamlToPage directive.`,
		SilenceUsage: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&sourceDir, "source", "s", "", "Set the SITE_SOURCE (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&destination, "destination", "d", "", "Set the SITE_DESTINATION (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&galleryDir, "gallery-dir", "g", "", "Set the GALLERY_DIRECTORY (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&galleryLayout, "layout", "l", "", "Set the GALLERY_LAYOUT (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newListGalleriesCmd())
	rootCmd.AddCommand(newShowGalleryCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if sourceDir != "" {
		os.Setenv("SITE_SOURCE", sourceDir)
	}

	if destination != "" {
		os.Setenv("SITE_DESTINATION", destination)
	}

	if galleryDir != "" {
		os.Setenv("GALLERY_DIRECTORY", galleryDir)
	}

	if galleryLayout != "" {
		os.Setenv("GALLERY_LAYOUT", galleryLayout)
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}
