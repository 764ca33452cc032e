package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"gallery-site/pkg/models"
	"gallery-site/pkg/services"
)

// newListGalleriesCmd creates a new command for listing galleries
func newListGalleriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-galleries",
		Short: "List all galleries",
		Long:  `List all galleries found in the gallery directory with the number of photos in each.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			site, err := services.CollectSite(cfg)
			if err != nil {
				log.Fatalf("Failed to collect galleries: %v", err)
			}
			listGalleries(site)
		},
	}
}

// listGalleries displays all galleries and their photo counts
func listGalleries(site *models.Site) {
	fmt.Println("Galleries:")
	fmt.Println("==========")

	for _, page := range site.Pages {
		fmt.Printf("  - %s (photos: %d)\n", page.Gallery.Name, len(page.Data.Photos))
		fmt.Printf("    URL: %s\n", page.URL)
	}

	fmt.Println()
	fmt.Printf("Total: %d galleries\n", len(site.Pages))
}
