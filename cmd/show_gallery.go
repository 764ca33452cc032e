package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"gallery-site/pkg/models"
	"gallery-site/pkg/services"
)

// newShowGalleryCmd creates a new command for showing gallery details
func newShowGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-gallery [name]",
		Short: "Show photos in a specific gallery",
		Long:  `Show the page URL, layout and photo URLs of a gallery identified by its directory name.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			site, err := services.CollectSite(cfg)
			if err != nil {
				log.Fatalf("Failed to collect galleries: %v", err)
			}
			showGallery(site, args[0])
		},
	}
}

// showGallery displays details about a specific gallery
func showGallery(site *models.Site, name string) {
	page, err := site.FindPage(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Gallery: %s\n", page.Gallery.Name)
	fmt.Printf("Page: %s\n", page.URL)
	fmt.Printf("Layout: %s\n", page.Data.Layout)
	fmt.Printf("Photos: %d\n", len(page.Data.Photos))
	fmt.Println("================")

	for i, photo := range page.Data.Photos {
		fmt.Printf("%d. %s\n", i+1, photo)
	}
}
