package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gallery-site/pkg/models"
	"gallery-site/pkg/services"
)

// newExportCmd creates a new command for exporting the gallery index
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export the gallery index",
		Long:  `Export site.data.galleries, the ordered list of {name: url} entries, in the specified format. Supported formats: json, yaml.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			site, err := services.CollectSite(cfg)
			if err != nil {
				log.Fatalf("Failed to collect galleries: %v", err)
			}

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			exportData(site.GalleryIndex(), format)
		},
	}
}

// exportData prints the gallery index in the specified format
func exportData(index []models.GalleryIndexEntry, format string) {
	data, err := marshalIndex(index, format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Supported formats: json, yaml")
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func marshalIndex(index []models.GalleryIndexEntry, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(index, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(index)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
