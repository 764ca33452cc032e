package main

import (
	"log"

	"gallery-site/pkg/config"
	"gallery-site/pkg/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build the site once
	cfg.PrintBuildMessage()
	if _, _, err := services.NewBuilder(cfg).Build(); err != nil {
		log.Fatalf("Build failed: %v", err)
	}
}
