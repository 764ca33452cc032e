package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SiteConfigFile is the optional site configuration file read from the source directory
const SiteConfigFile = "_config.yml"

// Defaults
const (
	DefaultSource           = "."
	DefaultDestination      = "_site"
	DefaultGalleryDirectory = "galleries"
	DefaultGalleryLayout    = "gallery"
	DefaultLayoutsDirectory = "_layouts"
)

// Config holds all configuration for a site build
type Config struct {
	Source           string
	Destination      string
	GalleryDirectory string
	GalleryLayout    string
	LayoutsDirectory string
}

// fileConfig mirrors the keys accepted in _config.yml
type fileConfig struct {
	Destination      string `yaml:"destination"`
	GalleryDirectory string `yaml:"gallery_dir"`
	GalleryLayout    string `yaml:"gallery_layout"`
	LayoutsDirectory string `yaml:"layouts_dir"`
}

// ErrInvalidGalleryDirectory is returned when the gallery directory is empty, absolute or escapes the source
var ErrInvalidGalleryDirectory = errors.New("gallery directory must be a relative path inside the site source")

// ErrGalleryLayoutNotSet is returned when no gallery layout is configured
var ErrGalleryLayoutNotSet = errors.New("gallery layout not set")

// ErrDestinationNotSet is returned when the destination directory is empty
var ErrDestinationNotSet = errors.New("destination directory not set")

// Load loads configuration from defaults, <source>/_config.yml and environment variables,
// in increasing order of precedence. A .env file in the working directory is honoured.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Source:           envOr("SITE_SOURCE", DefaultSource),
		Destination:      DefaultDestination,
		GalleryDirectory: DefaultGalleryDirectory,
		GalleryLayout:    DefaultGalleryLayout,
		LayoutsDirectory: DefaultLayoutsDirectory,
	}

	if err := cfg.applyFile(filepath.Join(cfg.Source, SiteConfigFile)); err != nil {
		return nil, err
	}

	cfg.Destination = envOr("SITE_DESTINATION", cfg.Destination)
	cfg.GalleryDirectory = envOr("GALLERY_DIRECTORY", cfg.GalleryDirectory)
	cfg.GalleryLayout = envOr("GALLERY_LAYOUT", cfg.GalleryLayout)
	cfg.LayoutsDirectory = envOr("LAYOUTS_DIRECTORY", cfg.LayoutsDirectory)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(name string) error {
	data, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if fc.Destination != "" {
		c.Destination = fc.Destination
	}
	if fc.GalleryDirectory != "" {
		c.GalleryDirectory = fc.GalleryDirectory
	}
	if fc.GalleryLayout != "" {
		c.GalleryLayout = fc.GalleryLayout
	}
	if fc.LayoutsDirectory != "" {
		c.LayoutsDirectory = fc.LayoutsDirectory
	}
	return nil
}

// Validate checks the configuration for values the build cannot work with
func (c *Config) Validate() error {
	dir := strings.Trim(filepath.ToSlash(c.GalleryDirectory), "/")
	if dir == "" || filepath.IsAbs(c.GalleryDirectory) {
		return ErrInvalidGalleryDirectory
	}
	if clean := path.Clean(dir); clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return ErrInvalidGalleryDirectory
	}
	if strings.TrimSpace(c.GalleryLayout) == "" {
		return ErrGalleryLayoutNotSet
	}
	if strings.TrimSpace(c.Destination) == "" {
		return ErrDestinationNotSet
	}
	return nil
}

// GalleryRoot returns the filesystem directory holding the galleries
func (c *Config) GalleryRoot() string {
	return filepath.Join(c.Source, filepath.FromSlash(c.GalleryDirectory))
}

// URLPrefix returns the URL path galleries are served under, e.g. "/galleries"
func (c *Config) URLPrefix() string {
	return "/" + path.Clean(strings.Trim(filepath.ToSlash(c.GalleryDirectory), "/"))
}

// DestinationPath returns the absolute-or-relative output directory resolved against the source
func (c *Config) DestinationPath() string {
	if filepath.IsAbs(c.Destination) {
		return c.Destination
	}
	return filepath.Join(c.Source, c.Destination)
}

// LayoutsPath returns the directory holding layout templates
func (c *Config) LayoutsPath() string {
	if filepath.IsAbs(c.LayoutsDirectory) {
		return c.LayoutsDirectory
	}
	return filepath.Join(c.Source, c.LayoutsDirectory)
}

// PrintBuildMessage prints where the build reads from and writes to
func (c *Config) PrintBuildMessage() {
	fmt.Printf("Source: %s\n", c.Source)
	fmt.Printf("Destination: %s\n", c.DestinationPath())
	fmt.Printf("Galleries: %s (served under %s)\n", c.GalleryRoot(), c.URLPrefix())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
