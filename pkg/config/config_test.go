package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SITE_SOURCE", "SITE_DESTINATION", "GALLERY_DIRECTORY", "GALLERY_LAYOUT", "LAYOUTS_DIRECTORY"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	src := t.TempDir()
	t.Setenv("SITE_SOURCE", src)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, src, cfg.Source)
	assert.Equal(t, DefaultDestination, cfg.Destination)
	assert.Equal(t, DefaultGalleryDirectory, cfg.GalleryDirectory)
	assert.Equal(t, DefaultGalleryLayout, cfg.GalleryLayout)
	assert.Equal(t, "/galleries", cfg.URLPrefix())
	assert.Equal(t, filepath.Join(src, "galleries"), cfg.GalleryRoot())
	assert.Equal(t, filepath.Join(src, "_site"), cfg.DestinationPath())
}

func TestLoadSiteConfigFile(t *testing.T) {
	clearEnv(t)
	src := t.TempDir()
	t.Setenv("SITE_SOURCE", src)
	yml := "gallery_dir: photos/albums\ngallery_layout: album\ndestination: public\n"
	require.NoError(t, os.WriteFile(filepath.Join(src, SiteConfigFile), []byte(yml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "photos/albums", cfg.GalleryDirectory)
	assert.Equal(t, "album", cfg.GalleryLayout)
	assert.Equal(t, "public", cfg.Destination)
	assert.Equal(t, "/photos/albums", cfg.URLPrefix())
}

func TestEnvironmentOverridesSiteConfigFile(t *testing.T) {
	clearEnv(t)
	src := t.TempDir()
	t.Setenv("SITE_SOURCE", src)
	t.Setenv("GALLERY_LAYOUT", "fancy")
	require.NoError(t, os.WriteFile(filepath.Join(src, SiteConfigFile), []byte("gallery_layout: album\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fancy", cfg.GalleryLayout)
}

func TestLoadRejectsMalformedSiteConfig(t *testing.T) {
	clearEnv(t)
	src := t.TempDir()
	t.Setenv("SITE_SOURCE", src)
	require.NoError(t, os.WriteFile(filepath.Join(src, SiteConfigFile), []byte("gallery_dir: [unterminated\n"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), SiteConfigFile)
}

func TestValidate(t *testing.T) {
	valid := Config{Destination: "_site", GalleryDirectory: "galleries", GalleryLayout: "gallery"}
	require.NoError(t, valid.Validate())

	cases := map[string]struct {
		mutate func(c *Config)
		want   error
	}{
		"empty gallery dir":      {func(c *Config) { c.GalleryDirectory = "/" }, ErrInvalidGalleryDirectory},
		"source as gallery dir":  {func(c *Config) { c.GalleryDirectory = "." }, ErrInvalidGalleryDirectory},
		"dot slash gallery dir":  {func(c *Config) { c.GalleryDirectory = "./" }, ErrInvalidGalleryDirectory},
		"collapsing gallery dir": {func(c *Config) { c.GalleryDirectory = "photos/.." }, ErrInvalidGalleryDirectory},
		"escaping gallery dir":   {func(c *Config) { c.GalleryDirectory = "../outside" }, ErrInvalidGalleryDirectory},
		"absolute gallery dir":   {func(c *Config) { c.GalleryDirectory = "/srv/galleries" }, ErrInvalidGalleryDirectory},
		"blank layout":           {func(c *Config) { c.GalleryLayout = "  " }, ErrGalleryLayoutNotSet},
		"blank destination":      {func(c *Config) { c.Destination = "" }, ErrDestinationNotSet},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			require.ErrorIs(t, c.Validate(), tc.want)
		})
	}
}
