package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"

	"gallery-site/pkg/config"
	"gallery-site/pkg/models"
	"gallery-site/pkg/render"
)

// BuildReport summarizes a build
type BuildReport struct {
	Galleries int
	Pages     int
	Templates int
	Photos    int
	Failed    int
}

// Builder runs site builds for one configuration
type Builder struct {
	config *config.Config
}

// NewBuilder creates a builder for cfg
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{config: cfg}
}

// CollectSite scans the configured gallery root and returns a site holding the gallery
// pages and the gallery index. Nothing is rendered or written.
func CollectSite(cfg *config.Config) (*models.Site, error) {
	site := models.NewSite(cfg.Source, cfg.DestinationPath())
	if err := collectInto(site, cfg); err != nil {
		return nil, err
	}
	return site, nil
}

func collectInto(site *models.Site, cfg *config.Config) error {
	root := models.GalleryRoot{Path: cfg.GalleryRoot(), URLPrefix: cfg.URLPrefix()}
	log.Printf("Collecting galleries from %s", root.Path)

	result, err := CollectDir(root, cfg.GalleryLayout)
	if err != nil {
		return fmt.Errorf("collect galleries: %w", err)
	}
	site.ResetGalleries()
	site.AddGalleries(result.Pages, result.Index)
	return nil
}

// Build collects galleries, renders gallery pages and site templates, and writes them to
// the destination. Template and layout directive errors abort the build before anything is
// rendered. A failed render skips only that output; all render failures are returned joined.
func (b *Builder) Build() (*models.Site, *BuildReport, error) {
	cfg := b.config
	dest := cfg.DestinationPath()
	report := &BuildReport{}

	templates, err := b.parseTemplates()
	if err != nil {
		return nil, report, err
	}

	site := models.NewSite(cfg.Source, dest)
	if err := collectInto(site, cfg); err != nil {
		return nil, report, err
	}
	report.Galleries = len(site.Pages)

	layouts := render.NewLayoutStore(cfg.LayoutsPath())
	if len(site.Pages) > 0 {
		if err := layouts.Load(cfg.GalleryLayout); err != nil {
			return nil, report, err
		}
	}

	var errs []error
	for _, page := range site.Pages {
		if err := b.renderGallery(site, layouts, page); err != nil {
			log.Printf("Error rendering gallery %s: %v", page.Gallery.Name, err)
			errs = append(errs, err)
			report.Failed++
			continue
		}
		report.Pages++

		copied, err := b.copyPhotos(page.Gallery)
		report.Photos += copied
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, tmpl := range templates {
		if err := b.renderTemplate(site, tmpl); err != nil {
			log.Printf("Error rendering template %s: %v", tmpl.Name(), err)
			errs = append(errs, err)
			report.Failed++
			continue
		}
		report.Templates++
	}

	log.Printf("Built %d gallery pages, %d templates, %d photos (%d failed)",
		report.Pages, report.Templates, report.Photos, report.Failed)
	return site, report, errors.Join(errs...)
}

func (b *Builder) renderGallery(site *models.Site, layouts *render.LayoutStore, page *models.GalleryPage) error {
	log.Printf("Rendering gallery page %s", page.URL)
	ctx := render.NewContext(site.TemplateData(), page.TemplateData(), page.Content)

	var buf bytes.Buffer
	if err := layouts.Render(&buf, page.Data.Layout, ctx); err != nil {
		return fmt.Errorf("render gallery %s: %w", page.Gallery.Name, err)
	}
	return writeOutput(b.galleryOutputPath(page.Gallery.Name+".html"), &buf)
}

func (b *Builder) renderTemplate(site *models.Site, tmpl *render.Template) error {
	rel := tmpl.Name()
	log.Printf("Rendering template %s", rel)
	page := map[string]any{
		"path": rel,
		"url":  "/" + rel,
	}
	ctx := render.NewContext(site.TemplateData(), page, "")

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return err
	}
	return writeOutput(filepath.Join(b.config.DestinationPath(), filepath.FromSlash(rel)), &buf)
}

// copyPhotos copies the regular files of a gallery next to its page so photo URLs resolve
func (b *Builder) copyPhotos(gallery models.Gallery) (int, error) {
	srcDir := filepath.Join(b.config.GalleryRoot(), gallery.Name)
	copied := 0
	for _, name := range gallery.Files {
		src := filepath.Join(srcDir, name)
		info, err := os.Stat(src)
		if err != nil {
			return copied, fmt.Errorf("copy photo %s: %w", src, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		f, err := os.Open(src)
		if err != nil {
			return copied, fmt.Errorf("copy photo %s: %w", src, err)
		}
		err = writeOutput(b.galleryOutputPath(filepath.Join(gallery.Name, name)), f)
		f.Close()
		if err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func (b *Builder) galleryOutputPath(rel string) string {
	return filepath.Join(b.config.DestinationPath(), filepath.FromSlash(NormalizePrefix(b.config.URLPrefix())), rel)
}

// parseTemplates finds and parses every site template. Any parse or directive error is returned
// before anything is rendered.
func (b *Builder) parseTemplates() ([]*render.Template, error) {
	names, err := b.findTemplates()
	if err != nil {
		return nil, err
	}
	templates := make([]*render.Template, 0, len(names))
	for _, name := range names {
		tmpl, err := render.ParseFile(name, filepath.Join(b.config.Source, filepath.FromSlash(name)))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// findTemplates returns the slash-separated source-relative paths of all *.html templates,
// skipping hidden and underscore-prefixed entries, the gallery root, the layouts and the destination.
func (b *Builder) findTemplates() ([]string, error) {
	src, err := filepath.Abs(b.config.Source)
	if err != nil {
		return nil, err
	}
	skip := map[string]bool{}
	for _, dir := range []string{b.config.GalleryRoot(), b.config.LayoutsPath(), b.config.DestinationPath()} {
		if abs, err := filepath.Abs(dir); err == nil {
			skip[abs] = true
		}
	}

	var names []string
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == src {
			return nil
		}
		base := d.Name()
		if d.IsDir() {
			if skip[path] || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || filepath.Ext(base) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find templates in %s: %w", src, err)
	}
	sort.Strings(names)
	return names, nil
}

func writeOutput(name string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", name, err)
	}
	if err := atomic.WriteFile(name, r); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
