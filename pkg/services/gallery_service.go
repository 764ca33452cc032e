package services

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"gallery-site/pkg/models"
)

// CollectResult holds everything discovered by one gallery scan
type CollectResult struct {
	Pages []*models.GalleryPage
	Index []models.GalleryIndexEntry
}

// EscapePath percent-encodes characters that are not allowed in a URL path.
// Slashes are kept. Both gallery page URLs and photo URLs go through here.
func EscapePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}

// NormalizePrefix returns prefix with exactly one leading slash and no trailing slash.
// The root prefix is returned as the empty string so joined paths start with a single slash.
func NormalizePrefix(prefix string) string {
	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" {
		return ""
	}
	return "/" + path.Clean(trimmed)
}

// GalleryURL returns the escaped URL of a gallery page
func GalleryURL(urlPrefix, name string) string {
	return EscapePath(NormalizePrefix(urlPrefix) + "/" + name + ".html")
}

// PhotoURL returns the escaped URL of a photo inside a gallery
func PhotoURL(urlPrefix, gallery, photo string) string {
	return EscapePath(NormalizePrefix(urlPrefix) + "/" + gallery + "/" + photo)
}

// CollectDir scans the gallery root on the local filesystem.
// A root that does not exist or is not a directory yields an empty result.
func CollectDir(root models.GalleryRoot, layout string) (*CollectResult, error) {
	info, err := os.Stat(root.Path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		log.Printf("Gallery root %s not found, no galleries collected", root.Path)
		return &CollectResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat gallery root %s: %w", root.Path, err)
	}
	return Collect(os.DirFS(root.Path), root.URLPrefix, layout)
}

// Collect treats every immediate subdirectory of fsys as a gallery and builds its page
// and index entry. Galleries and photos are processed in lexicographic order. Hidden
// entries are skipped. The scan never writes to fsys.
func Collect(fsys fs.FS, urlPrefix, layout string) (*CollectResult, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return &CollectResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read gallery root: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isHidden(entry.Name()) {
			continue
		}
		dir, err := isDir(fsys, entry)
		if err != nil {
			return nil, err
		}
		if dir {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	result := &CollectResult{
		Pages: make([]*models.GalleryPage, 0, len(names)),
		Index: make([]models.GalleryIndexEntry, 0, len(names)),
	}
	for _, name := range names {
		gallery, err := scanGallery(fsys, urlPrefix, name)
		if err != nil {
			return nil, err
		}
		pageURL := GalleryURL(urlPrefix, name)
		result.Pages = append(result.Pages, &models.GalleryPage{
			Gallery: gallery,
			URL:     pageURL,
			Data: models.PageData{
				Layout: layout,
				Photos: gallery.PhotoPaths,
			},
		})
		result.Index = append(result.Index, models.GalleryIndexEntry{Name: name, URL: pageURL})
	}

	log.Printf("Collected %d galleries", len(result.Pages))
	return result, nil
}

func scanGallery(fsys fs.FS, urlPrefix, name string) (models.Gallery, error) {
	entries, err := fs.ReadDir(fsys, name)
	if err != nil {
		return models.Gallery{}, fmt.Errorf("read gallery %s: %w", name, err)
	}

	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !isHidden(entry.Name()) {
			children = append(children, entry.Name())
		}
	}
	sort.Strings(children)

	photos := make([]string, 0, len(children))
	for _, child := range children {
		photos = append(photos, PhotoURL(urlPrefix, name, child))
	}
	return models.Gallery{Name: name, PhotoPaths: photos, Files: children}, nil
}

// isDir reports whether entry is a directory, following symlinks
func isDir(fsys fs.FS, entry fs.DirEntry) (bool, error) {
	if entry.IsDir() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := fs.Stat(fsys, entry.Name())
	if errors.Is(err, fs.ErrNotExist) {
		// dangling link
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", entry.Name(), err)
	}
	return info.IsDir(), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
