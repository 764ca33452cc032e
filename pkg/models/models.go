package models

import (
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// GalleriesKey is the site data key holding the gallery index
const GalleriesKey = "galleries"

// GalleryRoot is the directory holding gallery subdirectories and the URL prefix they are served under
type GalleryRoot struct {
	Path      string
	URLPrefix string
}

// Gallery represents one directory of photos.
// Files holds the base names behind PhotoPaths, in the same order.
type Gallery struct {
	Name       string   `json:"name" yaml:"name"`
	PhotoPaths []string `json:"photos" yaml:"photos"`
	Files      []string `json:"-" yaml:"-"`
}

// PageData is the data payload handed to the layout of a gallery page
type PageData struct {
	Layout string   `json:"layout" yaml:"layout"`
	Photos []string `json:"photos" yaml:"photos"`
}

// GalleryPage is the renderable output unit of a gallery
type GalleryPage struct {
	Gallery Gallery  `json:"-" yaml:"-"`
	URL     string   `json:"url" yaml:"url"`
	Data    PageData `json:"data" yaml:"data"`
	Content string   `json:"content" yaml:"content"`
}

// TemplateData returns the page as seen by templates under the "page" key.
// The returned map is fresh on every call so renders never share it.
func (p *GalleryPage) TemplateData() map[string]any {
	photos := make([]string, len(p.Data.Photos))
	copy(photos, p.Data.Photos)
	return map[string]any{
		"name":    p.Gallery.Name,
		"url":     p.URL,
		"layout":  p.Data.Layout,
		"photos":  photos,
		"content": p.Content,
	}
}

// GalleryIndexEntry maps a gallery name to the URL of its page
type GalleryIndexEntry struct {
	Name string
	URL  string
}

// AsMap returns the single-entry {name: url} mapping templates enumerate
func (e GalleryIndexEntry) AsMap() map[string]string {
	return map[string]string{e.Name: e.URL}
}

func (e GalleryIndexEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.AsMap())
}

func (e *GalleryIndexEntry) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return e.fromMap(m)
}

func (e GalleryIndexEntry) MarshalYAML() (any, error) {
	return e.AsMap(), nil
}

func (e *GalleryIndexEntry) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	return e.fromMap(m)
}

func (e *GalleryIndexEntry) fromMap(m map[string]string) error {
	if len(m) != 1 {
		return fmt.Errorf("gallery index entry must have exactly one key, got %d", len(m))
	}
	for name, url := range m {
		e.Name, e.URL = name, url
	}
	return nil
}

// Site is the build-scoped site context shared by collection and rendering
type Site struct {
	Source      string
	Destination string
	Data        map[string]any
	Pages       []*GalleryPage

	mu      sync.Mutex
	entries []GalleryIndexEntry
}

// NewSite creates an empty site for one build
func NewSite(source, destination string) *Site {
	return &Site{
		Source:      source,
		Destination: destination,
		Data:        map[string]any{GalleriesKey: []map[string]string{}},
	}
}

// ResetGalleries clears the gallery index and gallery pages
func (s *Site) ResetGalleries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.Pages = nil
	s.Data[GalleriesKey] = []map[string]string{}
}

// AddGalleries appends collected pages and index entries to the site.
// It is the only place shared site state is mutated during collection.
func (s *Site) AddGalleries(pages []*GalleryPage, index []GalleryIndexEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pages = append(s.Pages, pages...)
	s.entries = append(s.entries, index...)

	maps := make([]map[string]string, 0, len(s.entries))
	for _, entry := range s.entries {
		maps = append(maps, entry.AsMap())
	}
	s.Data[GalleriesKey] = maps
}

// GalleryIndex returns a copy of the gallery index in insertion order
func (s *Site) GalleryIndex() []GalleryIndexEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]GalleryIndexEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// FindPage returns the gallery page with the given gallery name
func (s *Site) FindPage(name string) (*GalleryPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, page := range s.Pages {
		if page.Gallery.Name == name {
			return page, nil
		}
	}
	return nil, fmt.Errorf("gallery not found: %s", name)
}

// TemplateData returns the site as seen by templates under the "site" key
func (s *Site) TemplateData() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := make(map[string]any, len(s.Data))
	for k, v := range s.Data {
		data[k] = v
	}
	return map[string]any{
		"source":      s.Source,
		"destination": s.Destination,
		"data":        data,
	}
}
