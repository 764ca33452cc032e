package render

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/eknkc/pug"
	"github.com/eknkc/pug/compiler"
	"github.com/patrickmn/go-cache"
)

// ErrLayoutNotFound is returned when neither <name>.pug nor <name>.html exists in the layouts directory
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutStore compiles layouts on first use and keeps them for the lifetime of the store.
// Pug layouts are tried first, then html templates. Both may use the yamlToPage directive.
type LayoutStore struct {
	dir     string
	layouts *cache.Cache
}

// NewLayoutStore creates a layout store reading from dir. Create one per build so that
// edited layouts are picked up by the next build.
func NewLayoutStore(dir string) *LayoutStore {
	return &LayoutStore{
		dir:     dir,
		layouts: cache.New(cache.NoExpiration, 0),
	}
}

// Load compiles the named layout, or returns the already compiled one
func (s *LayoutStore) Load(name string) error {
	_, err := s.lookup(name)
	return err
}

// Render renders the named layout against ctx into w. Nothing is written to w on failure.
func (s *LayoutStore) Render(w io.Writer, name string, ctx *Context) error {
	layout, err := s.lookup(name)
	if err != nil {
		return err
	}
	return layout.Execute(w, ctx)
}

func (s *LayoutStore) lookup(name string) (*Template, error) {
	if layout, found := s.layouts.Get(name); found {
		return layout.(*Template), nil
	}

	var layout *Template
	pugFile := filepath.Join(s.dir, name+".pug")
	htmlFile := filepath.Join(s.dir, name+".html")
	switch {
	case fileExists(pugFile):
		log.Printf("Compiling layout %s", pugFile)
		// pug resolves files inside Options.Dir, so the name stays relative to it
		tmpl, err := pug.CompileFile(filepath.ToSlash(name+".pug"), pug.Options{
			Dir:   compiler.FsDir(s.dir),
			Funcs: parseFuncs(),
		})
		if err != nil {
			return nil, fmt.Errorf("compile layout %s: %w", pugFile, err)
		}
		if err := ValidateDirectives(tmpl); err != nil {
			return nil, err
		}
		layout = &Template{name: name, tmpl: tmpl}
	case fileExists(htmlFile):
		log.Printf("Compiling layout %s", htmlFile)
		tmpl, err := ParseFile(name, htmlFile)
		if err != nil {
			return nil, err
		}
		layout = tmpl
	default:
		return nil, fmt.Errorf("%w: %s in %s", ErrLayoutNotFound, name, s.dir)
	}

	s.layouts.Set(name, layout, cache.NoExpiration)
	return layout, nil
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
