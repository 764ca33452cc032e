package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
)

// Context is the data available to one render: the site, the page being rendered and its content.
// A Context belongs to a single render and must not be shared between concurrent renders.
type Context struct {
	Site    map[string]any
	Page    map[string]any
	Content string
}

// NewContext creates a render context. A nil page gets a fresh map.
func NewContext(site, page map[string]any, content string) *Context {
	if page == nil {
		page = map[string]any{}
	}
	return &Context{Site: site, Page: page, Content: content}
}

// Data returns the value templates are executed against
func (c *Context) Data() map[string]any {
	return map[string]any{
		"site":    c.Site,
		"page":    c.Page,
		"content": c.Content,
	}
}

// injectYAML is the render-time implementation of the directive.
// It replaces page.yml for the rest of the render and writes nothing.
func (c *Context) injectYAML(path string) (string, error) {
	value, err := LoadYAML(path)
	if err != nil {
		return "", err
	}
	c.Page[InjectedKey] = value
	return "", nil
}

// Template is a parsed html template with validated directive calls
type Template struct {
	name string
	tmpl *template.Template
}

// Parse parses src and validates its directive calls
func Parse(name, src string) (*Template, error) {
	tmpl, err := template.New(name).Funcs(parseFuncs()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	if err := ValidateDirectives(tmpl); err != nil {
		return nil, err
	}
	return &Template{name: name, tmpl: tmpl}, nil
}

// ParseFile reads and parses a template file
func ParseFile(name, filename string) (*Template, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", filename, err)
	}
	return Parse(name, string(src))
}

// Name returns the template name
func (t *Template) Name() string {
	return t.name
}

// Execute renders the template against ctx. The output is buffered so nothing reaches w
// when the render fails.
func (t *Template) Execute(w io.Writer, ctx *Context) error {
	clone, err := t.tmpl.Clone()
	if err != nil {
		return fmt.Errorf("clone template %s: %w", t.name, err)
	}
	clone.Funcs(template.FuncMap{DirectiveName: ctx.injectYAML})

	var buf bytes.Buffer
	if err := clone.Execute(&buf, ctx.Data()); err != nil {
		return fmt.Errorf("render template %s: %w", t.name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}
