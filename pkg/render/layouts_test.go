package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutStoreRendersPugLayout(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "gallery.pug", "div\n  p Photos\n")

	store := NewLayoutStore(dir)
	var out bytes.Buffer
	require.NoError(t, store.Render(&out, "gallery", NewContext(nil, map[string]any{"photos": []string{"/a.jpg"}}, "")))
	assert.Contains(t, out.String(), "<p>Photos</p>")
}

func TestLayoutStorePugLayoutUsesDirective(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir, "meta.yml", "caption: Summer\n")
	writeData(t, dir, "gallery.pug", `div {{ yamlToPage "`+data+`" }}{{ .page.yml.caption }}`+"\n")

	store := NewLayoutStore(dir)
	ctx := NewContext(nil, nil, "")
	var out bytes.Buffer
	require.NoError(t, store.Render(&out, "gallery", ctx))
	assert.Contains(t, out.String(), "Summer")
	assert.Equal(t, map[string]any{"caption": "Summer"}, ctx.Page[InjectedKey])

	// a second render reads the file again into its own context
	other := NewContext(nil, nil, "")
	require.NoError(t, store.Render(&bytes.Buffer{}, "gallery", other))
	assert.Contains(t, other.Page, InjectedKey)
}

func TestLayoutStoreRejectsInvalidDirectiveInPugLayout(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "gallery.pug", `div {{ yamlToPage "" }}`+"\n")

	err := NewLayoutStore(dir).Load("gallery")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrMissingPath)
}

func TestLayoutStoreFallsBackToHTMLLayout(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir, "meta.yml", "caption: Summer\n")
	writeData(t, dir, "gallery.html",
		`{{ yamlToPage "`+data+`" }}<h1>{{ .page.yml.caption }}</h1>{{ range .page.photos }}<img src="{{ . }}">{{ end }}`)

	store := NewLayoutStore(dir)
	var out bytes.Buffer
	page := map[string]any{"photos": []string{"/galleries/trip/a.jpg"}}
	require.NoError(t, store.Render(&out, "gallery", NewContext(nil, page, "")))
	assert.Equal(t, `<h1>Summer</h1><img src="/galleries/trip/a.jpg">`, out.String())
}

func TestLayoutStoreCachesCompiledLayouts(t *testing.T) {
	dir := t.TempDir()
	path := writeData(t, dir, "plain.html", "first")

	store := NewLayoutStore(dir)
	require.NoError(t, store.Load("plain"))
	require.NoError(t, os.Remove(path))

	var out bytes.Buffer
	require.NoError(t, store.Render(&out, "plain", NewContext(nil, nil, "")))
	assert.Equal(t, "first", out.String())
}

func TestLayoutStoreMissingLayout(t *testing.T) {
	store := NewLayoutStore(filepath.Join(t.TempDir(), "layouts"))
	err := store.Load("gallery")
	require.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestLayoutStoreRejectsInvalidDirective(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "gallery.html", `{{ yamlToPage "" }}`)

	err := NewLayoutStore(dir).Load("gallery")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
