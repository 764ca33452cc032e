package render

import (
	"errors"
	"fmt"
)

// ErrMissingPath is wrapped by a ConfigurationError when yamlToPage has no usable path argument
var ErrMissingPath = errors.New("missing required file-path argument")

// ErrPathNotLiteral is wrapped by a ConfigurationError when the yamlToPage argument is not a string literal
var ErrPathNotLiteral = errors.New("file-path argument must be a string literal")

// ConfigurationError reports a directive misuse found while parsing a template.
// It is raised before anything is rendered.
type ConfigurationError struct {
	Template  string
	Location  string
	Directive string
	Err       error
}

func (e *ConfigurationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("template %s: %s: %s: %v", e.Template, e.Location, e.Directive, e.Err)
	}
	return fmt.Sprintf("template %s: %s: %v", e.Template, e.Directive, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DataLoadError reports a structured-data file that could not be read or decoded during a render
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load data file %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
