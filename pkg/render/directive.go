package render

import (
	"html/template"
	"os"
	"strings"
	"text/template/parse"

	"gopkg.in/yaml.v3"
)

// DirectiveName is the template function that loads a YAML file into page.yml:
//
//	{{ yamlToPage "_data/team.yml" }}
//	{{ range .page.yml.members }}{{ .name }}{{ end }}
const DirectiveName = "yamlToPage"

// InjectedKey is the page key the directive writes to
const InjectedKey = "yml"

// LoadYAML reads and decodes a YAML file. The path is used as given, relative to the
// working directory, without confinement to the site source; templates are trusted input.
// The file is read on every call.
func LoadYAML(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	return value, nil
}

// parseFuncs registers the directive for parsing only; each render binds its own implementation.
func parseFuncs() template.FuncMap {
	return template.FuncMap{
		DirectiveName: func(string) (string, error) { return "", nil },
	}
}

// ValidateDirectives checks every directive call in t and its associated templates.
// Each call needs exactly one non-blank string literal argument.
func ValidateDirectives(t *template.Template) error {
	for _, tmpl := range t.Templates() {
		if tmpl.Tree == nil || tmpl.Tree.Root == nil {
			continue
		}
		if err := validateNode(tmpl.Tree, tmpl.Tree.Root); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(tree *parse.Tree, node parse.Node) error {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return nil
		}
		for _, child := range n.Nodes {
			if err := validateNode(tree, child); err != nil {
				return err
			}
		}
	case *parse.ActionNode:
		return validateNode(tree, n.Pipe)
	case *parse.IfNode:
		return validateBranch(tree, &n.BranchNode)
	case *parse.RangeNode:
		return validateBranch(tree, &n.BranchNode)
	case *parse.WithNode:
		return validateBranch(tree, &n.BranchNode)
	case *parse.TemplateNode:
		if n.Pipe != nil {
			return validateNode(tree, n.Pipe)
		}
	case *parse.PipeNode:
		if n == nil {
			return nil
		}
		for _, cmd := range n.Cmds {
			if err := validateNode(tree, cmd); err != nil {
				return err
			}
		}
	case *parse.CommandNode:
		if err := validateCommand(tree, n); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := validateNode(tree, arg); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateBranch(tree *parse.Tree, b *parse.BranchNode) error {
	if err := validateNode(tree, b.Pipe); err != nil {
		return err
	}
	if err := validateNode(tree, b.List); err != nil {
		return err
	}
	if b.ElseList != nil {
		return validateNode(tree, b.ElseList)
	}
	return nil
}

func validateCommand(tree *parse.Tree, cmd *parse.CommandNode) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	ident, ok := cmd.Args[0].(*parse.IdentifierNode)
	if !ok || ident.Ident != DirectiveName {
		return nil
	}

	location, _ := tree.ErrorContext(cmd)
	fail := func(err error) error {
		return &ConfigurationError{
			Template:  tree.ParseName,
			Location:  location,
			Directive: DirectiveName,
			Err:       err,
		}
	}

	if len(cmd.Args) != 2 {
		return fail(ErrMissingPath)
	}
	arg, ok := cmd.Args[1].(*parse.StringNode)
	if !ok {
		return fail(ErrPathNotLiteral)
	}
	if strings.TrimSpace(arg.Text) == "" {
		return fail(ErrMissingPath)
	}
	return nil
}
