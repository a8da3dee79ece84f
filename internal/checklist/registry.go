// Package checklist provides the template registry and the engine that
// instantiates and updates checklist results against sessions.
package checklist

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"praxis/internal/domain"
)

// TemplateItem is one entry in a checklist template definition
type TemplateItem struct {
	Label    string `yaml:"label"`
	Required bool   `yaml:"required"`
}

// Template is a named, ordered list of required/optional item labels defining
// one phase's completion criteria.
type Template struct {
	Items []TemplateItem `yaml:"items"`
	Name  string         `yaml:"name"`
}

// Registry holds the known checklist templates. Registration order is not
// significant; item order within a template is.
type Registry struct {
	templates map[string]Template
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds a template to the registry. Registering an existing name
// replaces the previous definition.
func (r *Registry) Register(name string, items []TemplateItem) {
	r.templates[name] = Template{Name: name, Items: items}
}

// Template returns the template registered under name, or an
// UnknownTemplateError if none is.
func (r *Registry) Template(name string) (Template, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return Template{}, &domain.UnknownTemplateError{Name: name}
	}
	return tmpl, nil
}

// Names returns the registered template names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// templatesDoc is the YAML document shape for template definitions
type templatesDoc struct {
	Templates []Template `yaml:"templates"`
}

// LoadYAML parses a YAML template document and registers every template in it
func (r *Registry) LoadYAML(data []byte) error {
	var doc templatesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse checklist templates: %w", err)
	}
	for _, tmpl := range doc.Templates {
		if tmpl.Name == "" {
			return &domain.ValidationError{Field: "name", Reason: "template name must not be empty"}
		}
		if len(tmpl.Items) == 0 {
			return &domain.ValidationError{Field: "items", Reason: fmt.Sprintf("template %q has no items", tmpl.Name)}
		}
		for _, item := range tmpl.Items {
			if item.Label == "" {
				return &domain.ValidationError{Field: "label", Reason: fmt.Sprintf("template %q has an item with no label", tmpl.Name)}
			}
		}
		r.Register(tmpl.Name, tmpl.Items)
	}
	return nil
}

// LoadFile loads templates from a YAML file on disk. A missing file is not
// an error; the built-in templates remain in effect.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read checklist templates: %w", err)
	}
	return r.LoadYAML(data)
}
