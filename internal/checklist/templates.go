package checklist

import _ "embed"

// Built-in checklist templates for the five consultation phases.
// Operators may override these with a checklists.yaml in the praxis home.
//
//go:embed templates.yaml
var defaultTemplates []byte

// NewDefaultRegistry returns a registry preloaded with the built-in templates
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	// The embedded document is validated by tests; a parse failure here is a
	// build defect, not a runtime condition.
	if err := r.LoadYAML(defaultTemplates); err != nil {
		panic(err)
	}
	return r
}
