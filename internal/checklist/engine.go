package checklist

import "praxis/internal/domain"

// Instantiate builds a fresh result (all items undone) from the named
// template. Fails with UnknownTemplateError if the template is not
// registered.
func (r *Registry) Instantiate(templateName string) (domain.ChecklistResult, error) {
	tmpl, err := r.Template(templateName)
	if err != nil {
		return domain.ChecklistResult{}, err
	}
	items := make([]domain.ChecklistItem, len(tmpl.Items))
	for i, item := range tmpl.Items {
		items[i] = domain.ChecklistItem{Label: item.Label, Required: item.Required}
	}
	return domain.ChecklistResult{Name: tmpl.Name, Items: items}, nil
}

// MarkItem returns a copy of result with the named item's done flag and note
// updated. The input result is not mutated. Fails with UnknownItemError if
// the label is not part of the result's template.
func MarkItem(result domain.ChecklistResult, label string, done bool, note string) (domain.ChecklistResult, error) {
	updated := domain.ChecklistResult{
		Name:  result.Name,
		Items: make([]domain.ChecklistItem, len(result.Items)),
	}
	copy(updated.Items, result.Items)

	for i := range updated.Items {
		if updated.Items[i].Label == label {
			updated.Items[i].Done = done
			if note != "" {
				updated.Items[i].Note = note
			}
			return updated, nil
		}
	}
	return domain.ChecklistResult{}, &domain.UnknownItemError{Checklist: result.Name, Label: label}
}
