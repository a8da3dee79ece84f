package domain

// ChecklistItem is one entry in a checklist result.
// Optional items never block completion.
type ChecklistItem struct {
	Done     bool
	Label    string
	Note     string
	Required bool
}

// ChecklistResult is one checklist instantiated against a session.
// Items preserve the template's declaration order.
type ChecklistResult struct {
	Items []ChecklistItem
	Name  string
}

// IsComplete reports whether every required item is done
func (r ChecklistResult) IsComplete() bool {
	for _, item := range r.Items {
		if item.Required && !item.Done {
			return false
		}
	}
	return true
}

// MissingRequired returns the labels of required items not yet done, in
// template declaration order.
func (r ChecklistResult) MissingRequired() []string {
	var missing []string
	for _, item := range r.Items {
		if item.Required && !item.Done {
			missing = append(missing, item.Label)
		}
	}
	return missing
}
