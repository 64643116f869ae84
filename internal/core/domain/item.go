package domain

// Item is the presentation projection of one visible node: what the
// interactive layer needs to render a list row, nothing more.
type Item struct {
	// ID is the node id.
	ID string

	// Name is the display name.
	Name string

	// Description is the node's description.
	Description string

	// Tags are the node's free-form labels.
	Tags []string

	// HasChildren marks grouping nodes that can be entered.
	HasChildren bool

	// IsMultiSelect marks nodes eligible for batched execution.
	IsMultiSelect bool

	// IsSelected marks current membership in the selection set.
	IsSelected bool
}

// MakeItems projects nodes into presentation items, marking selection
// membership from the given set. A nil set marks nothing selected.
func MakeItems(nodes []Node, selection *SelectionSet) []Item {
	items := make([]Item, len(nodes))
	for i, n := range nodes {
		items[i] = Item{
			ID:            n.ID,
			Name:          n.Name,
			Description:   n.Description,
			Tags:          n.Tags,
			HasChildren:   n.HasChildren(),
			IsMultiSelect: n.MultiSelect,
		}
		if selection != nil {
			items[i].IsSelected = selection.Contains(n.ID)
		}
	}
	return items
}
