package domain

// SelectionSet accumulates nodes explicitly marked for batched
// execution. Membership is keyed by node id, which is unique within one
// loaded snapshot, so it survives navigation between directories.
// Insertion order is preserved for submission-stable batch execution.
type SelectionSet struct {
	members map[string]struct{}
	order   []string
}

// NewSelectionSet returns an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{members: make(map[string]struct{})}
}

// Toggle flips the node's membership and reports whether membership
// changed. Nodes without the multi_select capability are never admitted;
// toggling them is a no-op.
func (s *SelectionSet) Toggle(node Node) bool {
	if !node.MultiSelect {
		return false
	}

	if _, ok := s.members[node.ID]; ok {
		delete(s.members, node.ID)
		for i, id := range s.order {
			if id == node.ID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return true
	}

	s.members[node.ID] = struct{}{}
	s.order = append(s.order, node.ID)
	return true
}

// Contains reports membership by node id.
func (s *SelectionSet) Contains(id string) bool {
	_, ok := s.members[id]
	return ok
}

// Members returns the member ids in insertion order.
func (s *SelectionSet) Members() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of members.
func (s *SelectionSet) Len() int {
	return len(s.order)
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.members = make(map[string]struct{})
	s.order = nil
}
