package domain

// Frame records one level of navigation history: the node that was
// entered and the selection index that was active in the parent view at
// the moment of entry. Popping the frame restores that index.
type Frame struct {
	// NodeID is the node this frame descended into.
	NodeID string

	// SelectedIndex is the selection to restore when this frame is popped.
	SelectedIndex int
}

// NavigationStack tracks the user's current location inside one
// category's tree and the path taken to get there.
//
// Invariant: the stack is never empty. The bottom frame always refers to
// the category's root node and is never popped.
type NavigationStack struct {
	category Category
	frames   []Frame
	selected int
}

// NewNavigationStack builds a stack positioned at the category's root.
func NewNavigationStack(category Category) *NavigationStack {
	return &NavigationStack{
		category: category,
		frames:   []Frame{{NodeID: category.RootID}},
	}
}

// Enter descends into the given node. It is a no-op returning false
// unless the node exists and has children. On success the current
// selection index is recorded in the pushed frame and reset to 0.
func (s *NavigationStack) Enter(nodeID string) bool {
	node, ok := s.category.Node(nodeID)
	if !ok || !node.HasChildren() {
		return false
	}

	s.frames = append(s.frames, Frame{NodeID: nodeID, SelectedIndex: s.selected})
	s.selected = 0
	return true
}

// GoBack pops the top frame and restores the selection index stored in
// it. At the root it is a no-op returning false.
func (s *NavigationStack) GoBack() bool {
	if s.AtRoot() {
		return false
	}

	popped := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.selected = popped.SelectedIndex
	return true
}

// AtRoot returns true when only the root frame remains.
func (s *NavigationStack) AtRoot() bool {
	return len(s.frames) == 1
}

// Depth returns the number of frames on the stack.
func (s *NavigationStack) Depth() int {
	return len(s.frames)
}

// CurrentNodeID returns the node id of the top frame, whose children
// form the current view.
func (s *NavigationStack) CurrentNodeID() string {
	return s.frames[len(s.frames)-1].NodeID
}

// CurrentChildren resolves the ordered children of the current frame's node.
func (s *NavigationStack) CurrentChildren() []Node {
	return s.category.ChildrenOf(s.CurrentNodeID())
}

// SelectedIndex returns the selection index within the current view.
func (s *NavigationStack) SelectedIndex() int {
	return s.selected
}

// SetSelectedIndex moves the selection within the current view.
// Negative values are treated as 0.
func (s *NavigationStack) SetSelectedIndex(i int) {
	if i < 0 {
		i = 0
	}
	s.selected = i
}

// Breadcrumb renders the category name followed by the name of the node
// referenced by every frame above the root, in stack order.
func (s *NavigationStack) Breadcrumb() []string {
	crumbs := make([]string, 0, len(s.frames))
	crumbs = append(crumbs, s.category.Name)
	for _, f := range s.frames[1:] {
		if node, ok := s.category.Node(f.NodeID); ok {
			crumbs = append(crumbs, node.Name)
		}
	}
	return crumbs
}
