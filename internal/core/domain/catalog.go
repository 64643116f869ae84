package domain

import "strings"

// Category is a named top-level tree within the catalog (a "tab").
// The node arena is read-only after load; navigation and selection
// reference nodes by id only, never through owned copies.
type Category struct {
	// Name is the category's display name, unique within a snapshot.
	Name string

	// RootID is the id of the category's root node. The root is a
	// synthetic grouping node whose children are the top-level entries;
	// it is never displayed or executed itself.
	RootID string

	// Nodes is the arena of every node in the category, keyed by id.
	Nodes map[string]Node
}

// Node looks up a node by id.
func (c Category) Node(id string) (Node, bool) {
	n, ok := c.Nodes[id]
	return n, ok
}

// ChildrenOf resolves the ordered children of a node.
// Unknown parent or child ids resolve to nothing.
func (c Category) ChildrenOf(id string) []Node {
	parent, ok := c.Nodes[id]
	if !ok {
		return nil
	}

	children := make([]Node, 0, len(parent.Children))
	for _, childID := range parent.Children {
		if child, ok := c.Nodes[childID]; ok {
			children = append(children, child)
		}
	}
	return children
}

// FindByNamePath walks the tree from the category root, matching each
// path segment against child names case-insensitively. An empty path
// resolves to the root node itself.
func (c Category) FindByNamePath(path []string) (Node, bool) {
	current, ok := c.Node(c.RootID)
	if !ok {
		return Node{}, false
	}

	for _, segment := range path {
		matched := false
		for _, child := range c.ChildrenOf(current.ID) {
			if strings.EqualFold(child.Name, segment) {
				current = child
				matched = true
				break
			}
		}
		if !matched {
			return Node{}, false
		}
	}
	return current, true
}

// Snapshot is one immutable, fully-loaded instance of the catalog.
// It is regenerated wholesale on reload; partial update is never supported.
type Snapshot struct {
	// Categories holds every category in catalog order.
	Categories []Category
}

// Category looks up a category by name.
func (s *Snapshot) Category(name string) (Category, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryNames returns the category names in catalog order.
func (s *Snapshot) CategoryNames() []string {
	names := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		names[i] = c.Name
	}
	return names
}

// Node looks up a node by category name and id.
func (s *Snapshot) Node(category, id string) (Node, bool) {
	c, ok := s.Category(category)
	if !ok {
		return Node{}, false
	}
	return c.Node(id)
}
