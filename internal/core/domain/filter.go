package domain

import "strings"

// FilterNodes derives the visible subset of children for a search query:
// the ordered sub-sequence whose name or description contains the query
// as a case-insensitive substring. The empty query is the identity.
//
// The result is recomputed from scratch on every call, never patched
// incrementally.
func FilterNodes(children []Node, query string) []Node {
	if query == "" {
		return children
	}

	needle := strings.ToLower(query)
	filtered := make([]Node, 0, len(children))
	for _, n := range children {
		if strings.Contains(strings.ToLower(n.Name), needle) ||
			strings.Contains(strings.ToLower(n.Description), needle) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// ClampIndex snaps a selection index that fell outside the bounds of a
// freshly filtered sequence back to 0. An in-bounds index is preserved.
func ClampIndex(index, length int) int {
	if index < 0 || index >= length {
		return 0
	}
	return index
}
