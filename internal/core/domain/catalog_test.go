package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCategory_Node tests arena lookup by id
func TestCategory_Node(t *testing.T) {
	cat := systemCategory()

	node, ok := cat.Node("update")
	require.True(t, ok)
	assert.Equal(t, "Update", node.Name)

	_, ok = cat.Node("missing")
	assert.False(t, ok)
}

// TestCategory_ChildrenOf tests ordered child resolution
func TestCategory_ChildrenOf(t *testing.T) {
	cat := systemCategory()

	children := cat.ChildrenOf("root")
	require.Len(t, children, 2)
	assert.Equal(t, "System", children[0].Name)
	assert.Equal(t, "Update", children[1].Name)
}

// TestCategory_ChildrenOfUnknownParent tests resolution of an absent parent
func TestCategory_ChildrenOfUnknownParent(t *testing.T) {
	cat := systemCategory()

	assert.Nil(t, cat.ChildrenOf("missing"))
}

// TestCategory_ChildrenOfSkipsDanglingIDs tests tolerance of broken links
func TestCategory_ChildrenOfSkipsDanglingIDs(t *testing.T) {
	cat := Category{
		Name:   "Broken",
		RootID: "root",
		Nodes: map[string]Node{
			"root": {ID: "root", Children: []string{"a", "ghost", "b"}},
			"a":    {ID: "a", Name: "A"},
			"b":    {ID: "b", Name: "B"},
		},
	}

	children := cat.ChildrenOf("root")
	require.Len(t, children, 2)
	assert.Equal(t, []string{"A", "B"}, nodeNames(children))
}

// TestCategory_FindByNamePath tests name-path resolution from the root
func TestCategory_FindByNamePath(t *testing.T) {
	cat := systemCategory()

	node, ok := cat.FindByNamePath([]string{"System", "Upgrade"})
	require.True(t, ok)
	assert.Equal(t, "upgrade", node.ID)
}

// TestCategory_FindByNamePathCaseInsensitive tests segment matching
func TestCategory_FindByNamePathCaseInsensitive(t *testing.T) {
	cat := systemCategory()

	node, ok := cat.FindByNamePath([]string{"system", "CLEANUP"})
	require.True(t, ok)
	assert.Equal(t, "cleanup", node.ID)
}

// TestCategory_FindByNamePathEmpty tests that an empty path is the root
func TestCategory_FindByNamePathEmpty(t *testing.T) {
	cat := systemCategory()

	node, ok := cat.FindByNamePath(nil)
	require.True(t, ok)
	assert.Equal(t, "root", node.ID)
}

// TestCategory_FindByNamePathUnknownSegment tests a dead-end walk
func TestCategory_FindByNamePathUnknownSegment(t *testing.T) {
	cat := systemCategory()

	_, ok := cat.FindByNamePath([]string{"System", "Reboot"})
	assert.False(t, ok)

	_, ok = cat.FindByNamePath([]string{"Nope"})
	assert.False(t, ok)
}

// TestCategory_FindByNamePathMissingRoot tests a category with a broken root id
func TestCategory_FindByNamePathMissingRoot(t *testing.T) {
	cat := Category{Name: "Broken", RootID: "ghost", Nodes: map[string]Node{}}

	_, ok := cat.FindByNamePath([]string{"anything"})
	assert.False(t, ok)
}

// TestSnapshot_Category tests category lookup by name
func TestSnapshot_Category(t *testing.T) {
	snap := &Snapshot{Categories: []Category{systemCategory()}}

	cat, ok := snap.Category("System")
	require.True(t, ok)
	assert.Equal(t, "root", cat.RootID)

	_, ok = snap.Category("Apps")
	assert.False(t, ok)
}

// TestSnapshot_CategoryNames tests name listing in catalog order
func TestSnapshot_CategoryNames(t *testing.T) {
	snap := &Snapshot{Categories: []Category{
		{Name: "System"},
		{Name: "Applications"},
		{Name: "Security"},
	}}

	assert.Equal(t, []string{"System", "Applications", "Security"}, snap.CategoryNames())
}

// TestSnapshot_Node tests the two-level lookup
func TestSnapshot_Node(t *testing.T) {
	snap := &Snapshot{Categories: []Category{systemCategory()}}

	node, ok := snap.Node("System", "upgrade")
	require.True(t, ok)
	assert.Equal(t, "Upgrade", node.Name)

	_, ok = snap.Node("System", "missing")
	assert.False(t, ok)

	_, ok = snap.Node("Apps", "upgrade")
	assert.False(t, ok)
}
