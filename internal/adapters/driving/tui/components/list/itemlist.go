// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/runbook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/runbook-cli/internal/core/domain"
)

// ItemList displays catalog items in a navigable list with icons for
// directories, commands and selection membership.
type ItemList struct {
	items        []domain.Item
	selected     int
	scrollOffset int
	styles       *styles.Styles
	icons        styles.Icons
	width        int
	height       int
}

// NewItemList creates a new item list component.
func NewItemList(s *styles.Styles, icons styles.Icons) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		items:    nil,
		selected: 0,
		styles:   s,
		icons:    icons,
		width:    80,
		height:   10,
	}
}

// Init initialises the item list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the item list.
func (l *ItemList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("No items")
	}

	visible := l.visibleCount()
	l.adjustScroll(visible)

	lines := make([]string, 0, visible+1)
	for i := l.scrollOffset; i < len(l.items) && i < l.scrollOffset+visible; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}

	if len(l.items) > visible {
		indicator := l.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			l.scrollOffset+1,
			minInt(l.scrollOffset+visible, len(l.items)),
			len(l.items)))
		lines = append(lines, "", indicator)
	}

	return strings.Join(lines, "\n")
}

// renderItem formats a single catalog item line.
func (l *ItemList) renderItem(index int, item *domain.Item) string {
	cursor := "  "
	if index == l.selected {
		cursor = "> "
	}

	icon := l.icons.Command
	if item.HasChildren {
		icon = l.icons.Directory
	}

	marker := ""
	if item.IsSelected {
		marker = " " + l.icons.Selected
	}

	name := item.Name
	maxNameLen := l.width/2 - 6
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	desc := item.Description
	maxDescLen := l.width/2 - 6
	if maxDescLen < 10 {
		maxDescLen = 10
	}
	if len(desc) > maxDescLen {
		desc = desc[:maxDescLen-3] + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render(
			fmt.Sprintf("%s%s %-*s%s  %s", cursor, icon, maxNameLen, name, marker, desc),
		)
	}

	return l.styles.Normal.Render(fmt.Sprintf("%s%s ", cursor, icon)) +
		l.styles.Normal.Render(fmt.Sprintf("%-*s", maxNameLen, name)) +
		l.styles.Success.Render(marker) +
		l.styles.Muted.Render("  "+desc)
}

// adjustScroll keeps the selected item inside the visible window.
func (l *ItemList) adjustScroll(visible int) {
	if l.selected < l.scrollOffset {
		l.scrollOffset = l.selected
	} else if l.selected >= l.scrollOffset+visible {
		l.scrollOffset = l.selected - visible + 1
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// visibleCount returns how many item lines fit in the component height.
func (l *ItemList) visibleCount() int {
	visible := l.height
	if visible < 1 {
		visible = 1
	}
	return visible
}

// SetItems replaces the list contents, preserving the cursor when it
// still points at a valid index.
func (l *ItemList) SetItems(items []domain.Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = 0
		l.scrollOffset = 0
	}
}

// Items returns the current items.
func (l *ItemList) Items() []domain.Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *ItemList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ItemList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *ItemList) SelectedItem() *domain.Item {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetIcons replaces the icon set.
func (l *ItemList) SetIcons(icons styles.Icons) {
	l.icons = icons
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *ItemList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *ItemList) IsEmpty() bool {
	return len(l.items) == 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
