package exploretui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

type menuItem string

func (i menuItem) FilterValue() string { return string(i) }

type menuItemDelegate struct{}

func (menuItemDelegate) Height() int                             { return 1 }
func (menuItemDelegate) Spacing() int                            { return 0 }
func (menuItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (menuItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(menuItem)
	if !ok {
		return
	}
	label := string(entry)
	maxWidth := m.Width() - 4
	if maxWidth > 0 {
		label = truncate.StringWithTail(label, uint(maxWidth), "...")
	}
	if index == m.Index() {
		fmt.Fprint(w, menuItemSelectedStyle.Render(label))
		return
	}
	fmt.Fprint(w, menuItemStyle.Render(label))
}

func menuItems(labels []string) []list.Item {
	items := make([]list.Item, 0, len(labels))
	for _, label := range labels {
		items = append(items, menuItem(label))
	}
	return items
}
