package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type styleItem struct {
	name   string
	active bool
}

func (i styleItem) Title() string { return i.name }
func (i styleItem) Description() string {
	if i.active {
		return "current"
	}
	return ""
}
func (i styleItem) FilterValue() string { return i.name }

// picker lists the registered visualizations for selection.
type picker struct {
	list list.Model
}

func newPicker(names []string, current string, width, height int) picker {
	items := make([]list.Item, len(names))
	selected := 0
	for i, n := range names {
		items[i] = styleItem{name: n, active: n == current}
		if n == current {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, max(width, 20), max(height, 10))
	l.Title = "visualizations"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle
	l.Select(selected)
	return picker{list: l}
}

// filtering reports whether keys are going to the filter prompt.
func (p picker) filtering() bool {
	return p.list.FilterState() == list.Filtering
}

// selected returns the highlighted style name.
func (p picker) selected() (string, bool) {
	item, ok := p.list.SelectedItem().(styleItem)
	if !ok {
		return "", false
	}
	return item.name, true
}

func (p picker) setSize(width, height int) picker {
	p.list.SetSize(max(width, 20), max(height, 10))
	return p
}

func (p picker) update(msg tea.Msg) (picker, tea.Cmd) {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p picker) view() string {
	return p.list.View() + "\n  " + helpStyle.Render(pickerHelpText())
}
