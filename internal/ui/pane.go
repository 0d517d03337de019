package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"halil/internal/todo"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)

	rowStyle      = lipgloss.NewStyle()
	doneRowStyle  = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EE6FF8")).Bold(true)
	dueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	controlsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Padding(0, 1)
	toastStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Padding(0, 2)

	labelStyle      = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("245"))
	focusLabelStyle = lipgloss.NewStyle().Width(10).Bold(true)
)

// taskPane is the board's renderer. Every Render replaces the previous
// view wholesale.
type taskPane struct {
	view    todo.View
	renders int
}

func (p *taskPane) Render(v todo.View) {
	p.view = v
	p.renders++
}

func (p *taskPane) Len() int {
	return len(p.view.Rows)
}

func (p *taskPane) Row(i int) (todo.Row, bool) {
	if i < 0 || i >= len(p.view.Rows) {
		return todo.Row{}, false
	}
	return p.view.Rows[i], true
}

// IndexOf returns the view position of task id, or -1.
func (p *taskPane) IndexOf(id string) int {
	for i, r := range p.view.Rows {
		if r.TaskID == id {
			return i
		}
	}
	return -1
}

func (p *taskPane) View(cursor int, active bool) string {
	var b strings.Builder
	b.WriteString(renderTabs(p.view.Mode))
	b.WriteString("\n\n")

	if len(p.view.Rows) == 0 {
		if p.view.Total == 0 {
			b.WriteString("No tasks yet. Press 'a' to add one.\n")
		} else {
			b.WriteString(fmt.Sprintf("Nothing to show in %s (%d hidden).\n", p.view.Mode, p.view.Total))
		}
		return b.String()
	}

	for i, r := range p.view.Rows {
		b.WriteString(renderRow(r, active && i == cursor))
		b.WriteString("\n")
	}
	if r, ok := p.Row(cursor); ok && active {
		b.WriteString("\n")
		b.WriteString(controlsStyle.Render(renderControls(r)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTabs(mode todo.FilterMode) string {
	modes := []todo.FilterMode{todo.FilterAll, todo.FilterOngoing, todo.FilterDone}
	tabs := make([]string, 0, len(modes))
	for _, m := range modes {
		style := tabStyle
		if m == mode {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(tabLabel(m)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func tabLabel(m todo.FilterMode) string {
	switch m {
	case todo.FilterOngoing:
		return "Ongoing"
	case todo.FilterDone:
		return "Done"
	default:
		return "All"
	}
}

func renderRow(r todo.Row, selected bool) string {
	cursor := " "
	if selected {
		cursor = cursorStyle.Render(">")
	}
	checkbox := "[ ]"
	style := rowStyle
	if r.Done {
		checkbox = "[x]"
		style = doneRowStyle
	}

	line := fmt.Sprintf("%s %s %s", cursor, checkbox, style.Render(fmt.Sprintf("%d. %s", r.Index, r.Title)))
	if r.Badge != nil {
		line += " " + badgeStyle.Background(lipgloss.Color(r.Badge.Color)).Render(r.Badge.Name)
	}
	line += " " + dueStyle.Render("due: "+r.DueText)
	return line
}

// renderControls labels the selected row's controls.
func renderControls(r todo.Row) string {
	parts := make([]string, 0, 4)
	for _, c := range r.Controls() {
		parts = append(parts, c.Label)
	}
	return "[" + strings.Join(parts, "] [") + "]"
}
