package tui

import (
	"strings"

	"mycloud-drive/internal/assistant"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth       = 28
	panelWidth         = 52
	minMainWidth       = 20
	noFilesAvailable   = "No files available"
	emptyGroupText     = "No files"
	typingIndicator    = "Assistant is typing…"
	closedPanelHint    = "Press ctrl+t to ask the assistant about your files."
	selectedFilesLabel = "Selected: "
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var columns []string
	if m.browser.Visible() {
		columns = append(columns, m.renderSidebar())
	}
	columns = append(columns, m.renderMain())
	if m.assistant.Panel.IsOpen() {
		columns = append(columns, m.renderPanel())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	footer := dimStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = dimStyle.Render(m.status) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("MyCloud Drive"), body, footer)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	for i, group := range m.browser.Groups() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(groupStyle.Render(group.Kind.Icon() + " " + group.Kind.Label()))
		b.WriteString("\n")
		if len(group.Files) == 0 {
			b.WriteString(dimStyle.Render("  " + emptyGroupText))
			b.WriteString("\n")
			continue
		}
		for _, f := range group.Files {
			b.WriteString("  " + f + "\n")
		}
	}
	return sidebarStyle.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderMain() string {
	width := m.width - panelWidth - sidebarWidth
	if width < minMainWidth {
		width = minMainWidth
	}
	if m.assistant.Panel.IsOpen() && m.assistant.Panel.IsExpanded() {
		width = minMainWidth
	}
	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(dimStyle.Render(closedPanelHint))
}

func (m *Model) currentPanelWidth() int {
	if !m.assistant.Panel.IsExpanded() {
		return panelWidth
	}
	width := m.width - minMainWidth
	if m.browser.Visible() {
		width -= sidebarWidth
	}
	if width < panelWidth {
		width = panelWidth
	}
	return width
}

func (m *Model) renderPanel() string {
	width := m.currentPanelWidth()
	inner := width - 4
	m.composer.SetWidth(inner)

	sections := []string{
		titleStyle.Render("AI Assistant"),
		m.renderTranscript(inner),
	}
	if m.assistant.Session.Sending() {
		sections = append(sections, m.spinner.View()+" "+dimStyle.Render(typingIndicator))
	}
	sections = append(sections, m.renderChips(inner))
	if selected := m.assistant.SelectedFiles(); len(selected) > 0 {
		sections = append(sections, dimStyle.Render(selectedFilesLabel+strings.Join(selected, ", ")))
	}
	sections = append(sections, m.composer.View())

	return panelStyle.Width(width).Render(strings.Join(sections, "\n\n"))
}

func (m *Model) renderTranscript(width int) string {
	var lines []string
	wrap := lipgloss.NewStyle().Width(width)
	m.assistant.Transcript.Each(func(msg assistant.Message) {
		label := assistantMsgStyle.Render("Assistant")
		if msg.Origin == assistant.OriginUser {
			label = userMsgStyle.Render("You")
		}
		lines = append(lines, label+"\n"+wrap.Render(msg.Text))
	})
	return strings.Join(lines, "\n\n")
}

func (m *Model) renderChips(width int) string {
	files := m.assistant.Catalog.Files()
	if len(files) == 0 {
		return dimStyle.Render(noFilesAvailable)
	}

	chips := make([]string, 0, len(files))
	for i, f := range files {
		style := chipStyle
		mark := "○ "
		if m.assistant.Selection.IsSelected(f) {
			style = chipSelectedStyle
			mark = "● "
		}
		chip := style.Render(mark + f)
		if m.focus == focusChips && i == m.chipCursor {
			chip = chipCursorStyle.Render(chip)
		}
		chips = append(chips, chip)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(chips, " "))
}
