package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/i18n"
)

var (
	brandStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4f46e5"))
	navStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	navActiveStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#a5b4fc")).Padding(0, 1)
	fragmentStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	sectionTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	subtitleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("147"))
	itemTitleStyle      = lipgloss.NewStyle().Bold(true)
	panelTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle          = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("244"))
	labelFocusedStyle   = labelStyle.Copy().Bold(true).Foreground(lipgloss.Color("205"))
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#4f46e5")).Padding(0, 2)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 2)
	successStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m *Model) View() string {
	return strings.Join([]string{
		m.headerView(),
		m.viewport.View(),
		m.formView(),
	}, "\n")
}

func (m *Model) headerView() string {
	var items []string
	for _, e := range m.registry.Entries() {
		label := m.t.T(e.LabelKey)
		if e.ID == m.tracker.Active() {
			items = append(items, navActiveStyle.Render(label))
		} else {
			items = append(items, navStyle.Render(label))
		}
	}

	brand := brandStyle.Render("BYTEIK")
	if m.tracker.Scrolled() {
		brand += helperStyle.Render(" ·")
	}
	locale := helperStyle.Render(i18n.Label(m.t.Locale()))
	fragment := fragmentStyle.Render(m.location.Fragment())

	return strings.Join([]string{
		lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", locale, "  ", fragment),
		lipgloss.JoinHorizontal(lipgloss.Top, items...),
		"",
	}, "\n")
}

func (m *Model) formView() string {
	state := m.form.State()

	var lines []string
	lines = append(lines, panelTitleStyle.Render(m.t.T("cta.form.title1")))

	banner := contact.Present(state.Alert)
	switch {
	case !banner.Visible():
		lines = append(lines, "")
	case state.Alert.Kind == contact.AlertSuccess:
		lines = append(lines, successStyle.Render(banner.Message))
	default:
		lines = append(lines, errorStyle.Render(banner.Message))
	}

	labels := []string{m.t.T("cta.form.field1"), m.t.T("cta.form.field2"), m.t.T("cta.form.field3")}
	for i, in := range m.inputs {
		style := labelStyle
		if int(m.focus)-1 == i {
			style = labelFocusedStyle
		}
		lines = append(lines, style.Render(labels[i])+" "+in.View())
	}

	label := m.t.T("cta.form.button")
	if state.Status == contact.StatusSending {
		label = m.t.T("cta.form.sending")
	}
	if contact.SubmitEnabled(state) {
		lines = append(lines, buttonStyle.Render(label))
	} else {
		lines = append(lines, buttonDisabledStyle.Render(label))
	}

	if m.focus == focusBrowse {
		lines = append(lines, helperStyle.Render("↑/↓ scroll · 1-5/n/p jump · tab contact form · q quit"))
	} else {
		lines = append(lines, helperStyle.Render("tab next field · enter on message or ctrl+s send · esc back"))
	}
	return strings.Join(lines, "\n")
}
