package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type WelcomeModel struct {
	parent *AppModel
}

func NewWelcomeModel(parent *AppModel) *WelcomeModel {
	return &WelcomeModel{parent: parent}
}

func (m *WelcomeModel) Init() tea.Cmd {
	return nil
}

func (m *WelcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.parent.send(showFormMsg{})
		case tea.KeyEsc:
			m.parent.cancelApp()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *WelcomeModel) View() string {
	var b strings.Builder

	title := welcomeTitleStyle.Render("YouTube Channel View Extractor")
	prompt := welcomePromptStyle.Render("Collect titles, hashtags and view counts of a period into a spreadsheet.")

	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(prompt)
	b.WriteString("\n\n")
	b.WriteString(welcomePromptStyle.Render("Press Enter to start. (Ctrl+C or Esc to quit)"))

	return docStyle.Render(b.String())
}
