package tui

import "github.com/charmbracelet/lipgloss"

var (
	docStyle = lipgloss.NewStyle().
			Margin(1, 2)

	welcomeTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")). // purple
				Padding(1, 0)
	welcomePromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{
			Light: "#A49FA5",
			Dark:  "#777777",
		})

	listHeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")). // gray
			MarginBottom(1).
			PaddingBottom(1)
	listItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// form labels
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	// results table
	tableBorderStyle        = lipgloss.NormalBorder()
	tableBorderColor        = lipgloss.Color("240")
	tableSelectedForeground = lipgloss.Color("229")
	tableSelectedBackground = lipgloss.Color("57")

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{
			Light: "#04B575",
			Dark:  "#04B575",
		}) // green
	warningMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")) // orange
	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")) // red
)
