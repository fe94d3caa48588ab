package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"yt_view_extractor/internal/core/domain"
)

type formField int

const (
	fieldAPIKey formField = iota
	fieldMode
	fieldChannels
	fieldQuery
	fieldStart
	fieldEnd
	fieldKeyword
	fieldHashtags
	fieldPolicy
)

var fieldLabels = map[formField]string{
	fieldAPIKey:   "API key",
	fieldMode:     "Search mode",
	fieldChannels: "Channel IDs (one per line)",
	fieldQuery:    "Hashtag",
	fieldStart:    "Start (MMYYYY)",
	fieldEnd:      "End (MMYYYY)",
	fieldKeyword:  "Keyword in title or description (optional)",
	fieldHashtags: "Hashtags, comma separated (optional)",
	fieldPolicy:   "Upload date matching",
}

type FormModel struct {
	parent *AppModel

	mode   domain.Mode
	policy domain.DatePolicy

	apiKey   textinput.Model
	channels textarea.Model
	query    textinput.Model
	start    textinput.Model
	end      textinput.Model
	keyword  textinput.Model
	hashtags textinput.Model

	focus int
	err   error
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func NewFormModel(parent *AppModel, apiKey string) *FormModel {
	key := newInput("YouTube Data API v3 key", 128)
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '•'
	key.SetValue(apiKey)

	channels := textarea.New()
	channels.Placeholder = "UC_x5XG1OV2P6uZZ5FSM9Ttw"
	channels.ShowLineNumbers = false
	channels.SetWidth(44)
	channels.SetHeight(4)

	return &FormModel{
		parent:   parent,
		mode:     domain.ModeChannelUploads,
		policy:   domain.PolicyMonthIndependent,
		apiKey:   key,
		channels: channels,
		query:    newInput("#AI", 100),
		start:    newInput("012024", 6),
		end:      newInput("032024", 6),
		keyword:  newInput("", 100),
		hashtags: newInput("#ai, #tech", 200),
	}
}

// visibleFields lists the fields of the current mode in tab order.
func (m *FormModel) visibleFields() []formField {
	if m.mode == domain.ModeHashtagSearch {
		return []formField{fieldAPIKey, fieldMode, fieldQuery, fieldStart, fieldEnd}
	}
	return []formField{fieldAPIKey, fieldMode, fieldChannels, fieldStart, fieldEnd, fieldKeyword, fieldHashtags, fieldPolicy}
}

func (m *FormModel) focused() formField {
	fields := m.visibleFields()
	if m.focus >= len(fields) {
		m.focus = len(fields) - 1
	}
	return fields[m.focus]
}

func (m *FormModel) input(f formField) *textinput.Model {
	switch f {
	case fieldAPIKey:
		return &m.apiKey
	case fieldQuery:
		return &m.query
	case fieldStart:
		return &m.start
	case fieldEnd:
		return &m.end
	case fieldKeyword:
		return &m.keyword
	case fieldHashtags:
		return &m.hashtags
	}
	return nil
}

func (m *FormModel) Init() tea.Cmd {
	m.err = nil
	return m.refocus()
}

func (m *FormModel) refocus() tea.Cmd {
	for _, f := range []formField{fieldAPIKey, fieldQuery, fieldStart, fieldEnd, fieldKeyword, fieldHashtags} {
		m.input(f).Blur()
	}
	m.channels.Blur()

	current := m.focused()
	if current == fieldChannels {
		return m.channels.Focus()
	}
	if in := m.input(current); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *FormModel) isLast() bool {
	return m.focus == len(m.visibleFields())-1
}

func (m *FormModel) move(delta int) tea.Cmd {
	n := len(m.visibleFields())
	m.focus = (m.focus + delta + n) % n
	return m.refocus()
}

func (m *FormModel) toggle(f formField) {
	switch f {
	case fieldMode:
		if m.mode == domain.ModeChannelUploads {
			m.mode = domain.ModeHashtagSearch
		} else {
			m.mode = domain.ModeChannelUploads
		}
	case fieldPolicy:
		if m.policy == domain.PolicyMonthIndependent {
			m.policy = domain.PolicyChronological28
		} else {
			m.policy = domain.PolicyMonthIndependent
		}
	}
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 20 {
			m.channels.SetWidth(width)
		}
		return m, nil

	case tea.KeyMsg:
		current := m.focused()

		switch msg.Type {
		case tea.KeyEsc:
			return m, m.parent.send(showWelcomeMsg{})
		case tea.KeyCtrlS:
			return m, m.submit()
		case tea.KeyTab:
			return m, m.move(1)
		case tea.KeyShiftTab:
			return m, m.move(-1)
		}

		if current == fieldMode || current == fieldPolicy {
			switch msg.String() {
			case "left", "right", " ", "h", "l":
				m.toggle(current)
				return m, nil
			case "up":
				return m, m.move(-1)
			case "down":
				return m, m.move(1)
			case "enter":
				if m.isLast() {
					return m, m.submit()
				}
				return m, m.move(1)
			}
			return m, nil
		}

		if current != fieldChannels {
			switch msg.Type {
			case tea.KeyUp:
				return m, m.move(-1)
			case tea.KeyDown:
				return m, m.move(1)
			case tea.KeyEnter:
				if m.isLast() {
					return m, m.submit()
				}
				return m, m.move(1)
			}
		}
	}

	var cmd tea.Cmd
	current := m.focused()
	if current == fieldChannels {
		m.channels, cmd = m.channels.Update(msg)
	} else if in := m.input(current); in != nil {
		*in, cmd = in.Update(msg)
	}
	return m, cmd
}

func (m *FormModel) submit() tea.Cmd {
	req, err := m.buildRequest()
	if err != nil {
		m.err = err
		return nil
	}

	m.err = nil
	m.parent.logger.Info(fmt.Sprintf("Form submitted: %s, window %s", req.Mode, req.Window))
	return m.parent.send(runExtractMsg{request: req})
}

func (m *FormModel) buildRequest() (domain.ExtractRequest, error) {
	window, err := domain.ParseDateWindow(strings.TrimSpace(m.start.Value()), strings.TrimSpace(m.end.Value()))
	if err != nil {
		return domain.ExtractRequest{}, err
	}

	req := domain.ExtractRequest{
		Credential: domain.Credential{APIKey: strings.TrimSpace(m.apiKey.Value())},
		Mode:       m.mode,
		Window:     window,
	}

	if m.mode == domain.ModeHashtagSearch {
		req.Query = strings.TrimSpace(m.query.Value())
		if req.Query == "" {
			return domain.ExtractRequest{}, fmt.Errorf("%w: please enter a hashtag", domain.ErrInvalidRequest)
		}
		return req, nil
	}

	for _, line := range strings.Split(m.channels.Value(), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			req.ChannelIDs = append(req.ChannelIDs, id)
		}
	}
	if len(req.ChannelIDs) == 0 {
		return domain.ExtractRequest{}, fmt.Errorf("%w: please enter at least one channel ID", domain.ErrInvalidRequest)
	}

	req.Filter = domain.NewFilterSpec(m.keyword.Value(), m.hashtags.Value())
	req.UploadPolicy = m.policy

	return req, nil
}

// rangeWarning warns before a hashtag search over a window wide enough to
// exhaust the daily quota.
func (m *FormModel) rangeWarning() string {
	if m.mode != domain.ModeHashtagSearch {
		return ""
	}

	window, err := domain.ParseDateWindow(strings.TrimSpace(m.start.Value()), strings.TrimSpace(m.end.Value()))
	if err != nil || window.MonthSpan() <= 1 {
		return ""
	}

	return "Date range is more than 2 months. Quota might reach the limit if there are more than 500 videos."
}

func choice(options []string, selected int) string {
	parts := make([]string, len(options))
	for i, option := range options {
		if i == selected {
			parts[i] = "(•) " + option
		} else {
			parts[i] = "( ) " + option
		}
	}
	return strings.Join(parts, "   ")
}

func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(listHeaderStyle.Render("New extraction"))
	b.WriteString("\n")

	current := m.focused()
	for _, f := range m.visibleFields() {
		label := fieldLabels[f]
		if f == current {
			b.WriteString(focusedLabelStyle.Render("> " + label))
		} else {
			b.WriteString(labelStyle.Render("  " + label))
		}
		b.WriteString("\n")

		switch f {
		case fieldMode:
			b.WriteString(listItemStyle.Render(choice([]string{domain.ModeChannelUploads.String(), domain.ModeHashtagSearch.String()}, int(m.mode))))
		case fieldPolicy:
			b.WriteString(listItemStyle.Render(choice([]string{"Month and year independently", "Calendar order"}, int(m.policy))))
		case fieldChannels:
			b.WriteString(m.channels.View())
		default:
			b.WriteString(listItemStyle.Render(m.input(f).View()))
		}
		b.WriteString("\n\n")
	}

	if warning := m.rangeWarning(); warning != "" {
		b.WriteString(warningMessageStyle.Render(warning))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(errorMessageStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(welcomePromptStyle.Render("Tab/Shift+Tab to move, ←/→ to switch options, Ctrl+S to run, Esc to go back."))

	return docStyle.Render(b.String())
}
