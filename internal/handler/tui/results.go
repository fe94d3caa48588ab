package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"yt_view_extractor/infrastructure/exporter"
	"yt_view_extractor/internal/core/domain"
)

type extractDoneMsg struct {
	seq    int
	report domain.Report
}
type extractFailedMsg struct {
	seq int
	err error
}
type exportDoneMsg struct {
	path   string
	opened bool
	err    error
}

type ResultsModel struct {
	parent  *AppModel
	request domain.ExtractRequest
	seq     int

	spinner spinner.Model
	table   table.Model

	loading bool
	report  domain.Report
	err     error

	runContext context.Context
	cancelRun  context.CancelFunc

	exporting     bool
	statusMessage string
}

func NewResultsModel(parent *AppModel, request domain.ExtractRequest, seq int) *ResultsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusMessageStyle

	runCtx, cancel := context.WithCancel(parent.appContext)

	return &ResultsModel{
		parent:     parent,
		request:    request,
		seq:        seq,
		spinner:    s,
		table:      newResultsTable(),
		loading:    true,
		runContext: runCtx,
		cancelRun:  cancel,
	}
}

func newResultsTable() table.Model {
	columns := []table.Column{
		{Title: "Channel", Width: 20},
		{Title: "Title", Width: 40},
		{Title: "Published", Width: 10},
		{Title: "Views", Width: 10},
		{Title: "Duration", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(tableBorderStyle).
		BorderForeground(tableBorderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tableSelectedForeground).
		Background(tableSelectedBackground)
	t.SetStyles(styles)

	return t
}

func (m *ResultsModel) resize(width, height int) {
	if height > 16 {
		m.table.SetHeight(height - 14)
	}
	if width > 0 {
		m.table.SetWidth(width - 4)
	}
}

func (m *ResultsModel) Init() tea.Cmd {
	m.parent.logger.Info(fmt.Sprintf("ResultsModel: starting %s run", m.request.Mode))
	return tea.Batch(m.spinner.Tick, m.run())
}

func (m *ResultsModel) run() tea.Cmd {
	ctx := m.runContext
	request := m.request
	uc := m.parent.extractUseCase
	seq := m.seq

	return func() tea.Msg {
		report, err := uc.Run(ctx, request)
		if err != nil {
			return extractFailedMsg{seq: seq, err: err}
		}
		return extractDoneMsg{seq: seq, report: report}
	}
}

func formatViews(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}

func recordRows(records []domain.VideoRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			r.ChannelName,
			r.Title,
			r.PublishedDate.Format(time.DateOnly),
			formatViews(r.ViewCount),
			formatDuration(r.Duration),
		})
	}
	return rows
}

func (m *ResultsModel) export(open bool) tea.Cmd {
	records := m.report.Records
	path := exporter.DefaultFileName(m.request.Window)
	exp := m.parent.exporter
	openFile := m.parent.openFile
	log := m.parent.logger

	return func() tea.Msg {
		if err := exp.ExportFile(path, records); err != nil {
			log.Error("error while exporting "+path, err)
			return exportDoneMsg{path: path, err: err}
		}
		log.Info(fmt.Sprintf("Exported %d rows to %s", len(records), path))

		if !open || openFile == nil {
			return exportDoneMsg{path: path}
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if err := openFile(abs); err != nil {
			log.Error("error while opening "+abs, err)
			return exportDoneMsg{path: path, err: fmt.Errorf("saved, but could not open it: %w", err)}
		}
		return exportDoneMsg{path: path, opened: true}
	}
}

func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case extractDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.report = msg.report
		m.table.SetRows(recordRows(msg.report.Records))
		m.parent.logger.Info(fmt.Sprintf("[%s] Run finished with %d rows and %d warnings",
			msg.report.RunID, len(msg.report.Records), len(msg.report.Warnings)))
		return m, nil

	case extractFailedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.parent.logger.Error("ResultsModel: run failed", msg.err)
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		switch {
		case msg.err != nil:
			m.statusMessage = fmt.Sprintf("Export of %s failed: %v", msg.path, msg.err)
		case msg.opened:
			m.statusMessage = fmt.Sprintf("Saved and opened %s", msg.path)
		default:
			m.statusMessage = fmt.Sprintf("Saved %s", msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			if msg.Type == tea.KeyEsc {
				m.cancelRun()
				return m, m.parent.send(showFormMsg{})
			}
			return m, nil
		}

		switch msg.String() {
		case "esc", "n":
			m.cancelRun()
			return m, m.parent.send(showFormMsg{})
		case "q":
			m.parent.cancelApp()
			return m, tea.Quit
		case "e", "o":
			if !m.report.HasData() || m.exporting {
				return m, nil
			}
			m.exporting = true
			m.statusMessage = "Writing spreadsheet..."
			return m, tea.Batch(m.spinner.Tick, m.export(msg.String() == "o"))
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(listHeaderStyle.Render(fmt.Sprintf("%s, %s", m.request.Mode, m.request.Window)))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Fetching data from YouTube...\n\n")
		b.WriteString(welcomePromptStyle.Render("Esc to cancel."))
		return docStyle.Render(b.String())
	}

	if m.err != nil {
		b.WriteString(errorMessageStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(welcomePromptStyle.Render("Esc to go back to the form."))
		return docStyle.Render(b.String())
	}

	if m.report.HasData() {
		b.WriteString(statusMessageStyle.Render(fmt.Sprintf("Data fetched successfully! %d videos.", len(m.report.Records))))
		b.WriteString("\n\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	} else {
		b.WriteString(warningMessageStyle.Render("No data found for the selected period."))
		b.WriteString("\n")
	}

	if len(m.report.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range m.report.Warnings {
			b.WriteString(warningMessageStyle.Render("! " + w.String()))
			b.WriteString("\n")
		}
	}

	if m.statusMessage != "" {
		b.WriteString("\n")
		if m.exporting {
			b.WriteString(m.spinner.View() + " ")
		}
		b.WriteString(statusMessageStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.report.HasData() {
		b.WriteString(welcomePromptStyle.Render("↑/↓ to scroll, e to export, o to export and open, n for a new search, q to quit."))
	} else {
		b.WriteString(welcomePromptStyle.Render("n for a new search, q to quit."))
	}

	return docStyle.Render(b.String())
}
