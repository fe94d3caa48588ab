package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
	"yt_view_extractor/internal/core/usecases"
)

type currentView int

const (
	viewWelcome currentView = iota
	viewForm
	viewResults
)

// Dependencies are the services the TUI drives.
type Dependencies struct {
	Extract  usecases.ExtractUseCase
	Exporter ports.ExporterPort
	Log      ports.LoggerPort
	// APIKey prefills the key field of the form.
	APIKey   string
	OpenFile func(path string) error
}

type AppModel struct {
	extractUseCase usecases.ExtractUseCase
	exporter       ports.ExporterPort
	logger         ports.LoggerPort
	openFile       func(path string) error

	welcomeModel *WelcomeModel
	formModel    *FormModel
	resultsModel *ResultsModel

	currentView currentView
	// runSeq numbers each extraction so results of an abandoned run are dropped
	runSeq int

	appContext context.Context
	cancelApp  context.CancelFunc

	width  int
	height int
}

func NewAppModel(deps Dependencies) *AppModel {
	// cancelled on quit so an in-flight run stops spending quota
	appCtx, cancel := context.WithCancel(context.Background())

	m := &AppModel{
		extractUseCase: deps.Extract,
		exporter:       deps.Exporter,
		logger:         deps.Log,
		openFile:       deps.OpenFile,

		appContext: appCtx,
		cancelApp:  cancel,
	}

	m.welcomeModel = NewWelcomeModel(m)
	m.formModel = NewFormModel(m, deps.APIKey)
	m.resultsModel = NewResultsModel(m, domain.ExtractRequest{}, 0)

	m.currentView = viewWelcome
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return m.welcomeModel.Init()
}

// navigation messages used by the sub-models
type showWelcomeMsg struct{}
type showFormMsg struct{}
type runExtractMsg struct{ request domain.ExtractRequest }

func (m *AppModel) send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.logger.Info("Ctrl+C pressed, closing app")
			m.cancelApp()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// every sub-model keeps its own layout in sync
		m.formModel.Update(msg)
		m.resultsModel.Update(msg)
		return m, nil

	case showWelcomeMsg:
		m.currentView = viewWelcome
		cmds = append(cmds, m.welcomeModel.Init())

	case showFormMsg:
		m.currentView = viewForm
		cmds = append(cmds, m.formModel.Init())

	case runExtractMsg:
		m.currentView = viewResults
		m.runSeq++
		rm := NewResultsModel(m, msg.request, m.runSeq)
		rm.resize(m.width, m.height)
		m.resultsModel = rm
		return m, rm.Init()
	}

	var currentViewCmd tea.Cmd
	switch m.currentView {
	case viewWelcome:
		_, currentViewCmd = m.welcomeModel.Update(msg)
	case viewForm:
		_, currentViewCmd = m.formModel.Update(msg)
	case viewResults:
		_, currentViewCmd = m.resultsModel.Update(msg)
	}

	cmds = append(cmds, currentViewCmd)
	return m, tea.Batch(cmds...)
}

func (m *AppModel) View() string {
	switch m.currentView {
	case viewWelcome:
		return m.welcomeModel.View()
	case viewForm:
		return m.formModel.View()
	case viewResults:
		return m.resultsModel.View()
	default:
		return fmt.Sprintf("unknown view %d", m.currentView)
	}
}
