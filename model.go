package nfchat

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/h4x0r/nfchat-sub002/session"
)

const (
	footerHeight = 2
)

// Model is the bubbletea model for the flow dashboard TUI.
type Model struct {
	Store       Store
	Session     *session.Session
	Layout      *Layout
	logger      Logger
	ctx         context.Context
	errorString string

	CurrentScreen Screen

	Lines []Line

	TablePanel  TablePanel
	DetailPanel DetailPanel
	FilterPanel FilterPanel

	Width  int
	Height int
}

// NewModel creates a new bt model. The store must already have a file
// ingested; the layout's initial filter is compiled and applied here.
func NewModel(ctx context.Context, store Store, layout *Layout, lgr Logger) (model Model, err error) {

	ssn := session.New(layout.Filter)

	err = store.SetPredicate(ssn.Predicate())
	if err != nil {
		return
	}

	fields, count, err := store.GetView()
	if err != nil {
		return
	}
	ssn.SetResultCount(count)

	model = Model{
		Store:         store,
		Session:       ssn,
		Layout:        layout,
		logger:        lgr,
		ctx:           ctx,
		CurrentScreen: TableScreen,
		TablePanel:    NewTablePanel(layout.Columns, fields, count),
		DetailPanel:   NewDetailPanel(),
		FilterPanel:   NewFilterPanel(ssn),
	}

	return
}

func (m Model) Init() tea.Cmd {
	return m.getLabels()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case pageMsg:
		m.Lines = msg.lines
		m.Session.SetResultCount(msg.count)

	case getPageMsg:
		return m, m.getPage(msg.offset, msg.size)

	case labelsMsg:
		var cmd tea.Cmd
		m.FilterPanel, cmd = m.FilterPanel.Update(msg)
		return m, cmd

	case applyMsg:
		return m.applyPredicate(msg.where)

	case errorMsg:
		m.logger.Error(m.ctx, "error msg", msg.err)
		m.errorString = msg.err.Error()
		return m, nil

	case tea.KeyPressMsg:
		if m.errorString != "" {
			m.errorString = ""
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.CurrentScreen != FilterScreen {
				return m, tea.Quit
			}

		case "esc":
			if m.CurrentScreen != TableScreen {
				return m.switchToTable()
			}
			return m, tea.Quit

		case "f":
			if m.CurrentScreen == TableScreen {
				return m.switchToFilter()
			}

		case "right", "l", "enter":
			if m.CurrentScreen == TableScreen {
				return m.switchToDetail()
			}

		case "left", "h":
			if m.CurrentScreen == DetailScreen {
				return m.switchToTable()
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		adjustedMsg := tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: msg.Height - footerHeight,
		}
		var cmd1, cmd2, cmd3 tea.Cmd
		m.TablePanel, cmd1 = m.TablePanel.Update(adjustedMsg)
		m.DetailPanel, cmd2 = m.DetailPanel.Update(adjustedMsg)
		m.FilterPanel, cmd3 = m.FilterPanel.Update(adjustedMsg)

		return m, tea.Sequence(cmd1, cmd2, cmd3)
	}

	return m.routeToScreen(msg)
}

// routeToScreen sends a message to the panel owning the current screen
func (m Model) routeToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {

	var cmd tea.Cmd
	switch m.CurrentScreen {
	case FilterScreen:
		m.FilterPanel, cmd = m.FilterPanel.Update(msg)
	case DetailScreen:
		m.DetailPanel, cmd = m.DetailPanel.Update(msg)
	default:
		m.TablePanel, cmd = m.TablePanel.Update(msg)
	}

	return m, cmd
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	if m.CurrentScreen == FilterScreen {
		view := m.FilterPanel.View()
		view.AltScreen = true
		return view
	}

	// Get current screen's content from child panes
	var screenContent string
	switch m.CurrentScreen {
	case DetailScreen:
		screenContent = m.DetailPanel.Render()
	default:
		screenContent = m.TablePanel.Render(m.Lines)
	}

	// Create screen layer at origin (0, 0)
	screenLayer := lipgloss.NewLayer("screen", screenContent)

	// Create footer content and layer positioned at bottom
	current := m.TablePanel.Selected + 1
	total := m.TablePanel.Total
	footerContent := RenderFooter(current, total, m.Store.Predicate(), m.Store.Name(), m.Width)
	if m.errorString != "" {
		footerContent = m.errorString
	}
	footerLayer := lipgloss.NewLayer("footer", footerContent).Y(m.Height - footerHeight)

	// Compose layers on canvas
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(screenLayer)
	canvas.Compose(footerLayer)

	view := tea.NewView(canvas)
	view.AltScreen = true
	return view
}

// screen switches

func (m Model) switchToTable() (tea.Model, tea.Cmd) {
	m.CurrentScreen = TableScreen
	m.TablePanel.Focused = true
	m.DetailPanel.Focused = false
	return m, nil
}

func (m Model) switchToDetail() (tea.Model, tea.Cmd) {
	id, err := m.TablePanel.SelectedId(m.Lines)
	if err != nil {
		return m, errorCmd(err)
	}

	m.CurrentScreen = DetailScreen
	m.TablePanel.Focused = false
	m.DetailPanel.Focused = true
	return m, m.getFlow(id)
}

func (m Model) switchToFilter() (tea.Model, tea.Cmd) {
	m.CurrentScreen = FilterScreen
	m.TablePanel.Focused = false
	return m, nil
}

// applyPredicate pushes a compiled predicate to the store and resets paging
func (m Model) applyPredicate(where string) (tea.Model, tea.Cmd) {

	err := m.Store.SetPredicate(where)
	if err != nil {
		return m, errorCmd(err)
	}

	m.logger.Info(m.ctx, "applied predicate", "where", where, "version", m.Session.Version())

	m.CurrentScreen = TableScreen
	m.TablePanel.Focused = true

	var cmd tea.Cmd
	m.TablePanel, cmd = m.TablePanel.Update(resetMsg{})
	return m, cmd
}
