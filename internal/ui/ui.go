package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fathomlabs/churnlens/internal/reports"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ReportListView ViewState = iota
	TableView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	dataset     *reports.Dataset
	width       int
	height      int
	reportList  list.Model
	resultTable table.Model
	current     *reports.Table
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model over an in-memory dataset.
func NewModel(ctx context.Context, dataset *reports.Dataset) *Model {
	defs := reports.All()
	items := make([]list.Item, len(defs))
	for i, def := range defs {
		items[i] = reportItem{report: def}
	}

	reportList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	reportList.Title = "Churn Reports"

	return &Model{
		ctx:        ctx,
		view:       ReportListView,
		dataset:    dataset,
		reportList: reportList,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init implements [tea.Model]. The dataset is loaded before the program
// starts, so there is nothing to fetch.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reportList.SetSize(msg.Width-4, msg.Height-8)
		if m.current != nil {
			m.resultTable = newResultTable(m.current, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ReportListView:
			return m.handleReportListKeys(msg)
		case TableView:
			return m.handleTableKeys(msg)
		}

	case Msg:
		if msg.kind == MsgReportDone {
			data := msg.data.(struct {
				table *reports.Table
				err   error
			})
			if data.err != nil {
				m.err = data.err
				return m, nil
			}
			m.err = nil
			m.current = data.table
			m.resultTable = newResultTable(data.table, m.height-8)
			m.view = TableView
			return m, nil
		}
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress esc to go back, q to quit", m.err))
	}

	switch m.view {
	case ReportListView:
		return m.renderReportList()
	case TableView:
		return m.renderTable()
	default:
		return ""
	}
}

func (m *Model) handleReportListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.err != nil {
			m.err = nil
			return m, nil
		}
	case "enter":
		selected := m.reportList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(reportItem); ok {
				return m, m.runReport(item.report)
			}
		}
	}

	var cmd tea.Cmd
	m.reportList, cmd = m.reportList.Update(msg)
	return m, cmd
}

func (m *Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ReportListView
		m.current = nil
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.resultTable, cmd = m.resultTable.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ReportListView:
		m.reportList, cmd = m.reportList.Update(msg)
	case TableView:
		m.resultTable, cmd = m.resultTable.Update(msg)
	}
	return m, cmd
}

func (m *Model) runReport(def reports.Report) tea.Cmd {
	return func() tea.Msg {
		if err := m.ctx.Err(); err != nil {
			return reportDoneMsg(nil, err)
		}
		result, err := def.Run(m.dataset)
		return reportDoneMsg(result, err)
	}
}

// newResultTable builds a scrollable [table.Model], sizing each column to its
// widest cell.
func newResultTable(result *reports.Table, height int) table.Model {
	columns := make([]table.Column, len(result.Columns))
	for i, name := range result.Columns {
		width := len(name)
		for _, row := range result.Rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}
		columns[i] = table.Column{Title: name, Width: width + 2}
	}

	rows := make([]table.Row, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = table.Row(row)
	}

	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true)
	t.SetStyles(s)

	return t
}

func (m *Model) renderReportList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.reportList.View(), helpView)
}

func (m *Model) renderTable() string {
	title := styles.title.Render(m.current.Title)
	count := styles.help.Render(fmt.Sprintf("%d rows", len(m.current.Rows)))

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, count, m.resultTable.View(), helpView)
}
