// Package tui is an interactive dashboard over the Render API: a service
// table with per-service detail, deploy history, and recent logs. It reads
// through the same RenderAPI interface as the tool handlers and performs
// no mutating calls; triggering deploys stays with the CLI and MCP tools.
package tui

import (
	"fmt"
	"strings"

	"renderctl/internal/render"
	"renderctl/internal/tools"
	"renderctl/pkg/logging"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// logViewLimit caps how many log entries the logs view requests.
const logViewLimit = 50

type viewMode int

const (
	viewList viewMode = iota
	viewDetail
	viewLogs
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	api   tools.RenderAPI
	logCh <-chan logging.Entry

	mode     viewMode
	loading  bool
	width    int
	statusLn string

	table    table.Model
	services []render.Service

	detail  *render.Service
	deploys []render.Deploy

	logServiceID string
	logs         []render.LogEntry
}

// New builds the dashboard model. logCh may be nil when logging is not in
// TUI mode.
func New(api tools.RenderAPI, logCh <-chan logging.Entry) Model {
	columns := []table.Column{
		{Title: "NAME", Width: 28},
		{Title: "TYPE", Width: 14},
		{Title: "STATUS", Width: 14},
		{Title: "REGION", Width: 10},
		{Title: "ID", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("45"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return Model{
		api:      api,
		logCh:    logCh,
		mode:     viewList,
		loading:  true,
		statusLn: "Loading services...",
		table:    t,
		width:    100,
	}
}

// Init starts the initial service fetch plus the log drain.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchServicesCmd()}
	if m.logCh != nil {
		cmds = append(cmds, waitForLogCmd(m.logCh))
	}
	return tea.Batch(cmds...)
}

// Update handles key presses and data messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case servicesLoadedMsg:
		m.loading = false
		m.services = msg.Services
		m.table.SetRows(serviceRows(msg.Services))
		m.statusLn = fmt.Sprintf("%d services", len(msg.Services))
		return m, nil

	case serviceDetailMsg:
		m.loading = false
		m.mode = viewDetail
		m.detail = msg.Service
		m.deploys = msg.Deploys
		m.statusLn = fmt.Sprintf("Service %s", msg.Service.Name)
		return m, nil

	case logsLoadedMsg:
		m.loading = false
		m.mode = viewLogs
		m.logServiceID = msg.ServiceID
		m.logs = msg.Logs
		m.statusLn = fmt.Sprintf("%d log entries for %s", len(msg.Logs), msg.ServiceID)
		return m, nil

	case loadErrorMsg:
		m.loading = false
		m.statusLn = errorStyle.Render(truncate(msg.Err.Error(), m.width-4))
		return m, nil

	case copiedMsg:
		if msg.Err != nil {
			m.statusLn = errorStyle.Render(fmt.Sprintf("copy failed: %v", msg.Err))
		} else {
			m.statusLn = fmt.Sprintf("Copied %s to clipboard", msg.ServiceID)
		}
		return m, nil

	case logEntryMsg:
		m.statusLn = statusStyle.Render(truncate(
			fmt.Sprintf("[%s] %s: %s", msg.Entry.Level, msg.Entry.Subsystem, msg.Entry.Message),
			m.width-4))
		return m, waitForLogCmd(m.logCh)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.mode != viewList {
			m.mode = viewList
			m.statusLn = fmt.Sprintf("%d services", len(m.services))
			return m, nil
		}
		return m, tea.Quit

	case "r":
		m.loading = true
		switch m.mode {
		case viewDetail:
			if m.detail != nil {
				return m, m.fetchDetailCmd(m.detail.ID)
			}
		case viewLogs:
			if m.logServiceID != "" {
				return m, m.fetchLogsCmd(m.logServiceID)
			}
		}
		m.statusLn = "Refreshing services..."
		return m, m.fetchServicesCmd()

	case "enter":
		if m.mode == viewList {
			if id := m.selectedServiceID(); id != "" {
				m.loading = true
				m.statusLn = "Loading service..."
				return m, m.fetchDetailCmd(id)
			}
		}
		return m, nil

	case "l":
		id := m.selectedServiceID()
		if m.mode == viewDetail && m.detail != nil {
			id = m.detail.ID
		}
		if id != "" {
			m.loading = true
			m.statusLn = "Loading logs..."
			return m, m.fetchLogsCmd(id)
		}
		return m, nil

	case "c":
		id := m.selectedServiceID()
		if m.mode == viewDetail && m.detail != nil {
			id = m.detail.ID
		}
		if id != "" {
			return m, copyServiceIDCmd(id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectedServiceID returns the id of the highlighted table row.
func (m Model) selectedServiceID() string {
	row := m.table.SelectedRow()
	if row == nil || len(row) < 5 {
		return ""
	}
	return row[4]
}

// View renders the current mode.
func (m Model) View() string {
	var b strings.Builder

	switch m.mode {
	case viewDetail:
		b.WriteString(m.detailView())
	case viewLogs:
		b.WriteString(m.logsView())
	default:
		b.WriteString(titleStyle.Render("Render Services"))
		b.WriteString("\n\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(statusStyle.Render("Loading..."))
	} else {
		b.WriteString(m.statusLn)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	switch m.mode {
	case viewList:
		return "enter: detail • l: logs • c: copy id • r: refresh • q: quit"
	default:
		return "l: logs • c: copy id • r: refresh • esc: back • q: quit"
	}
}

func (m Model) detailView() string {
	if m.detail == nil {
		return titleStyle.Render("Service") + "\n\n" + statusStyle.Render("Nothing selected")
	}
	svc := m.detail

	var b strings.Builder
	b.WriteString(titleStyle.Render("Service: " + svc.Name))
	b.WriteString("\n\n")
	writeField(&b, "ID", svc.ID)
	writeField(&b, "Type", svc.Type)
	writeField(&b, "Status", svc.ServiceDetail.Status)
	writeField(&b, "Region", svc.Region)
	writeField(&b, "URL", svc.ServiceDetail.URL)
	writeField(&b, "Created", svc.CreatedAt)
	writeField(&b, "Updated", svc.UpdatedAt)

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Recent deploys"))
	b.WriteString("\n")
	if len(m.deploys) == 0 {
		b.WriteString(statusStyle.Render("  none"))
		b.WriteString("\n")
	}
	for i, d := range m.deploys {
		if i >= 10 {
			break
		}
		commit := d.CommitID
		if len(commit) > 7 {
			commit = commit[:7]
		}
		b.WriteString(fmt.Sprintf("  %-22s %-12s %-8s %s\n", d.ID, d.Status, commit, d.CreatedAt))
	}
	return b.String()
}

func (m Model) logsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Logs: " + m.logServiceID))
	b.WriteString("\n\n")
	if len(m.logs) == 0 {
		b.WriteString(statusStyle.Render("No logs found"))
		b.WriteString("\n")
		return b.String()
	}
	for _, entry := range m.logs {
		line := fmt.Sprintf("[%s] %s", entry.Timestamp, entry.Message)
		if entry.Level != "" {
			line = fmt.Sprintf("[%s] [%s] %s", entry.Timestamp, entry.Level, entry.Message)
		}
		b.WriteString(truncate(line, m.width-2))
		b.WriteString("\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "-"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", label+":")), value))
}

func serviceRows(services []render.Service) []table.Row {
	rows := make([]table.Row, len(services))
	for i, svc := range services {
		rows[i] = table.Row{
			truncate(svc.Name, 28),
			svc.Type,
			svc.ServiceDetail.Status,
			svc.Region,
			svc.ID,
		}
	}
	return rows
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}
