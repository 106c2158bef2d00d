package tui

import (
	"context"
	"time"

	"renderctl/pkg/logging"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 15 * time.Second

// fetchServicesCmd loads the service list.
func (m Model) fetchServicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		services, err := m.api.ListServices(ctx)
		if err != nil {
			return loadErrorMsg{Err: err}
		}
		return servicesLoadedMsg{Services: services}
	}
}

// fetchDetailCmd loads one service plus its deploy history.
func (m Model) fetchDetailCmd(serviceID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		svc, err := m.api.GetService(ctx, serviceID)
		if err != nil {
			return loadErrorMsg{Err: err}
		}
		deploys, err := m.api.ListDeploys(ctx, serviceID)
		if err != nil {
			return loadErrorMsg{Err: err}
		}
		return serviceDetailMsg{Service: svc, Deploys: deploys}
	}
}

// fetchLogsCmd loads recent logs for a service.
func (m Model) fetchLogsCmd(serviceID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		logs, err := m.api.GetServiceLogs(ctx, serviceID, logViewLimit)
		if err != nil {
			return loadErrorMsg{Err: err}
		}
		return logsLoadedMsg{ServiceID: serviceID, Logs: logs}
	}
}

// copyServiceIDCmd puts the selected service id on the system clipboard.
func copyServiceIDCmd(serviceID string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(serviceID)
		return copiedMsg{ServiceID: serviceID, Err: err}
	}
}

// waitForLogCmd blocks on the logging channel and re-arms after each entry.
func waitForLogCmd(ch <-chan logging.Entry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return logEntryMsg{Entry: entry}
	}
}
