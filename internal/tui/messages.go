package tui

import (
	"renderctl/internal/render"
	"renderctl/pkg/logging"
)

// ---- Data loading messages ----

type servicesLoadedMsg struct {
	Services []render.Service
}

type serviceDetailMsg struct {
	Service *render.Service
	Deploys []render.Deploy
}

type logsLoadedMsg struct {
	ServiceID string
	Logs      []render.LogEntry
}

type loadErrorMsg struct {
	Err error
}

// ---- Ambient messages ----

type logEntryMsg struct {
	Entry logging.Entry
}

type copiedMsg struct {
	ServiceID string
	Err       error
}
