package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestCLILoggingWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Info("client", "request to %s", "/services")

	out := buf.String()
	assert.Contains(t, out, "request to /services")
	assert.Contains(t, out, "subsystem=client")
}

func TestCLILoggingFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("client", "noisy detail")
	Info("client", "still too low")
	Warn("client", "this one shows")

	out := buf.String()
	assert.NotContains(t, out, "noisy detail")
	assert.NotContains(t, out, "still too low")
	assert.Contains(t, out, "this one shows")
}

func TestErrorAttachesErrAttribute(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("dispatch", errors.New("boom"), "tool %s failed", "list_services")

	out := buf.String()
	assert.Contains(t, out, "tool list_services failed")
	assert.Contains(t, out, "boom")
}

func TestTUILoggingDeliversEntries(t *testing.T) {
	ch := InitForTUI(LevelDebug)
	defer InitForCLI(LevelWarn, &bytes.Buffer{})

	Warn("dashboard", "refresh took %dms", 120)

	select {
	case entry := <-ch:
		assert.Equal(t, LevelWarn, entry.Level)
		assert.Equal(t, "dashboard", entry.Subsystem)
		assert.Equal(t, "refresh took 120ms", entry.Message)
		require.False(t, entry.Timestamp.IsZero())
	default:
		t.Fatal("expected a log entry on the TUI channel")
	}
}
