package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"renderctl/internal/render"
	"renderctl/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	services []render.Service
	owner    *render.Owner
	err      error
}

func (f *fakeAPI) ListServices(ctx context.Context) ([]render.Service, error) {
	return f.services, f.err
}

func (f *fakeAPI) GetService(ctx context.Context, serviceID string) (*render.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.services {
		if f.services[i].ID == serviceID {
			return &f.services[i], nil
		}
	}
	return nil, &render.APIError{StatusCode: 404, Message: "service not found"}
}

func (f *fakeAPI) GetServiceLogs(ctx context.Context, serviceID string, limit int) ([]render.LogEntry, error) {
	return nil, f.err
}

func (f *fakeAPI) ListDeploys(ctx context.Context, serviceID string) ([]render.Deploy, error) {
	return nil, f.err
}

func (f *fakeAPI) CreateDeploy(ctx context.Context, serviceID string) (*render.Deploy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &render.Deploy{ID: "dep-1", Status: "created"}, nil
}

func (f *fakeAPI) GetOwner(ctx context.Context) (*render.Owner, error) {
	return f.owner, f.err
}

func newTestExecutor(t *testing.T, api tools.RenderAPI, opts ExecutorOptions) (*ToolExecutor, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	opts.Out = out
	opts.ErrOut = errOut
	exec, err := NewToolExecutor(tools.NewDispatcher(tools.NewRegistry(api)), opts)
	require.NoError(t, err)
	return exec, out, errOut
}

func TestNewToolExecutorRejectsUnknownFormat(t *testing.T) {
	_, err := NewToolExecutor(nil, ExecutorOptions{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestExecuteJSONOutput(t *testing.T) {
	api := &fakeAPI{services: []render.Service{
		{ID: "srv-1", Name: "api", Type: "web_service", Region: "oregon"},
		{ID: "srv-2", Name: "worker", Type: "background_worker", Region: "frankfurt"},
	}}
	exec, out, _ := newTestExecutor(t, api, ExecutorOptions{Format: OutputFormatJSON})

	require.NoError(t, exec.Execute(context.Background(), "list_services", nil))

	var decoded struct {
		Summary string `json:"summary"`
		Data    struct {
			Services []struct {
				ID string `json:"id"`
			} `json:"services"`
			Total int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Found 2 services", decoded.Summary)
	assert.Equal(t, 2, decoded.Data.Total)
	// Upstream ordering is preserved.
	require.Len(t, decoded.Data.Services, 2)
	assert.Equal(t, "srv-1", decoded.Data.Services[0].ID)
	assert.Equal(t, "srv-2", decoded.Data.Services[1].ID)
}

func TestExecuteTableOutput(t *testing.T) {
	api := &fakeAPI{services: []render.Service{
		{ID: "srv-1", Name: "api", Type: "web_service", Region: "oregon"},
	}}
	exec, out, _ := newTestExecutor(t, api, ExecutorOptions{Format: OutputFormatTable})

	require.NoError(t, exec.Execute(context.Background(), "list_services", nil))

	assert.Contains(t, out.String(), "srv-1")
	assert.Contains(t, out.String(), "api")
	assert.Contains(t, out.String(), "Found 1 services")
}

func TestExecuteTableQuietSuppressesSummary(t *testing.T) {
	api := &fakeAPI{services: []render.Service{{ID: "srv-1", Name: "api"}}}
	exec, out, _ := newTestExecutor(t, api, ExecutorOptions{Format: OutputFormatTable, Quiet: true})

	require.NoError(t, exec.Execute(context.Background(), "list_services", nil))

	assert.NotContains(t, out.String(), "Found 1 services")
	assert.Contains(t, out.String(), "srv-1")
}

func TestExecuteYAMLOutput(t *testing.T) {
	api := &fakeAPI{owner: &render.Owner{ID: "usr-1", Name: "Ada", Email: "ada@example.com"}}
	exec, out, _ := newTestExecutor(t, api, ExecutorOptions{Format: OutputFormatYAML})

	require.NoError(t, exec.Execute(context.Background(), "get_account_info", nil))

	assert.Contains(t, out.String(), "usr-1")
	assert.Contains(t, out.String(), "ada@example.com")
}

func TestExecuteFailureGoesToErrOut(t *testing.T) {
	api := &fakeAPI{err: render.ErrConnection}
	exec, out, errOut := newTestExecutor(t, api, ExecutorOptions{Format: OutputFormatTable})

	err := exec.Execute(context.Background(), "list_services", nil)
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), string(tools.KindConnection))
}

func TestExecuteNotFound(t *testing.T) {
	api := &fakeAPI{services: []render.Service{}}
	exec, _, errOut := newTestExecutor(t, api, ExecutorOptions{Format: OutputFormatJSON})

	err := exec.Execute(context.Background(), "get_service_status",
		map[string]interface{}{"service_id": "srv-missing"})
	require.Error(t, err)
	assert.Contains(t, errOut.String(), string(tools.KindNotFound))
	assert.Contains(t, errOut.String(), "HTTP 404")
}

func TestTableRendersEmptyList(t *testing.T) {
	api := &fakeAPI{services: []render.Service{}}
	exec, out, _ := newTestExecutor(t, api, ExecutorOptions{Format: OutputFormatTable, Quiet: true})

	require.NoError(t, exec.Execute(context.Background(), "list_services", nil))
	assert.Contains(t, out.String(), "No items found")
}
