package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"renderctl/internal/render"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI is a RenderAPI test double that counts calls and serves canned
// data or errors.
type stubAPI struct {
	calls map[string]int

	services []render.Service
	service  *render.Service
	logs     []render.LogEntry
	deploys  []render.Deploy
	deploy   *render.Deploy
	owner    *render.Owner

	err error
}

func newStubAPI() *stubAPI {
	return &stubAPI{calls: make(map[string]int)}
}

func (s *stubAPI) totalCalls() int {
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *stubAPI) ListServices(ctx context.Context) ([]render.Service, error) {
	s.calls["ListServices"]++
	return s.services, s.err
}

func (s *stubAPI) GetService(ctx context.Context, serviceID string) (*render.Service, error) {
	s.calls["GetService"]++
	if s.err != nil {
		return nil, s.err
	}
	return s.service, nil
}

func (s *stubAPI) GetServiceLogs(ctx context.Context, serviceID string, limit int) ([]render.LogEntry, error) {
	s.calls["GetServiceLogs"]++
	s.calls["limit:"+strconv.Itoa(limit)]++
	return s.logs, s.err
}

func (s *stubAPI) ListDeploys(ctx context.Context, serviceID string) ([]render.Deploy, error) {
	s.calls["ListDeploys"]++
	return s.deploys, s.err
}

func (s *stubAPI) CreateDeploy(ctx context.Context, serviceID string) (*render.Deploy, error) {
	s.calls["CreateDeploy"]++
	if s.err != nil {
		return nil, s.err
	}
	return s.deploy, nil
}

func (s *stubAPI) GetOwner(ctx context.Context) (*render.Owner, error) {
	s.calls["GetOwner"]++
	if s.err != nil {
		return nil, s.err
	}
	return s.owner, nil
}

func newTestDispatcher(api RenderAPI) *Dispatcher {
	return NewDispatcher(NewRegistry(api))
}

func TestRegistryHasExactlySixTools(t *testing.T) {
	registry := NewRegistry(newStubAPI())

	expected := []string{
		"get_account_info",
		"get_deployments",
		"get_service_logs",
		"get_service_status",
		"list_services",
		"trigger_deploy",
	}
	assert.Equal(t, expected, registry.Names())

	for _, name := range expected {
		desc, ok := registry.Lookup(name)
		assert.True(t, ok, "lookup(%s) should succeed", name)
		assert.Equal(t, name, desc.Tool.Name)
		assert.NotNil(t, desc.Handler)
	}

	_, ok := registry.Lookup("delete_service")
	assert.False(t, ok)
}

func TestDispatchUnknownTool(t *testing.T) {
	api := newStubAPI()
	d := newTestDispatcher(api)

	result := d.Dispatch(context.Background(), Invocation{Name: "does_not_exist"})

	require.True(t, result.IsError())
	assert.Equal(t, KindUnknownTool, result.Failure.Kind)
	assert.Equal(t, 0, api.totalCalls(), "no network call for an unknown tool")
}

func TestDispatchMissingRequiredParam(t *testing.T) {
	for _, tool := range []string{"get_service_status", "get_service_logs", "get_deployments", "trigger_deploy"} {
		t.Run(tool, func(t *testing.T) {
			api := newStubAPI()
			d := newTestDispatcher(api)

			result := d.Dispatch(context.Background(), Invocation{Name: tool})

			require.True(t, result.IsError())
			assert.Equal(t, KindInvalidParameters, result.Failure.Kind)
			assert.Contains(t, result.Failure.Message, "service_id")
			assert.Equal(t, 0, api.totalCalls(), "validation must fail before any network call")
		})
	}
}

func TestDispatchTypeMismatch(t *testing.T) {
	api := newStubAPI()
	d := newTestDispatcher(api)

	result := d.Dispatch(context.Background(), Invocation{
		Name:      "get_service_status",
		Arguments: map[string]interface{}{"service_id": 42},
	})

	require.True(t, result.IsError())
	assert.Equal(t, KindInvalidParameters, result.Failure.Kind)
	assert.Equal(t, 0, api.totalCalls())
}

func TestDispatchIgnoresExtraParams(t *testing.T) {
	api := newStubAPI()
	api.owner = &render.Owner{ID: "usr-1", Name: "Jane"}
	d := newTestDispatcher(api)

	result := d.Dispatch(context.Background(), Invocation{
		Name:      "get_account_info",
		Arguments: map[string]interface{}{"unexpected": true},
	})

	assert.False(t, result.IsError())
	assert.Equal(t, 1, api.calls["GetOwner"])
}

func TestLogsLimitDefaultsTo100(t *testing.T) {
	api := newStubAPI()
	d := newTestDispatcher(api)

	result := d.Dispatch(context.Background(), Invocation{
		Name:      "get_service_logs",
		Arguments: map[string]interface{}{"service_id": "srv-1"},
	})

	require.False(t, result.IsError())
	assert.Equal(t, 1, api.calls["limit:100"], "effective limit should be the default 100")
}

func TestLogsLimitAcceptsJSONNumbers(t *testing.T) {
	api := newStubAPI()
	d := newTestDispatcher(api)

	// JSON decoding hands numbers to the dispatcher as float64.
	result := d.Dispatch(context.Background(), Invocation{
		Name:      "get_service_logs",
		Arguments: map[string]interface{}{"service_id": "srv-1", "limit": float64(25)},
	})

	require.False(t, result.IsError())
	assert.Equal(t, 1, api.calls["limit:25"])
}

func TestLogsLimitRejectsFractional(t *testing.T) {
	api := newStubAPI()
	d := newTestDispatcher(api)

	result := d.Dispatch(context.Background(), Invocation{
		Name:      "get_service_logs",
		Arguments: map[string]interface{}{"service_id": "srv-1", "limit": 2.5},
	})

	require.True(t, result.IsError())
	assert.Equal(t, KindInvalidParameters, result.Failure.Kind)
	assert.Equal(t, 0, api.totalCalls())
}

func TestNotFoundIsNotInternal(t *testing.T) {
	api := newStubAPI()
	api.err = &render.APIError{StatusCode: 404, Message: "service not found"}
	d := newTestDispatcher(api)

	result := d.Dispatch(context.Background(), Invocation{
		Name:      "get_service_status",
		Arguments: map[string]interface{}{"service_id": "srv-missing"},
	})

	require.True(t, result.IsError())
	assert.Equal(t, KindNotFound, result.Failure.Kind)
	assert.Equal(t, 404, result.Failure.Status)
}

func TestTriggerDeployServerErrorSingleCall(t *testing.T) {
	api := newStubAPI()
	api.err = &render.APIError{StatusCode: 500, Message: "internal server error"}
	d := newTestDispatcher(api)

	result := d.Dispatch(context.Background(), Invocation{
		Name:      "trigger_deploy",
		Arguments: map[string]interface{}{"service_id": "srv-1"},
	})

	require.True(t, result.IsError())
	assert.Equal(t, KindHTTPError, result.Failure.Kind)
	assert.Equal(t, 500, result.Failure.Status)
	assert.Equal(t, 1, api.calls["CreateDeploy"], "exactly one outbound call, no retry")
}

func TestTimeoutAndConnectionKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind FailureKind
	}{
		{"timeout", render.ErrTimeout, KindTimeout},
		{"connection", render.ErrConnection, KindConnection},
		{"other", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newStubAPI()
			api.err = tc.err
			d := newTestDispatcher(api)

			result := d.Dispatch(context.Background(), Invocation{Name: "list_services"})

			require.True(t, result.IsError())
			assert.Equal(t, tc.kind, result.Failure.Kind)
		})
	}
}

func TestHandlerPanicBecomesInternalError(t *testing.T) {
	registry := newRegistry()
	registry.register(Descriptor{
		Tool: mcp.NewTool("explode", mcp.WithDescription("always panics")),
		Handler: func(ctx context.Context, args Args) Result {
			panic("kaboom")
		},
	})
	d := NewDispatcher(registry)

	result := d.Dispatch(context.Background(), Invocation{Name: "explode"})

	require.True(t, result.IsError())
	assert.Equal(t, KindInternal, result.Failure.Kind)
}

func TestAccountInfoIsIdempotent(t *testing.T) {
	api := newStubAPI()
	api.owner = &render.Owner{ID: "usr-1", Name: "Jane", Email: "jane@example.com", Type: "user"}
	d := newTestDispatcher(api)

	inv := Invocation{Name: "get_account_info"}
	first := d.Dispatch(context.Background(), inv)
	second := d.Dispatch(context.Background(), inv)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}
