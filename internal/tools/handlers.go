package tools

import (
	"context"
	"fmt"

	"renderctl/internal/render"

	"github.com/mark3labs/mcp-go/mcp"
)

// DefaultLogLimit is applied when get_service_logs is called without an
// explicit limit.
const DefaultLogLimit = 100

// RenderAPI is the slice of the Render client the handlers need. The
// concrete *render.Client satisfies it; tests substitute a counting stub.
type RenderAPI interface {
	ListServices(ctx context.Context) ([]render.Service, error)
	GetService(ctx context.Context, serviceID string) (*render.Service, error)
	GetServiceLogs(ctx context.Context, serviceID string, limit int) ([]render.LogEntry, error)
	ListDeploys(ctx context.Context, serviceID string) ([]render.Deploy, error)
	CreateDeploy(ctx context.Context, serviceID string) (*render.Deploy, error)
	GetOwner(ctx context.Context) (*render.Owner, error)
}

// RenderTools bundles the six tool handlers around one API client.
type RenderTools struct {
	api RenderAPI
}

// NewRegistry builds the fixed six-entry tool table. Registration happens
// exactly once, here, before any dispatch.
func NewRegistry(api RenderAPI) *Registry {
	rt := &RenderTools{api: api}
	r := newRegistry()

	r.register(Descriptor{
		Tool: mcp.NewTool("list_services",
			mcp.WithDescription("List all Render services in your account"),
		),
		Handler: rt.handleListServices,
	})

	r.register(Descriptor{
		Tool: mcp.NewTool("get_service_status",
			mcp.WithDescription("Get detailed status of a specific Render service"),
			mcp.WithString("service_id",
				mcp.Required(),
				mcp.Description("The Render service ID (srv-...)"),
			),
		),
		Params: []ParamSpec{
			{Name: "service_id", Type: ParamString, Required: true},
		},
		Handler: rt.handleGetServiceStatus,
	})

	r.register(Descriptor{
		Tool: mcp.NewTool("get_service_logs",
			mcp.WithDescription("Get recent logs for a specific Render service"),
			mcp.WithString("service_id",
				mcp.Required(),
				mcp.Description("The Render service ID (srv-...)"),
			),
			mcp.WithNumber("limit",
				mcp.DefaultNumber(DefaultLogLimit),
				mcp.Description("Number of log entries to fetch (default: 100)"),
			),
		),
		Params: []ParamSpec{
			{Name: "service_id", Type: ParamString, Required: true},
			{Name: "limit", Type: ParamInteger, Default: DefaultLogLimit},
		},
		Handler: rt.handleGetServiceLogs,
	})

	r.register(Descriptor{
		Tool: mcp.NewTool("get_deployments",
			mcp.WithDescription("Get deployment history for a specific Render service"),
			mcp.WithString("service_id",
				mcp.Required(),
				mcp.Description("The Render service ID (srv-...)"),
			),
		),
		Params: []ParamSpec{
			{Name: "service_id", Type: ParamString, Required: true},
		},
		Handler: rt.handleGetDeployments,
	})

	r.register(Descriptor{
		Tool: mcp.NewTool("trigger_deploy",
			mcp.WithDescription("Trigger a new deploy for a specific Render service. "+
				"This is not idempotent: the deploy starts as soon as the request is sent, "+
				"and cancelling the call afterwards does not undo it."),
			mcp.WithString("service_id",
				mcp.Required(),
				mcp.Description("The Render service ID to deploy"),
			),
		),
		Params: []ParamSpec{
			{Name: "service_id", Type: ParamString, Required: true},
		},
		Handler: rt.handleTriggerDeploy,
	})

	r.register(Descriptor{
		Tool: mcp.NewTool("get_account_info",
			mcp.WithDescription("Get current account information"),
		),
		Handler: rt.handleGetAccountInfo,
	})

	return r
}

// Result shapes. These are the stable contracts returned to callers;
// upstream fields not listed here are dropped by projection.

// ServiceSummary is one row of the list_services result.
type ServiceSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
	Region string `json:"region,omitempty"`
}

// ServiceStatus is the get_service_status result.
type ServiceStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Status    string `json:"status,omitempty"`
	Region    string `json:"region,omitempty"`
	URL       string `json:"url,omitempty"`
	Suspended string `json:"suspended,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ServiceLogs is the get_service_logs result. Entries keep upstream order.
type ServiceLogs struct {
	ServiceID string            `json:"serviceId"`
	Limit     int               `json:"limit"`
	Logs      []render.LogEntry `json:"logs"`
	Total     int               `json:"total"`
}

// Deployments is the get_deployments result. Entries keep upstream order.
type Deployments struct {
	ServiceID string          `json:"serviceId"`
	Deploys   []render.Deploy `json:"deploys"`
	Total     int             `json:"total"`
}

// DeployConfirmation is the trigger_deploy result.
type DeployConfirmation struct {
	ServiceID   string `json:"serviceId"`
	DeployID    string `json:"deployId"`
	Status      string `json:"status"`
	TriggeredAt string `json:"triggeredAt,omitempty"`
}

// AccountInfo is the get_account_info result.
type AccountInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type,omitempty"`
}

func (rt *RenderTools) handleListServices(ctx context.Context, _ Args) Result {
	services, err := rt.api.ListServices(ctx)
	if err != nil {
		return failFromError(err)
	}

	summaries := make([]ServiceSummary, len(services))
	for i, svc := range services {
		summaries[i] = ServiceSummary{
			ID:     svc.ID,
			Name:   svc.Name,
			Type:   svc.Type,
			Status: svc.ServiceDetail.Status,
			Region: svc.Region,
		}
	}

	summary := fmt.Sprintf("Found %d services", len(summaries))
	if len(summaries) == 0 {
		summary = "No services found"
	}
	return Success(summary, struct {
		Services []ServiceSummary `json:"services"`
		Total    int              `json:"total"`
	}{Services: summaries, Total: len(summaries)})
}

func (rt *RenderTools) handleGetServiceStatus(ctx context.Context, args Args) Result {
	serviceID := args.String("service_id")
	svc, err := rt.api.GetService(ctx, serviceID)
	if err != nil {
		return failFromError(err)
	}

	status := ServiceStatus{
		ID:        svc.ID,
		Name:      svc.Name,
		Type:      svc.Type,
		Status:    svc.ServiceDetail.Status,
		Region:    svc.Region,
		URL:       svc.ServiceDetail.URL,
		Suspended: svc.Suspended,
		CreatedAt: svc.CreatedAt,
		UpdatedAt: svc.UpdatedAt,
	}

	summary := fmt.Sprintf("Service %s (%s)", svc.Name, svc.ID)
	if status.Status != "" {
		summary = fmt.Sprintf("Service %s (%s) is %s", svc.Name, svc.ID, status.Status)
	}
	return Success(summary, status)
}

func (rt *RenderTools) handleGetServiceLogs(ctx context.Context, args Args) Result {
	serviceID := args.String("service_id")
	limit := args.Int("limit")

	logs, err := rt.api.GetServiceLogs(ctx, serviceID, limit)
	if err != nil {
		return failFromError(err)
	}

	summary := fmt.Sprintf("Fetched %d log entries for %s", len(logs), serviceID)
	if len(logs) == 0 {
		summary = fmt.Sprintf("No logs found for %s", serviceID)
	}
	return Success(summary, ServiceLogs{
		ServiceID: serviceID,
		Limit:     limit,
		Logs:      logs,
		Total:     len(logs),
	})
}

func (rt *RenderTools) handleGetDeployments(ctx context.Context, args Args) Result {
	serviceID := args.String("service_id")

	deploys, err := rt.api.ListDeploys(ctx, serviceID)
	if err != nil {
		return failFromError(err)
	}

	summary := fmt.Sprintf("Found %d deploys for %s", len(deploys), serviceID)
	if len(deploys) == 0 {
		summary = fmt.Sprintf("No deploys found for %s", serviceID)
	}
	return Success(summary, Deployments{
		ServiceID: serviceID,
		Deploys:   deploys,
		Total:     len(deploys),
	})
}

func (rt *RenderTools) handleTriggerDeploy(ctx context.Context, args Args) Result {
	serviceID := args.String("service_id")

	deploy, err := rt.api.CreateDeploy(ctx, serviceID)
	if err != nil {
		return failFromError(err)
	}

	return Success(
		fmt.Sprintf("Deploy %s triggered for %s (status: %s)", deploy.ID, serviceID, deploy.Status),
		DeployConfirmation{
			ServiceID:   serviceID,
			DeployID:    deploy.ID,
			Status:      deploy.Status,
			TriggeredAt: deploy.CreatedAt,
		},
	)
}

func (rt *RenderTools) handleGetAccountInfo(ctx context.Context, _ Args) Result {
	owner, err := rt.api.GetOwner(ctx)
	if err != nil {
		return failFromError(err)
	}

	summary := fmt.Sprintf("Authenticated as %s", owner.Name)
	if owner.Email != "" {
		summary = fmt.Sprintf("Authenticated as %s (%s)", owner.Name, owner.Email)
	}
	return Success(summary, AccountInfo{
		ID:    owner.ID,
		Name:  owner.Name,
		Email: owner.Email,
		Type:  owner.Type,
	})
}
