package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterAll wires every registered tool into an MCP server, routing
// calls through the dispatcher.
func RegisterAll(s *server.MCPServer, d *Dispatcher) {
	for _, desc := range d.Registry().Descriptors() {
		s.AddTool(desc.Tool, mcpHandler(d, desc.Tool.Name))
	}
}

// mcpHandler adapts one tool to the mcp-go handler signature. Failures
// come back as tool errors, never as protocol errors: the caller decides
// what to do with them.
func mcpHandler(d *Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]interface{})
		result := d.Dispatch(ctx, Invocation{Name: name, Arguments: args})
		return toCallToolResult(result)
	}
}

// toCallToolResult renders a dispatch result as MCP content: structured
// JSON for success, a tagged error string for failure.
func toCallToolResult(result Result) (*mcp.CallToolResult, error) {
	if result.IsError() {
		return mcp.NewToolResultError(result.Failure.String()), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("internal_error: encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
