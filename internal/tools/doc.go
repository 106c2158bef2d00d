// Package tools holds the tool table for the Render adapter: a fixed,
// read-only registry of six named tools, a dispatcher that validates
// invocations against each tool's declared parameters before any network
// call, and one handler per tool that shapes the upstream response into a
// stable result.
//
// Handlers depend on the RenderAPI interface rather than the concrete
// client, so tests can count and stub upstream calls.
package tools
