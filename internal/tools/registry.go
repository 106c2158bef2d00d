package tools

import (
	"context"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
)

// ParamType is the declared type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
)

// ParamSpec declares one parameter of a tool. Required parameters have no
// default; optional parameters may carry one, applied before dispatch.
type ParamSpec struct {
	Name     string
	Type     ParamType
	Required bool
	Default  interface{}
}

// Handler executes one tool against validated arguments.
type Handler func(ctx context.Context, args Args) Result

// Descriptor ties a tool name to its MCP schema, parameter declarations,
// and handler.
type Descriptor struct {
	Tool    mcp.Tool
	Params  []ParamSpec
	Handler Handler
}

// Registry maps tool names to descriptors. It is populated once at
// construction and read-only afterwards, so concurrent lookups need no
// locking.
type Registry struct {
	descriptors map[string]Descriptor
}

func newRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

func (r *Registry) register(d Descriptor) {
	r.descriptors[d.Tool.Name] = d
}

// Lookup returns the descriptor for an exact tool name match.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Names returns all registered tool names, sorted for stable output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptors returns every registered descriptor, ordered by name.
func (r *Registry) Descriptors() []Descriptor {
	descs := make([]Descriptor, 0, len(r.descriptors))
	for _, name := range r.Names() {
		descs = append(descs, r.descriptors[name])
	}
	return descs
}
