package tools

import (
	"context"
	"fmt"

	"renderctl/pkg/logging"
)

// Invocation is one incoming tool call: a name and a parameter bag.
type Invocation struct {
	Name      string
	Arguments map[string]interface{}
}

// Args holds validated, default-applied arguments for a handler. Values
// are normalized to the declared parameter types.
type Args map[string]interface{}

// String returns a string argument, or "" if absent.
func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

// Int returns an integer argument, or 0 if absent.
func (a Args) Int(key string) int {
	v, _ := a[key].(int)
	return v
}

// Dispatcher resolves invocations against the registry and runs handlers.
// It is stateless between calls and safe for concurrent use.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher wraps a registry for dispatching.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Registry exposes the read-only tool table, for listings.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch validates and executes one invocation. Unknown names and bad
// parameters fail before any network I/O happens; a panicking handler is
// converted to an internal_error failure rather than taking the process
// down.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) Result {
	desc, ok := d.registry.Lookup(inv.Name)
	if !ok {
		return Fail(KindUnknownTool, "unknown tool %q", inv.Name)
	}

	args, failure := validateParams(desc.Params, inv.Arguments)
	if failure != nil {
		return Result{Failure: failure}
	}

	return d.invoke(ctx, inv.Name, desc, args)
}

func (d *Dispatcher) invoke(ctx context.Context, name string, desc Descriptor, args Args) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Dispatcher", fmt.Errorf("%v", r), "handler for %s panicked", name)
			res = Fail(KindInternal, "tool %s failed unexpectedly", name)
		}
	}()
	return desc.Handler(ctx, args)
}

// validateParams checks the invocation's parameter bag against the
// declared specs. Missing required parameters and type mismatches fail;
// unknown extra parameters are ignored; declared defaults fill the gaps.
func validateParams(specs []ParamSpec, raw map[string]interface{}) (Args, *Failure) {
	args := make(Args, len(specs))
	for _, spec := range specs {
		value, present := raw[spec.Name]
		if !present || value == nil {
			if spec.Required {
				return nil, &Failure{
					Kind:    KindInvalidParameters,
					Message: fmt.Sprintf("missing required parameter %q", spec.Name),
				}
			}
			if spec.Default != nil {
				args[spec.Name] = spec.Default
			}
			continue
		}

		normalized, err := normalizeParam(spec, value)
		if err != nil {
			return nil, &Failure{Kind: KindInvalidParameters, Message: err.Error()}
		}
		args[spec.Name] = normalized
	}
	return args, nil
}

func normalizeParam(spec ParamSpec, value interface{}) (interface{}, error) {
	switch spec.Type {
	case ParamString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be a string", spec.Name)
		}
		if s == "" {
			return nil, fmt.Errorf("parameter %q must not be empty", spec.Name)
		}
		return s, nil
	case ParamInteger:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			// JSON numbers arrive as float64; reject fractional values.
			if v != float64(int(v)) {
				return nil, fmt.Errorf("parameter %q must be an integer", spec.Name)
			}
			return int(v), nil
		default:
			return nil, fmt.Errorf("parameter %q must be an integer", spec.Name)
		}
	default:
		return nil, fmt.Errorf("parameter %q has unsupported type %q", spec.Name, spec.Type)
	}
}
