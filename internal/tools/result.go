package tools

import (
	"errors"
	"fmt"

	"renderctl/internal/render"
)

// FailureKind classifies why a tool invocation failed.
type FailureKind string

const (
	KindUnknownTool       FailureKind = "unknown_tool"
	KindInvalidParameters FailureKind = "invalid_parameters"
	KindNotFound          FailureKind = "not_found"
	KindHTTPError         FailureKind = "http_error"
	KindTimeout           FailureKind = "timeout"
	KindConnection        FailureKind = "connection_error"
	KindInternal          FailureKind = "internal_error"
)

// Failure is the structured error half of a Result. Status is the
// upstream HTTP status when the kind is http_error or not_found.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Status  int         `json:"status,omitempty"`
}

func (f *Failure) String() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", f.Kind, f.Message, f.Status)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Result is what a dispatch returns: either Data plus a human-readable
// Summary, or a Failure. Exactly one side is set.
type Result struct {
	Summary string      `json:"summary,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Failure *Failure    `json:"failure,omitempty"`
}

// IsError reports whether the result carries a failure.
func (r Result) IsError() bool {
	return r.Failure != nil
}

// Success builds a successful result.
func Success(summary string, data interface{}) Result {
	return Result{Summary: summary, Data: data}
}

// Fail builds a failed result.
func Fail(kind FailureKind, format string, args ...interface{}) Result {
	return Result{Failure: &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}}
}

// failFromError maps a client error onto the failure taxonomy. Invoked by
// handlers after an upstream call; parameter and lookup failures never
// reach this path.
func failFromError(err error) Result {
	var apiErr *render.APIError
	switch {
	case errors.As(err, &apiErr):
		kind := KindHTTPError
		if apiErr.StatusCode == 404 {
			kind = KindNotFound
		}
		return Result{Failure: &Failure{
			Kind:    kind,
			Message: apiErr.Error(),
			Status:  apiErr.StatusCode,
		}}
	case errors.Is(err, render.ErrTimeout):
		return Fail(KindTimeout, "%v", err)
	case errors.Is(err, render.ErrConnection):
		return Fail(KindConnection, "%v", err)
	default:
		return Fail(KindInternal, "%v", err)
	}
}
