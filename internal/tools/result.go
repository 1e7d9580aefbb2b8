package tools

import (
	"github.com/mcncl/jsonkit/internal/errors"
)

// Result is the uniform envelope every execution returns.
type Result struct {
	Success  bool             `json:"success"`
	Result   string           `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
	Code     errors.ErrorType `json:"code,omitempty"`
	Metadata map[string]any   `json:"metadata,omitempty"`
}

// genericFailure is used when a failure carries no message.
const genericFailure = "tool execution failed"

// Succeeded builds a successful envelope.
func Succeeded(out Output) Result {
	return Result{Success: true, Result: out.Text, Metadata: out.Metadata}
}

// Failed builds a failed envelope from err. Errors without a type are
// reported as execution failures.
func Failed(err error, metadata map[string]any) Result {
	msg := errors.Message(err)
	if msg == "" {
		msg = genericFailure
	}
	code := errors.TypeOf(err)
	if code == errors.ErrorTypeUnknown {
		code = errors.ErrorTypeExecution
	}
	return Result{Success: false, Error: msg, Code: code, Metadata: metadata}
}
