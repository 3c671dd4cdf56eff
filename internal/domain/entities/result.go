package entities

import (
	"encoding/json"

	"github.com/toolbelt/toolbelt/internal/domain/errors"
)

// Result is the envelope every tool operation returns, serialized to JSON.
// It replaces the two ad hoc error channels the adapters grew over time
// (error strings and success flags) with a single discriminated shape.
type Result struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// OK wraps a payload in a success envelope.
func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// Failed wraps an error in a failure envelope, carrying its kind. Data may
// still hold echoed-back inputs or partial server state so the model sees
// what the call was about.
func Failed(err error, data any) Result {
	return Result{
		Success:   false,
		Data:      data,
		Error:     err.Error(),
		ErrorKind: errors.KindOf(err),
	}
}

// JSON serializes the envelope. Marshal can only fail on unsupported payload
// types, which would be a programming error in the adapter; in that case a
// minimal decode-failure envelope is returned instead.
func (r Result) JSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"error":"failed to encode result","error_kind":"` + errors.KindDecode + `"}`
	}
	return string(data)
}
