// Package external provides the HTTP plumbing shared by every outbound call
// (image search, search-engine ping, indexing notification, email).
//
// Information Hiding:
// - Timeout and host allowlist enforcement hidden behind Client
// - Each call reports a Result instead of panicking or logging on its own
// - Callers decide whether a soft failure halts the run
package external

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of one external call.
// Success is determined by whether Err is nil.
type Result struct {
	Output string `json:"output"`
	Err    error  `json:"-"`
}

// MarshalJSON reports the outcome with the error flattened to a string.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Output  string `json:"output,omitempty"`
			Reason  string `json:"reason"`
		}{
			Success: false,
			Output:  r.Output,
			Reason:  r.Err.Error(),
		})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Output  string `json:"output"`
	}{
		Success: true,
		Output:  r.Output,
	})
}

// Success returns true if the call succeeded.
func (r Result) Success() bool {
	return r.Err == nil
}

// Reason returns the failure reason, or "" on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// String renders the result for log lines.
func (r Result) String() string {
	if r.Err != nil {
		return "failed: " + r.Err.Error()
	}
	if r.Output == "" {
		return "ok"
	}
	return "ok: " + r.Output
}

// Succeeded creates a successful result.
func Succeeded(output string) Result {
	return Result{Output: output}
}

// Failed creates a failed result.
func Failed(err error) Result {
	return Result{Err: err}
}

// Failedf creates a failed result with a formatted reason.
func Failedf(format string, args ...any) Result {
	return Result{Err: fmt.Errorf(format, args...)}
}

// Skipped marks a call that was not attempted, e.g. because its credential is unset.
func Skipped(reason string) Result {
	return Result{Err: fmt.Errorf("skipped: %s", reason)}
}
