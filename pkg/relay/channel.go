// Package relay carries proxied Salesforce calls between the unprivileged
// CLI process and a privileged session holder: either a companion browser
// extension connected over a local WebSocket bridge, or an in-process
// executor fed an exported session token.
package relay

import (
	"context"
	"encoding/json"
)

// MessageType tags proxy request envelopes on the wire.
const MessageType = "SFDC_PROXY_REQUEST"

// Request is one proxied HTTP call. A fresh value is built per call.
type Request struct {
	URL    string          `json:"url"`
	Method string          `json:"method"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// Result is the tagged outcome of one Send. Success means the privileged
// side completed the HTTP exchange and Data holds a marshaled Response;
// interpreting the HTTP status is the client's job. Failure means the call
// never completed (no session, unreachable extension, timeout) and Error
// carries a human-readable message.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Response is the privileged side's view of one HTTP exchange.
type Response struct {
	Status int    `json:"status"`
	Body   string `json:"body,omitempty"`
}

// Channel delivers one Request to the privileged side and resolves exactly
// once. Implementations must never hang: an unreachable or crashed
// privileged side resolves as a failed Result, and concurrent sends are
// independent with no ordering guarantee between them.
type Channel interface {
	Send(ctx context.Context, req Request) Result
}

// Fail builds a failed Result.
func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Succeed marshals resp into a successful Result.
func Succeed(resp Response) Result {
	data, err := json.Marshal(resp)
	if err != nil {
		return Fail("encode response: " + err.Error())
	}
	return Result{Success: true, Data: data}
}

// envelope is the wire frame sent to the extension.
type envelope struct {
	Type    string  `json:"type"`
	ID      string  `json:"id"`
	Payload Request `json:"payload"`
}

// reply is the wire frame the extension sends back.
type reply struct {
	ID      string          `json:"id"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}
