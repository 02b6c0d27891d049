package salesforce

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AuthExpiredError reports a 401 from the org. It carries a message distinct
// from generic remote failures so callers can prompt for a fresh login.
type AuthExpiredError struct{}

func (AuthExpiredError) Error() string {
	return "Salesforce session expired or invalid; log in to the org again"
}

// RemoteError is any other non-2xx response. Message is the best available
// server-supplied text, falling back to the bare HTTP status.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// ChannelError means the relay could not deliver the call at all.
type ChannelError struct {
	Message string
}

func (e *ChannelError) Error() string { return e.Message }

// sfError is the error body shape Salesforce returns: either a single object
// or an array of them.
type sfError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// remoteMessage extracts the server-supplied error text from body, joining
// multiple messages with ", ". Returns "HTTP <status>" when the body is not
// parseable as either known shape.
func remoteMessage(status int, body string) string {
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "[") {
		var errs []sfError
		if json.Unmarshal([]byte(trimmed), &errs) == nil && len(errs) > 0 {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				if e.Message != "" {
					msgs = append(msgs, e.Message)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, ", ")
			}
		}
	} else {
		var e sfError
		if json.Unmarshal([]byte(trimmed), &e) == nil && e.Message != "" {
			return e.Message
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}
