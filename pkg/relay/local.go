package relay

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cpqscope/cli/pkg/orgurl"
	"github.com/cpqscope/cli/pkg/session"
)

const defaultHTTPTimeout = 30 * time.Second

// Local executes proxy requests in-process: normalize the target URL, locate
// the session cookie through the injected Store, perform the HTTP call, and
// hand the raw status and body back. It is the headless stand-in for the
// browser extension and the seam tests hook into.
type Local struct {
	Store session.Store
	HTTP  *http.Client
}

func (l *Local) Send(ctx context.Context, req Request) Result {
	target := orgurl.Normalize(req.URL)
	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		return Fail("invalid target URL: " + req.URL)
	}

	token, err := session.Locate(ctx, l.Store, u.Hostname())
	if err != nil {
		return Fail("session lookup failed: " + err.Error())
	}
	if token == "" {
		return Fail(session.ErrNotFound.Error())
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return Fail("build request: " + err.Error())
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	client := l.HTTP
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Fail("request failed: " + err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fail("read response: " + err.Error())
	}
	return Succeed(Response{Status: resp.StatusCode, Body: string(payload)})
}
