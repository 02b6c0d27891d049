package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cpqscope/cli/pkg/orgurl"
	"github.com/cpqscope/cli/pkg/relay"
)

// DefaultAPIVersion is the fixed REST API version; it is configuration, not
// negotiated with the org.
const DefaultAPIVersion = "v60.0"

// Client issues authenticated REST and SOQL calls against one org. It is the
// only type callers outside this package group should use directly.
type Client struct {
	origin  orgurl.Origin
	version string
	channel relay.Channel
}

// Option configures a Client.
type Option func(*Client)

// WithAPIVersion overrides DefaultAPIVersion. Versions may be given with or
// without the leading "v".
func WithAPIVersion(v string) Option {
	return func(c *Client) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		c.version = v
	}
}

// New builds a Client for origin sending calls over channel.
func New(origin orgurl.Origin, channel relay.Channel, opts ...Option) *Client {
	c := &Client{origin: origin, version: DefaultAPIVersion, channel: channel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the org the client is bound to.
func (c *Client) Origin() orgurl.Origin { return c.origin }

// APIVersion returns the configured REST version, "v60.0" form.
func (c *Client) APIVersion() string { return c.version }

// Request performs one call and returns the decoded payload, or nil for an
// empty or 204 response. Absolute URLs pass through (normalized); paths
// starting with "/" are resolved against the org origin; bare resource paths
// are resolved under /services/data/<version>.
func (c *Client) Request(ctx context.Context, pathOrURL, method string, body any) (json.RawMessage, error) {
	target, err := c.resolve(pathOrURL)
	if err != nil {
		return nil, err
	}

	var encoded json.RawMessage
	if body != nil {
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	res := c.channel.Send(ctx, relay.Request{URL: target, Method: method, Body: encoded})
	if !res.Success {
		return nil, &ChannelError{Message: res.Error}
	}

	var resp relay.Response
	if err := json.Unmarshal(res.Data, &resp); err != nil {
		return nil, &ChannelError{Message: "malformed relay response: " + err.Error()}
	}
	return interpret(resp)
}

// interpret maps an HTTP exchange onto the error taxonomy: 204 and empty
// bodies are a successful nil payload, 401 is AuthExpiredError, any other
// non-2xx is a RemoteError with the best server-supplied message.
func interpret(resp relay.Response) (json.RawMessage, error) {
	switch {
	case resp.Status == http.StatusNoContent:
		return nil, nil
	case resp.Status == http.StatusUnauthorized:
		return nil, AuthExpiredError{}
	case resp.Status >= 200 && resp.Status < 300:
		if strings.TrimSpace(resp.Body) == "" {
			return nil, nil
		}
		return json.RawMessage(resp.Body), nil
	default:
		return nil, &RemoteError{Status: resp.Status, Message: remoteMessage(resp.Status, resp.Body)}
	}
}

func (c *Client) resolve(pathOrURL string) (string, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return orgurl.Normalize(pathOrURL), nil
	}
	if c.origin.IsZero() {
		return "", &ChannelError{Message: "client has no org origin configured"}
	}
	if strings.HasPrefix(pathOrURL, "/") {
		return c.origin.URL() + pathOrURL, nil
	}
	return fmt.Sprintf("%s/services/data/%s/%s", c.origin.URL(), c.version, pathOrURL), nil
}

// Query runs a SOQL query and follows pagination until exhausted, returning
// all records in server order. The page loop is unbounded, trusting the
// remote to terminate it, but honors ctx cancellation.
func (c *Client) Query(ctx context.Context, soql string) ([]Record, error) {
	return c.queryAll(ctx, "query/?q="+url.QueryEscape(soql))
}

// ToolingQuery is Query against the Tooling API object space.
func (c *Client) ToolingQuery(ctx context.Context, soql string) ([]Record, error) {
	return c.queryAll(ctx, "tooling/query/?q="+url.QueryEscape(soql))
}

func (c *Client) queryAll(ctx context.Context, first string) ([]Record, error) {
	var records []Record
	next := first
	for {
		raw, err := c.Request(ctx, next, http.MethodGet, nil)
		if err != nil {
			return nil, err
		}
		var page QueryResult
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("decode query response: %w", err)
		}
		records = append(records, page.Records...)
		if page.NextRecordsURL == "" {
			return records, nil
		}
		// Continuation URLs can come back in Lightning-domain form.
		next = orgurl.Normalize(page.NextRecordsURL)
	}
}

// Describe fetches an object's field schema.
func (c *Client) Describe(ctx context.Context, objectName string) (*DescribeResult, error) {
	raw, err := c.Request(ctx, "sobjects/"+objectName+"/describe", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	var out DescribeResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode describe response: %w", err)
	}
	return &out, nil
}

// Versions lists the REST API versions the org supports.
func (c *Client) Versions(ctx context.Context) ([]APIVersion, error) {
	raw, err := c.Request(ctx, "/services/data", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	var out []APIVersion
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode version listing: %w", err)
	}
	return out, nil
}
