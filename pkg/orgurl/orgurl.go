// Package orgurl maps the various hostname forms a Salesforce org can be
// addressed by (Lightning experience, sandbox, developer edition) to the
// canonical My Domain API host, and wraps the result in an immutable Origin.
package orgurl

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	lightningSuffix = ".lightning.force.com"
	apiSuffix       = ".my.salesforce.com"
)

// Normalize rewrites a Lightning-experience URL to its canonical My Domain
// form, preserving the subdomain prefix verbatim (sandbox and develop
// variants included). URLs that are not Lightning-shaped, or that fail to
// parse, come back unchanged; callers treat normalization as best-effort.
// Normalize is idempotent.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, lightningSuffix) {
		return raw
	}
	u.Host = strings.TrimSuffix(host, lightningSuffix) + apiSuffix
	u.Scheme = "https"
	return u.String()
}

// Origin is one org's API endpoint: https scheme, hostname only, no trailing
// slash. The zero value is invalid; construct through Parse.
type Origin struct {
	host string
}

// Parse builds an Origin from any org URL variant. Bare hostnames are
// accepted; Lightning hosts are normalized to their My Domain form.
func Parse(raw string) (Origin, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Origin{}, fmt.Errorf("empty org URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	norm := Normalize(strings.TrimRight(raw, "/"))
	u, err := url.Parse(norm)
	if err != nil {
		return Origin{}, fmt.Errorf("invalid org URL %q: %w", raw, err)
	}
	if u.Hostname() == "" {
		return Origin{}, fmt.Errorf("org URL %q has no hostname", raw)
	}
	return Origin{host: strings.ToLower(u.Hostname())}, nil
}

// Host returns the canonical hostname.
func (o Origin) Host() string { return o.host }

// URL returns the base URL with no trailing slash.
func (o Origin) URL() string { return "https://" + o.host }

// IsZero reports whether the Origin was never parsed.
func (o Origin) IsZero() bool { return o.host == "" }

func (o Origin) String() string { return o.URL() }
