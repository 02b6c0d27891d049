// Package session locates the Salesforce session token inside a browser
// cookie store. The store itself is a port: the relay's companion extension
// implements it against the live browser, and tests implement it in memory.
package session

import (
	"context"
	"errors"
	"strings"
)

// CookieName is the Salesforce session cookie.
const CookieName = "sid"

// ErrNotFound reports that no session cookie exists for the org. Callers are
// expected to turn this into user-facing guidance to log in.
var ErrNotFound = errors.New("no Salesforce session found; log in to the org in your browser and try again")

// Cookie is one browser cookie as exposed by a privileged store. Domain may
// carry a leading dot when the cookie is scoped to a parent domain.
type Cookie struct {
	Name   string
	Domain string
	Value  string
}

// Store is the read-only cookie-jar port. No write path exists.
type Store interface {
	// Get returns the value of the named cookie scoped to exactly domain,
	// or "" when no such cookie exists.
	Get(ctx context.Context, domain, name string) (string, error)
	// All returns every cookie the store holds.
	All(ctx context.Context) ([]Cookie, error)
}

// Locate finds the session token for hostname. Salesforce scopes its session
// cookie at the exact subdomain or at a parent domain depending on org
// configuration, so three strategies run in order: exact host, leading-dot
// parent domains, and a broad scan over the whole store. The first non-empty
// value wins. A missing cookie yields ("", nil); the token itself is never
// logged or persisted.
func Locate(ctx context.Context, store Store, hostname string) (string, error) {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return "", nil
	}

	var lastErr error
	if v, err := store.Get(ctx, hostname, CookieName); err != nil {
		lastErr = err
	} else if v != "" {
		return v, nil
	}

	for _, domain := range parentDomains(hostname) {
		if v, err := store.Get(ctx, domain, CookieName); err != nil {
			lastErr = err
		} else if v != "" {
			return v, nil
		}
	}

	cookies, err := store.All(ctx)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", lastErr
	}
	for _, c := range cookies {
		if c.Name == CookieName && c.Value != "" && domainMatches(hostname, c.Domain) {
			return c.Value, nil
		}
	}
	return "", nil
}

// parentDomains returns the leading-dot ancestors of host down to the
// registrable domain: "acme.my.salesforce.com" yields
// [".acme.my.salesforce.com", ".my.salesforce.com", ".salesforce.com"].
func parentDomains(host string) []string {
	labels := strings.Split(host, ".")
	var out []string
	for i := 0; i < len(labels)-1; i++ {
		out = append(out, "."+strings.Join(labels[i:], "."))
	}
	return out
}

// domainMatches reports whether a cookie scoped to domain applies to host.
func domainMatches(host, domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	bare := strings.TrimPrefix(domain, ".")
	return host == bare || strings.HasSuffix(host, "."+bare)
}
