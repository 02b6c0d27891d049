package session

import (
	"context"
	"strings"
	"sync"
)

// StaticStore serves a single pre-exported session token for one org host.
// It backs headless runs where the token arrives via environment or keyring
// instead of a live browser.
type StaticStore struct {
	Host  string
	Token string
}

func (s StaticStore) Get(_ context.Context, domain, name string) (string, error) {
	if name != CookieName || s.Token == "" {
		return "", nil
	}
	// Exact host only. Answering parent-domain probes would leak the token
	// to lookups made on behalf of sibling orgs.
	if strings.EqualFold(strings.TrimPrefix(domain, "."), s.Host) {
		return s.Token, nil
	}
	return "", nil
}

func (s StaticStore) All(_ context.Context) ([]Cookie, error) {
	if s.Token == "" {
		return nil, nil
	}
	return []Cookie{{Name: CookieName, Domain: s.Host, Value: s.Token}}, nil
}

// MemoryStore is a mutable in-memory cookie jar for tests and fixtures.
type MemoryStore struct {
	mu      sync.RWMutex
	cookies []Cookie
}

// Set adds or replaces a cookie.
func (m *MemoryStore) Set(domain, name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cookies {
		if c.Domain == domain && c.Name == name {
			m.cookies[i].Value = value
			return
		}
	}
	m.cookies = append(m.cookies, Cookie{Name: name, Domain: domain, Value: value})
}

func (m *MemoryStore) Get(_ context.Context, domain, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cookies {
		if strings.EqualFold(c.Domain, domain) && c.Name == name {
			return c.Value, nil
		}
	}
	return "", nil
}

func (m *MemoryStore) All(_ context.Context) ([]Cookie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Cookie, len(m.cookies))
	copy(out, m.cookies)
	return out, nil
}
