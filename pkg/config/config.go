// Package config reads CLI configuration from the environment, with an
// optional .env file for development setups.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultRelayAddr is where the relay bridge listens for the companion
	// extension. Loopback only.
	DefaultRelayAddr = "127.0.0.1:7465"

	// DefaultTimeout bounds each relay send.
	DefaultTimeout = 30 * time.Second
)

// Config is the environment-derived CLI configuration. Zero fields mean
// "unset"; commands decide which ones are mandatory.
type Config struct {
	// OrgURL is the target org, any URL variant. Mandatory for commands
	// that reach the org.
	OrgURL string
	// APIVersion overrides the client's fixed default, e.g. "61.0".
	APIVersion string
	// SessionToken is a pre-exported session id for headless runs.
	SessionToken string
	// RelayAddr is the bridge listen address.
	RelayAddr string
	// Timeout bounds each proxied call.
	Timeout time.Duration
	// ClientID is the connected-app consumer key for `auth login`.
	ClientID string
}

// Load reads configuration from the process environment. A .env file in the
// working directory is merged in when present; real environment variables
// win.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		OrgURL:       strings.TrimSpace(os.Getenv("CPQSCOPE_ORG_URL")),
		APIVersion:   strings.TrimSpace(os.Getenv("CPQSCOPE_API_VERSION")),
		SessionToken: strings.TrimSpace(os.Getenv("CPQSCOPE_SESSION_ID")),
		RelayAddr:    strings.TrimSpace(os.Getenv("CPQSCOPE_RELAY_ADDR")),
		ClientID:     strings.TrimSpace(os.Getenv("CPQSCOPE_CLIENT_ID")),
		Timeout:      DefaultTimeout,
	}
	if cfg.RelayAddr == "" {
		cfg.RelayAddr = DefaultRelayAddr
	}
	if raw := strings.TrimSpace(os.Getenv("CPQSCOPE_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// ConfigurationError is fatal to the current invocation: nothing identifies
// the target org or the setup is otherwise unusable.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ErrMissingOrg builds the error for an unresolvable org origin.
func ErrMissingOrg() *ConfigurationError {
	return &ConfigurationError{
		Message: "no org configured: pass --org or set CPQSCOPE_ORG_URL",
	}
}
