// Package auth manages the CLI's two local secrets: per-org session tokens
// obtained through the OAuth web-server flow, and the relay pairing secret
// shared with the companion extension. Both live in the OS keyring; nothing
// is written to disk.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "cpqscope"
	relaySecretKey = "relay-secret"
)

// SaveSessionToken stores a session token for one org host.
func SaveSessionToken(orgHost, token string) error {
	if err := keyring.Set(keyringService, "session:"+orgHost, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// LoadSessionToken returns the stored token for orgHost, or "" when none
// exists.
func LoadSessionToken(orgHost string) (string, error) {
	token, err := keyring.Get(keyringService, "session:"+orgHost)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return token, nil
}

// DeleteSessionToken removes the stored token for orgHost. Deleting a token
// that does not exist is not an error.
func DeleteSessionToken(orgHost string) error {
	err := keyring.Delete(keyringService, "session:"+orgHost)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

// RelaySecret returns the pairing secret, generating and storing a fresh one
// on first use.
func RelaySecret() ([]byte, error) {
	stored, err := keyring.Get(keyringService, relaySecretKey)
	if err == nil && stored != "" {
		return base64.StdEncoding.DecodeString(stored)
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("read relay secret: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate relay secret: %w", err)
	}
	if err := keyring.Set(keyringService, relaySecretKey, base64.StdEncoding.EncodeToString(secret)); err != nil {
		return nil, fmt.Errorf("store relay secret: %w", err)
	}
	return secret, nil
}
