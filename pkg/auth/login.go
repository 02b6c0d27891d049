package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/oauth2"

	"github.com/cpqscope/cli/pkg/orgurl"
)

// callbackAddr is the loopback listener the OAuth redirect lands on. It must
// match the connected app's configured callback URL.
const callbackAddr = "127.0.0.1:1717"

// LoginResult is the outcome of a completed web-server flow.
type LoginResult struct {
	AccessToken string
	InstanceURL string
}

// Login runs the OAuth 2.0 web-server flow with PKCE against the org: it
// opens the authorize URL in the default browser, waits for the redirect on
// a loopback listener, and exchanges the code for a token. clientID is the
// connected app's consumer key.
func Login(ctx context.Context, origin orgurl.Origin, clientID string) (*LoginResult, error) {
	if clientID == "" {
		return nil, fmt.Errorf("no connected-app client id: set CPQSCOPE_CLIENT_ID")
	}

	cfg := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: "http://" + callbackAddr + "/OauthRedirect",
		Scopes:      []string{"api", "refresh_token"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  origin.URL() + "/services/oauth2/authorize",
			TokenURL: origin.URL() + "/services/oauth2/token",
		},
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	state := hex.EncodeToString(stateBytes)
	verifier := oauth2.GenerateVerifier()

	listener, err := net.Listen("tcp", callbackAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", callbackAddr, err)
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- errors.New("oauth state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- errors.New("oauth redirect carried no code")
			return
		}
		fmt.Fprintln(w, "Login complete. You can close this tab.")
		codeCh <- code
	})}
	go func() { _ = srv.Serve(listener) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	if err := browser.OpenURL(authURL); err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("login canceled: %w", ctx.Err())
	}

	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	result := &LoginResult{AccessToken: token.AccessToken}
	if instance, ok := token.Extra("instance_url").(string); ok {
		result.InstanceURL = instance
	}
	return result, nil
}
