package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/auth"
	"github.com/cpqscope/cli/pkg/config"
	"github.com/cpqscope/cli/pkg/orgurl"
	"github.com/cpqscope/cli/pkg/relay"
	"github.com/cpqscope/cli/pkg/salesforce"
	"github.com/cpqscope/cli/pkg/session"
)

var rootCmd = &cobra.Command{
	Use:   "cpqscope",
	Short: "Inspect Salesforce CPQ orgs from the terminal",
	Long: `cpqscope queries Salesforce CPQ orgs over the REST and Tooling APIs,
reusing an existing org session instead of a stored password.

Sessions come from one of three places, in order of precedence:
  CPQSCOPE_SESSION_ID        an exported session id, for headless runs
  cpqscope auth login        an OAuth token stored in the OS keyring
  --relay                    calls proxied through the companion browser extension`,
	SilenceUsage: true,
}

// Root exposes the command tree to main.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("org", "", "Org URL, any My Domain or Lightning form")
	rootCmd.PersistentFlags().String("api-version", "", `REST API version override, e.g. "62.0"`)
	rootCmd.PersistentFlags().Bool("relay", false, "Proxy calls through the companion browser extension")
}

func resolveOrigin(cmd *cobra.Command, cfg config.Config) (orgurl.Origin, error) {
	raw, _ := cmd.Flags().GetString("org")
	if raw == "" {
		raw = cfg.OrgURL
	}
	if raw == "" {
		return orgurl.Origin{}, config.ErrMissingOrg()
	}
	return orgurl.Parse(raw)
}

// mustGetClient builds the Salesforce client for this invocation. The
// returned cleanup tears down the relay listener when one was started and
// must always be called.
func mustGetClient(cmd *cobra.Command) (*salesforce.Client, func(), error) {
	cfg := config.Load()
	origin, err := resolveOrigin(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	var opts []salesforce.Option
	if v, _ := cmd.Flags().GetString("api-version"); v != "" {
		opts = append(opts, salesforce.WithAPIVersion(v))
	} else if cfg.APIVersion != "" {
		opts = append(opts, salesforce.WithAPIVersion(cfg.APIVersion))
	}

	if useRelay, _ := cmd.Flags().GetBool("relay"); useRelay {
		bridge, cleanup, err := startBridge(cmd.Context(), cfg)
		if err != nil {
			return nil, nil, err
		}
		return salesforce.New(origin, bridge, opts...), cleanup, nil
	}

	token := cfg.SessionToken
	if token == "" {
		token, err = auth.LoadSessionToken(origin.Host())
		if err != nil {
			return nil, nil, err
		}
	}
	if token == "" {
		return nil, nil, &config.ConfigurationError{
			Message: fmt.Sprintf("no session for %s: run `cpqscope auth login`, set CPQSCOPE_SESSION_ID, or pass --relay", origin.Host()),
		}
	}

	channel := &relay.Local{
		Store: session.StaticStore{Host: origin.Host(), Token: token},
		HTTP:  &http.Client{Timeout: cfg.Timeout},
	}
	return salesforce.New(origin, channel, opts...), func() {}, nil
}

// startBridge listens for the companion extension, prints a pairing token,
// and blocks until the extension attaches or a minute passes.
func startBridge(ctx context.Context, cfg config.Config) (*relay.Bridge, func(), error) {
	secret, err := auth.RelaySecret()
	if err != nil {
		return nil, nil, err
	}

	bridge := relay.NewBridge(secret, cfg.Timeout)
	srv := &http.Server{Addr: cfg.RelayAddr, Handler: bridge}
	go func() { _ = srv.ListenAndServe() }()
	cleanup := func() { _ = srv.Close() }

	token, err := relay.MintPairingToken(secret, 5*time.Minute)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("mint pairing token: %w", err)
	}

	pterm.Info.Printf("Relay listening on ws://%s\n", cfg.RelayAddr)
	pterm.Info.Printf("Pairing token (paste into the extension):\n%s\n", token)
	pterm.Info.Println("Waiting for the browser extension to connect...")

	waitCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := bridge.WaitConnected(waitCtx); err != nil {
		cleanup()
		return nil, nil, err
	}
	pterm.Success.Println("Extension connected")
	return bridge, cleanup, nil
}
