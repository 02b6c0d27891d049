package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/auth"
	"github.com/cpqscope/cli/pkg/config"
	"github.com/cpqscope/cli/pkg/relay"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Manage the browser-extension relay",
}

var relayServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay listener for the companion extension",
	Long: `Serve starts the WebSocket endpoint the companion extension connects to
and keeps it running until interrupted. Commands run with --relay start
their own short-lived listener; serve is mainly useful when debugging the
extension itself.`,
	RunE: runRelayServe,
}

var relayTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a fresh pairing token for the extension",
	RunE:  runRelayToken,
}

func init() {
	rootCmd.AddCommand(relayCmd)
	relayCmd.AddCommand(relayServeCmd)
	relayCmd.AddCommand(relayTokenCmd)
	relayTokenCmd.Flags().Duration("ttl", 5*time.Minute, "Pairing token lifetime")
}

func runRelayServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	secret, err := auth.RelaySecret()
	if err != nil {
		return err
	}

	bridge := relay.NewBridge(secret, cfg.Timeout)
	token, err := relay.MintPairingToken(secret, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("mint pairing token: %w", err)
	}

	pterm.Info.Printf("Relay listening on ws://%s\n", cfg.RelayAddr)
	pterm.Info.Printf("Pairing token (paste into the extension):\n%s\n", token)

	srv := &http.Server{Addr: cfg.RelayAddr, Handler: bridge}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
		return srv.Close()
	}
}

func runRelayToken(cmd *cobra.Command, args []string) error {
	ttl, _ := cmd.Flags().GetDuration("ttl")
	secret, err := auth.RelaySecret()
	if err != nil {
		return err
	}
	token, err := relay.MintPairingToken(secret, ttl)
	if err != nil {
		return fmt.Errorf("mint pairing token: %w", err)
	}
	fmt.Println(token)
	return nil
}
