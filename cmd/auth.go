package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/auth"
	"github.com/cpqscope/cli/pkg/config"
	"github.com/cpqscope/cli/pkg/orgurl"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage org sessions",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the org via the browser and store the session token",
	Long: `Login runs the OAuth 2.0 web-server flow with PKCE against the org's
connected app and stores the resulting token in the OS keyring, keyed by
org host. The token itself is never printed or written to disk.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token for the org",
	RunE:  runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authLoginCmd.Flags().String("client-id", "", "Connected-app consumer key (defaults to CPQSCOPE_CLIENT_ID)")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	origin, err := resolveOrigin(cmd, cfg)
	if err != nil {
		return err
	}

	clientID, _ := cmd.Flags().GetString("client-id")
	if clientID == "" {
		clientID = cfg.ClientID
	}

	pterm.Info.Printf("Opening %s in your browser to log in...\n", origin.URL())
	result, err := auth.Login(cmd.Context(), origin, clientID)
	if err != nil {
		return err
	}

	// The token is stored under the host the org reported, which may differ
	// from the host the user typed (Lightning vs My Domain form).
	host := origin.Host()
	if result.InstanceURL != "" {
		if instance, err := orgurl.Parse(result.InstanceURL); err == nil {
			host = instance.Host()
		}
	}
	if err := auth.SaveSessionToken(host, result.AccessToken); err != nil {
		return err
	}

	pterm.Success.Printf("Logged in to %s\n", host)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	origin, err := resolveOrigin(cmd, config.Load())
	if err != nil {
		return err
	}
	if err := auth.DeleteSessionToken(origin.Host()); err != nil {
		return err
	}
	pterm.Success.Printf("Logged out of %s\n", origin.Host())
	return nil
}
