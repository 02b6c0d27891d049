package cmd

import (
	"strings"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/config"
)

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open the org in the default browser",
	Long: `Open launches the org's home page, or a specific path when given, e.g.

  cpqscope open /lightning/setup/ObjectManager/home`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	origin, err := resolveOrigin(cmd, config.Load())
	if err != nil {
		return err
	}

	target := origin.URL()
	if len(args) == 1 {
		path := args[0]
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		target += path
	}

	pterm.Info.Printf("Opening %s\n", target)
	return browser.OpenURL(target)
}
