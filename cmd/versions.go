package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/salesforce"
	"github.com/cpqscope/cli/pkg/table"
	"github.com/cpqscope/cli/pkg/util"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the REST API versions the org supports",
	RunE:  runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
	versionsCmd.Flags().StringP("output", "o", "", "Output format: json")
}

func runVersions(cmd *cobra.Command, args []string) error {
	client, cleanup, err := mustGetClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	output, _ := cmd.Flags().GetString("output")

	versions, err := client.Versions(cmd.Context())
	if err != nil {
		return err
	}

	if output == "json" {
		return util.PrintPrettyJSON(versions)
	}
	if len(versions) == 0 {
		pterm.Info.Println("Org reported no API versions")
		return nil
	}

	latest := salesforce.LatestVersion(versions)
	tableData := pterm.TableData{{"Version", "Label", ""}}
	for _, v := range versions {
		marker := ""
		if v.Version == latest.Version {
			marker = pterm.Green("latest")
		}
		tableData = append(tableData, []string{v.Version, v.Label, marker})
	}
	table.PrintTableNoPad(tableData, true)
	return nil
}
