package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/salesforce"
	"github.com/cpqscope/cli/pkg/table"
	"github.com/cpqscope/cli/pkg/util"
)

var describeCmd = &cobra.Command{
	Use:   "describe <object>",
	Short: "Show an object's fields with setup-style type labels",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("custom-only", false, "Only show custom fields")
	describeCmd.Flags().StringP("output", "o", "", "Output format: json")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	client, cleanup, err := mustGetClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	customOnly, _ := cmd.Flags().GetBool("custom-only")
	output, _ := cmd.Flags().GetString("output")

	describe, err := client.Describe(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("describe %s: %w", args[0], err)
	}

	if output == "json" {
		return util.PrintPrettyJSON(describe)
	}

	pterm.Printf("%s (%s)\n\n", describe.Label, describe.Name)
	tableData := pterm.TableData{{"Field", "Label", "Type", "Nillable", "Calculated"}}
	shown := 0
	for _, f := range describe.Fields {
		if customOnly && !f.Custom {
			continue
		}
		tableData = append(tableData, []string{
			f.Name,
			util.OrDash(f.Label),
			salesforce.FormatFieldType(f),
			fmt.Sprintf("%t", f.Nillable),
			fmt.Sprintf("%t", f.Calculated),
		})
		shown++
	}
	if shown == 0 {
		pterm.Info.Println("No matching fields")
		return nil
	}
	table.PrintTableNoPad(tableData, true)
	return nil
}
