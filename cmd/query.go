package cmd

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/salesforce"
	"github.com/cpqscope/cli/pkg/table"
	"github.com/cpqscope/cli/pkg/util"
)

var queryCmd = &cobra.Command{
	Use:   "query <soql>",
	Short: "Run a SOQL query and print all pages of results",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("tooling", false, "Query the Tooling API object space")
	queryCmd.Flags().StringP("output", "o", "", "Output format: json")
}

func runQuery(cmd *cobra.Command, args []string) error {
	client, cleanup, err := mustGetClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tooling, _ := cmd.Flags().GetBool("tooling")
	output, _ := cmd.Flags().GetString("output")

	var records []salesforce.Record
	if tooling {
		records, err = client.ToolingQuery(cmd.Context(), args[0])
	} else {
		records, err = client.Query(cmd.Context(), args[0])
	}
	if err != nil {
		return err
	}

	if output == "json" {
		return util.PrintPrettyJSON(records)
	}
	if len(records) == 0 {
		pterm.Info.Println("No records found")
		return nil
	}

	printRecordTable(records)
	pterm.Printf("\n%d record(s)\n", len(records))
	return nil
}

// printRecordTable renders records with columns taken from the first record,
// in sorted order. The "attributes" envelope Salesforce adds to every record
// is noise here and is dropped.
func printRecordTable(records []salesforce.Record) {
	columns := lo.Filter(lo.Keys(records[0]), func(k string, _ int) bool {
		return k != "attributes"
	})
	sort.Strings(columns)

	tableData := pterm.TableData{columns}
	for _, rec := range records {
		row := lo.Map(columns, func(col string, _ int) string {
			return util.Truncate(util.FormatCell(rec[col]), 60)
		})
		tableData = append(tableData, row)
	}
	table.PrintTableNoPad(tableData, true)
}
