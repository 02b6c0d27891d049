package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/compare"
	"github.com/cpqscope/cli/pkg/salesforce"
	"github.com/cpqscope/cli/pkg/table"
	"github.com/cpqscope/cli/pkg/util"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Scan object pairs for twin fields whose types have drifted",
	Long: `Compare describes each Left:Right object pair and matches fields that
share an API name on both sides. Twins whose setup-style types disagree are
reported as drift. A pair that fails to describe is skipped with a warning
and the scan continues.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringArray("pair", nil, "Object pair to scan as Left:Right (repeatable)")
	_ = compareCmd.MarkFlagRequired("pair")
	compareCmd.Flags().String("csv", "", "Write the full report to a CSV file")
	compareCmd.Flags().Bool("all", false, "Show matching twins too, not only drift")
	compareCmd.Flags().StringP("output", "o", "", "Output format: json")
}

func runCompare(cmd *cobra.Command, args []string) error {
	rawPairs, _ := cmd.Flags().GetStringArray("pair")
	csvPath, _ := cmd.Flags().GetString("csv")
	showAll, _ := cmd.Flags().GetBool("all")
	output, _ := cmd.Flags().GetString("output")

	pairs := make([]compare.Pair, 0, len(rawPairs))
	for _, raw := range rawPairs {
		pair, err := compare.ParsePair(raw)
		if err != nil {
			return err
		}
		pairs = append(pairs, pair)
	}

	client, cleanup, err := mustGetClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := compare.Scan(cmd.Context(), client, pairs)
	if err != nil {
		return err
	}

	for _, skip := range result.Skipped {
		pterm.Warning.Printf("Skipped %s: %s\n", skip.Pair, skip.Reason)
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", csvPath, err)
		}
		defer f.Close()
		if err := compare.WriteCSV(f, result.Reports); err != nil {
			return fmt.Errorf("write %s: %w", csvPath, err)
		}
		pterm.Success.Printf("Report written to %s\n", csvPath)
	}

	if output == "json" {
		return util.PrintPrettyJSON(result)
	}

	for _, report := range result.Reports {
		twins := report.Twins
		if !showAll {
			twins = report.Drift()
		}
		pterm.Printf("\n%s: %d twin(s), %d drifted\n", report.Pair, len(report.Twins), len(report.Drift()))
		if len(twins) == 0 {
			continue
		}
		tableData := pterm.TableData{{"Field", "Left Type", "Right Type", "Status"}}
		for _, twin := range twins {
			status := "match"
			if !twin.Match {
				status = pterm.Red("drift")
			}
			tableData = append(tableData, []string{
				twin.Name,
				salesforce.FormatFieldType(twin.Left),
				salesforce.FormatFieldType(twin.Right),
				status,
			})
		}
		table.PrintTableNoPad(tableData, true)
	}
	return nil
}
