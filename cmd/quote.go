package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cpqscope/cli/pkg/quote"
	"github.com/cpqscope/cli/pkg/table"
	"github.com/cpqscope/cli/pkg/util"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Work with CPQ quotes",
}

var quoteSimulateCmd = &cobra.Command{
	Use:   "simulate <quote-id>",
	Short: "Recompute quote line totals locally",
	Long: `Simulate fetches a quote's lines and recomputes each net total as
quantity * list price * (1 - discount/100), for checking against what the
org's price rules actually stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuoteSimulate,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.AddCommand(quoteSimulateCmd)
	quoteSimulateCmd.Flags().StringP("output", "o", "", "Output format: json")
}

func runQuoteSimulate(cmd *cobra.Command, args []string) error {
	client, cleanup, err := mustGetClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	output, _ := cmd.Flags().GetString("output")

	sim, err := quote.Simulate(cmd.Context(), client, args[0])
	if err != nil {
		return err
	}

	if output == "json" {
		return util.PrintPrettyJSON(sim)
	}
	if len(sim.Lines) == 0 {
		pterm.Info.Printf("Quote %s has no lines\n", sim.QuoteID)
		return nil
	}

	tableData := pterm.TableData{{"Line", "Product", "Qty", "List Price", "Discount %", "Net Total"}}
	for _, line := range sim.Lines {
		tableData = append(tableData, []string{
			line.ID,
			util.OrDash(line.Product),
			fmt.Sprintf("%g", line.Quantity),
			fmt.Sprintf("%.2f", line.ListPrice),
			fmt.Sprintf("%g", line.Discount),
			fmt.Sprintf("%.2f", line.NetTotal),
		})
	}
	table.PrintTableNoPad(tableData, true)
	pterm.Printf("\nQuote net total: %.2f\n", sim.NetTotal)
	return nil
}
