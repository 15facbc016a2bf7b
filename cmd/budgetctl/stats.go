package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"budgetctl/pkg/api"
	"budgetctl/pkg/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summaries over stored operations",
}

var statsMonthCmd = &cobra.Command{
	Use:   "month <year> <month>",
	Short: "Income, expenses and top categories for a month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}

		ops, err := client.Operations(cmd.Context(), api.OperationFilter{Year: year, Month: month})
		if err != nil {
			return err
		}
		categories, err := client.Categories(cmd.Context())
		if err != nil {
			return err
		}

		s := stats.Summarize(ops)
		fmt.Printf("%d-%02d  income %.2f  expenses %.2f  net %+.2f\n", year, month, s.Income, s.Expenses, s.Net)
		for _, ct := range stats.TopCategories(s, categories, 10) {
			fmt.Printf("  %-30s %10.2f\n", ct.Name, ct.Total)
		}
		return nil
	},
}

var statsNetworthCmd = &cobra.Command{
	Use:   "networth",
	Short: "Total value across assets, liabilities negative",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		assets, err := client.Assets(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("net worth: %.2f\n", stats.NetWorth(assets))
		return nil
	},
}

var statsBudgetCmd = &cobra.Command{
	Use:   "budget <year> <month>",
	Short: "Plan vs actual per category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}

		p, err := client.BudgetPlan(cmd.Context(), year, month)
		if err != nil {
			return err
		}
		ops, err := client.Operations(cmd.Context(), api.OperationFilter{Year: year, Month: month})
		if err != nil {
			return err
		}

		s := stats.Summarize(ops)
		for _, line := range stats.BudgetUsage(p, s) {
			marker := " "
			if line.Overspent() {
				marker = "!"
			}
			fmt.Printf("%s category %4d  planned %10.2f  spent %10.2f\n",
				marker, line.CategoryID, line.Planned, line.Spent)
		}
		return nil
	},
}

func init() {
	statsCmd.AddCommand(statsMonthCmd, statsNetworthCmd, statsBudgetCmd)
}
