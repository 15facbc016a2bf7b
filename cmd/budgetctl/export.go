package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"budgetctl/pkg/api"
	"budgetctl/pkg/csvout"
	"budgetctl/pkg/models"
)

// exportRow adapts a backend operation to the CSV record shape, with
// entity names looked up from the reference lists.
type exportRow struct {
	op         models.Operation
	accounts   map[int]string
	categories map[int]string
}

func (r exportRow) Date() string        { return r.op.OperationDate }
func (r exportRow) Description() string { return r.op.Description }
func (r exportRow) Amount() float64     { return r.op.Amount }
func (r exportRow) Type() string        { return r.op.OperationType }
func (r exportRow) Account() string     { return r.accounts[r.op.AssetID] }
func (r exportRow) Category() string    { return r.categories[r.op.CategoryID] }

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a month's operations as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		filter := api.OperationFilter{}
		filter.Year, _ = cmd.Flags().GetInt("year")
		filter.Month, _ = cmd.Flags().GetInt("month")

		ops, err := client.Operations(ctx, filter)
		if err != nil {
			return err
		}
		accounts, err := client.Accounts(ctx)
		if err != nil {
			return err
		}
		categories, err := client.Categories(ctx)
		if err != nil {
			return err
		}

		accountNames := make(map[int]string, len(accounts))
		for _, a := range accounts {
			accountNames[a.ID] = a.Name
		}
		categoryNames := make(map[int]string, len(categories))
		for _, c := range categories {
			categoryNames[c.ID] = c.Name
		}

		rows := make([]exportRow, len(ops))
		for i, op := range ops {
			rows[i] = exportRow{op: op, accounts: accountNames, categories: categoryNames}
		}

		minAmount, _ := cmd.Flags().GetFloat64("min")
		var filterFn csvout.FilterFunc[exportRow]
		if minAmount != 0 {
			filterFn = func(r exportRow) bool { return r.Amount() >= minAmount }
		}

		data := csvout.Create(rows, filterFn)
		if out, _ := cmd.Flags().GetString("output"); out != "" {
			return os.WriteFile(out, data, 0o644)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().Int("year", 0, "Filter by year")
	exportCmd.Flags().Int("month", 0, "Filter by month")
	exportCmd.Flags().Float64("min", 0, "Only rows with amount at or above this")
	exportCmd.Flags().String("output", "", "Write to file instead of stdout")
}
