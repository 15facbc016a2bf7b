package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"budgetctl/pkg/api"
	"budgetctl/pkg/models"
)

// addEntityCommands registers the thin CRUD wrappers over the backend's
// reference entities.
func addEntityCommands(root *cobra.Command) {
	root.AddCommand(accountsCmd)
	root.AddCommand(categoriesCmd)
	root.AddCommand(assetsCmd)
	root.AddCommand(goalsCmd)
	root.AddCommand(recurringCmd)
	root.AddCommand(hashtagsCmd)
	root.AddCommand(operationsCmd)
	root.AddCommand(budgetCmd)
	root.AddCommand(transferCmd)
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List money accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		accounts, err := client.Accounts(cmd.Context())
		if err != nil {
			return err
		}
		for _, a := range accounts {
			fmt.Printf("%4d  %-30s %10.2f %s\n", a.ID, a.Name, a.Balance, a.Currency)
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		categories, err := client.Categories(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range categories {
			indent := ""
			if c.ParentID != 0 {
				indent = "  "
			}
			fmt.Printf("%4d  %s%s (%s)\n", c.ID, indent, c.Name, c.Type)
		}
		return nil
	},
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage assets",
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		assets, err := client.Assets(cmd.Context())
		if err != nil {
			return err
		}
		for _, a := range assets {
			fmt.Printf("%4d  %-30s %-12s %12.2f\n", a.ID, a.Name, a.Type, a.Balance)
		}
		return nil
	},
}

var assetsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		assetType, _ := cmd.Flags().GetString("type")
		balance, _ := cmd.Flags().GetFloat64("balance")
		currency, _ := cmd.Flags().GetString("currency")

		a := models.Asset{
			Name:     args[0],
			Type:     models.AssetType(assetType),
			Balance:  balance,
			Currency: currency,
		}
		if err := a.Validate(); err != nil {
			return err
		}
		created, err := client.CreateAsset(cmd.Context(), a)
		if err != nil {
			return err
		}
		logger.Info("asset created", "id", created.ID, "name", created.Name)
		return nil
	},
}

var assetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteByID(func(c *api.Client) deleteFunc { return c.DeleteAsset }),
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage savings goals",
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		goals, err := client.Goals(cmd.Context())
		if err != nil {
			return err
		}
		for _, g := range goals {
			fmt.Printf("%4d  %-30s %10.2f / %10.2f  %3.0f%%\n",
				g.ID, g.Name, g.Current, g.Target, g.Progress()*100)
		}
		return nil
	},
}

var goalsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		target, _ := cmd.Flags().GetFloat64("target")
		deadline, _ := cmd.Flags().GetString("deadline")

		g := models.Goal{Name: args[0], Target: target, Deadline: deadline}
		if err := g.Validate(); err != nil {
			return err
		}
		created, err := client.CreateGoal(cmd.Context(), g)
		if err != nil {
			return err
		}
		logger.Info("goal created", "id", created.ID, "name", created.Name)
		return nil
	},
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteByID(func(c *api.Client) deleteFunc { return c.DeleteGoal }),
}

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring operations",
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring operations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		recs, err := client.RecurringOperations(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Printf("%4d  %-30s %10.2f  every %-7s next %s\n",
				r.ID, r.Template.Description, r.Template.Amount, r.Interval, r.NextDate)
		}
		return nil
	},
}

var recurringCreateCmd = &cobra.Command{
	Use:   "create <description>",
	Short: "Create a recurring operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		r := models.RecurringOperation{Template: models.Operation{Description: args[0]}}
		r.Template.AssetID, _ = cmd.Flags().GetInt("asset")
		r.Template.Amount, _ = cmd.Flags().GetFloat64("amount")
		r.Template.CategoryID, _ = cmd.Flags().GetInt("category")
		r.Template.OperationType, _ = cmd.Flags().GetString("type")
		r.Template.OperationDate, _ = cmd.Flags().GetString("start")
		r.Interval, _ = cmd.Flags().GetString("interval")
		r.NextDate = r.Template.OperationDate
		if err := r.Validate(); err != nil {
			return err
		}
		created, err := client.CreateRecurringOperation(cmd.Context(), r)
		if err != nil {
			return err
		}
		logger.Info("recurring operation created", "id", created.ID, "interval", created.Interval)
		return nil
	},
}

var recurringDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recurring operation",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteByID(func(c *api.Client) deleteFunc { return c.DeleteRecurringOperation }),
}

var hashtagsCmd = &cobra.Command{
	Use:   "hashtags",
	Short: "Manage hashtags",
}

var hashtagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hashtags",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		tags, err := client.Hashtags(cmd.Context())
		if err != nil {
			return err
		}
		for _, h := range tags {
			fmt.Printf("%4d  #%s\n", h.ID, h.Name)
		}
		return nil
	},
}

var hashtagsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a hashtag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		created, err := client.CreateHashtag(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logger.Info("hashtag created", "id", created.ID, "name", created.Name)
		return nil
	},
}

var hashtagsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a hashtag",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteByID(func(c *api.Client) deleteFunc { return c.DeleteHashtag }),
}

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "Manage operations",
}

var operationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List operations for a month",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		filter := api.OperationFilter{}
		filter.Year, _ = cmd.Flags().GetInt("year")
		filter.Month, _ = cmd.Flags().GetInt("month")
		filter.AssetID, _ = cmd.Flags().GetInt("asset")

		ops, err := client.Operations(cmd.Context(), filter)
		if err != nil {
			return err
		}
		for _, op := range ops {
			fmt.Printf("%4d  %s %-35s %10.2f %s\n",
				op.ID, op.OperationDate, op.Description, op.Amount, op.OperationType)
		}
		return nil
	},
}

var operationsCreateCmd = &cobra.Command{
	Use:   "create <description>",
	Short: "Create a single operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		op := models.Operation{Description: args[0]}
		op.AssetID, _ = cmd.Flags().GetInt("asset")
		op.Amount, _ = cmd.Flags().GetFloat64("amount")
		op.CategoryID, _ = cmd.Flags().GetInt("category")
		op.OperationType, _ = cmd.Flags().GetString("type")
		op.OperationDate, _ = cmd.Flags().GetString("date")
		if err := op.Validate(); err != nil {
			return err
		}
		created, err := client.CreateOperation(cmd.Context(), op)
		if err != nil {
			return err
		}
		logger.Info("operation created", "id", created.ID, "amount", created.Amount)
		return nil
	},
}

var operationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an operation",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteByID(func(c *api.Client) deleteFunc { return c.DeleteOperation }),
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Monthly budget plans",
}

var budgetShowCmd = &cobra.Command{
	Use:   "show <year> <month>",
	Short: "Show the monthly budget plan",
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
		for _, e := range p.Entries {
			fmt.Printf("category %4d  planned %10.2f\n", e.CategoryID, e.Planned)
		}
		return nil
	},
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <year> <month>",
	Short: "Replace the monthly budget plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
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

		entries, _ := cmd.Flags().GetStringArray("entry")
		p := models.BudgetPlan{Year: year, Month: month}
		for _, entry := range entries {
			var categoryID int
			var planned float64
			if _, err := fmt.Sscanf(entry, "%d=%f", &categoryID, &planned); err != nil {
				return fmt.Errorf("bad entry %q, expected category=amount: %w", entry, err)
			}
			p.Entries = append(p.Entries, models.BudgetEntry{CategoryID: categoryID, Planned: planned})
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := client.SaveBudgetPlan(cmd.Context(), p); err != nil {
			return err
		}
		logger.Info("budget saved", "year", year, "month", month, "entries", len(p.Entries))
		return nil
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move value between two assets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		t := models.Transfer{}
		t.FromAssetID, _ = cmd.Flags().GetInt("from")
		t.ToAssetID, _ = cmd.Flags().GetInt("to")
		t.Amount, _ = cmd.Flags().GetFloat64("amount")
		t.Date, _ = cmd.Flags().GetString("date")
		t.Description, _ = cmd.Flags().GetString("description")
		if err := t.Validate(); err != nil {
			return err
		}
		if err := client.CreateTransfer(cmd.Context(), t); err != nil {
			return err
		}
		logger.Info("transfer created", "from", t.FromAssetID, "to", t.ToAssetID, "amount", t.Amount)
		return nil
	},
}

type deleteFunc func(ctx context.Context, id int) error

// deleteByID builds the shared RunE for id-keyed delete subcommands.
func deleteByID(pick func(*api.Client) deleteFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad id: %w", err)
		}
		if err := pick(client)(cmd.Context(), id); err != nil {
			return err
		}
		logger.Info("deleted", "id", id)
		return nil
	}
}

func init() {
	assetsCmd.AddCommand(assetsListCmd, assetsCreateCmd, assetsDeleteCmd)
	goalsCmd.AddCommand(goalsListCmd, goalsCreateCmd, goalsDeleteCmd)
	recurringCmd.AddCommand(recurringListCmd, recurringCreateCmd, recurringDeleteCmd)
	hashtagsCmd.AddCommand(hashtagsListCmd, hashtagsCreateCmd, hashtagsDeleteCmd)

	assetsCreateCmd.Flags().String("type", "liquid", "Asset type")
	assetsCreateCmd.Flags().Float64("balance", 0, "Opening balance")
	assetsCreateCmd.Flags().String("currency", "", "Currency code")

	recurringCreateCmd.Flags().Int("asset", 0, "Asset id the operation posts against")
	recurringCreateCmd.Flags().Float64("amount", 0, "Amount (positive)")
	recurringCreateCmd.Flags().Int("category", 0, "Category id")
	recurringCreateCmd.Flags().String("type", "expense", "income or expense")
	recurringCreateCmd.Flags().String("start", "", "First occurrence (YYYY-MM-DD)")
	recurringCreateCmd.Flags().String("interval", "monthly", "daily, weekly, monthly or yearly")

	goalsCreateCmd.Flags().Float64("target", 0, "Target amount")
	goalsCreateCmd.Flags().String("deadline", "", "Deadline (YYYY-MM-DD)")

	operationsCmd.AddCommand(operationsListCmd, operationsCreateCmd, operationsDeleteCmd)
	budgetCmd.AddCommand(budgetShowCmd, budgetSetCmd)
	budgetSetCmd.Flags().StringArray("entry", nil, "Planned amount, category=amount (repeatable)")

	operationsListCmd.Flags().Int("year", 0, "Filter by year")
	operationsListCmd.Flags().Int("month", 0, "Filter by month")
	operationsListCmd.Flags().Int("asset", 0, "Filter by asset id")

	operationsCreateCmd.Flags().Int("asset", 0, "Asset id the operation posts against")
	operationsCreateCmd.Flags().Float64("amount", 0, "Amount (positive)")
	operationsCreateCmd.Flags().Int("category", 0, "Category id")
	operationsCreateCmd.Flags().String("type", "expense", "income or expense")
	operationsCreateCmd.Flags().String("date", "", "Date (YYYY-MM-DD)")

	transferCmd.Flags().Int("from", 0, "Source asset id")
	transferCmd.Flags().Int("to", 0, "Destination asset id")
	transferCmd.Flags().Float64("amount", 0, "Amount to move")
	transferCmd.Flags().String("date", "", "Date (YYYY-MM-DD)")
	transferCmd.Flags().String("description", "", "Optional description")
}
