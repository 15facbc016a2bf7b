package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"budgetctl/pkg/api"
	"budgetctl/pkg/importer"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage stored column mappings",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		templates, err := client.ImportTemplates(cmd.Context())
		if err != nil {
			return err
		}
		for _, tpl := range templates {
			m := tpl.TemplateData.ColumnMapping
			fmt.Printf("%4d  %-25s amount=%d date=%d format=%s\n",
				tpl.ID, tpl.Name, m.Amount, m.Date, tpl.TemplateData.DateFormat)
		}
		return nil
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored template",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteByID(func(c *api.Client) deleteFunc { return c.DeleteImportTemplate }),
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one template's full mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad id: %w", err)
		}
		templates, err := client.ImportTemplates(cmd.Context())
		if err != nil {
			return err
		}
		for _, tpl := range templates {
			if tpl.ID != id {
				continue
			}
			m := tpl.TemplateData.ColumnMapping
			fmt.Printf("name: %s\n", tpl.Name)
			fmt.Printf("amount: %d\ndate: %d\ndescription: %d\n", m.Amount, m.Date, m.Description)
			fmt.Printf("source_account: %d\ncategory: %d\noperation_type: %d\n", m.SourceAccount, m.Category, m.OperationType)
			fmt.Printf("date_format: %s\n", tpl.TemplateData.DateFormat)
			return nil
		}
		return fmt.Errorf("template %d not found", id)
	},
}

var templatesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Store a column mapping under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}

		m := importer.NewMapping()
		roleFlags := map[importer.Role]string{
			importer.RoleAmount:        "amount-col",
			importer.RoleDate:          "date-col",
			importer.RoleDescription:   "description-col",
			importer.RoleSourceAccount: "account-col",
			importer.RoleCategory:      "category-col",
			importer.RoleOperationType: "type-col",
		}
		for role, flag := range roleFlags {
			idx, _ := cmd.Flags().GetInt(flag)
			if err := m.Assign(role, idx); err != nil {
				return err
			}
		}
		if format, _ := cmd.Flags().GetString("date-format"); format != "" {
			m.DateFormat = format
		}
		if !m.Complete() {
			return fmt.Errorf("amount and date columns must be mapped")
		}

		created, err := client.SaveImportTemplate(cmd.Context(), m.Template(args[0]))
		if err != nil {
			return err
		}
		logger.Info("template saved", "id", created.ID, "name", created.Name)
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesSaveCmd, templatesDeleteCmd)

	templatesSaveCmd.Flags().Int("amount-col", importer.Unmapped, "Column index of the amount")
	templatesSaveCmd.Flags().Int("date-col", importer.Unmapped, "Column index of the date")
	templatesSaveCmd.Flags().Int("description-col", importer.Unmapped, "Column index of the description")
	templatesSaveCmd.Flags().Int("account-col", importer.Unmapped, "Column index of the source account")
	templatesSaveCmd.Flags().Int("category-col", importer.Unmapped, "Column index of the category")
	templatesSaveCmd.Flags().Int("type-col", importer.Unmapped, "Column index of the operation type")
	templatesSaveCmd.Flags().String("date-format", "", "Date format token")
}
