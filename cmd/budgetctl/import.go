package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"budgetctl/pkg/executors"
	"budgetctl/pkg/i18n"
	"budgetctl/pkg/importer"
	"budgetctl/pkg/models"
)

// templateSource is the slice of the backend client the mapping flags
// need.
type templateSource interface {
	ImportTemplates(ctx context.Context) ([]models.ImportTemplate, error)
}

var importCmd = &cobra.Command{
	Use:   "import [flags] <file.csv>",
	Short: "Import operations from a bank CSV export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, client, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		exec := executors.New(logger, cfg, client)
		accounts, categories, err := exec.Refs(ctx)
		if err != nil {
			return err
		}

		resolver := &importer.Resolver{
			Accounts:   accounts,
			Categories: categories,
			Lang:       i18n.Lang(cfg.Language),
		}
		session := importer.NewSession(resolver, logger)
		if err := session.Upload(data, args[0]); err != nil {
			return err
		}

		if err := applyMappingFlags(ctx, cmd, session, client); err != nil {
			return err
		}
		if err := session.ConfirmMapping(); err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save-template"); save {
			name, _ := cmd.Flags().GetString("template-name")
			if name == "" {
				return fmt.Errorf("--save-template requires --template-name")
			}
			// A failed template save never blocks the import itself.
			if _, err := client.SaveImportTemplate(ctx, session.Mapping().Template(name)); err != nil {
				logger.Warn("saving template failed", "name", name, "error", err)
			} else {
				logger.Info("template saved", "name", name)
			}
		}

		if err := applyEditFlags(cmd, session.Batch()); err != nil {
			return err
		}

		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			pp.Println(session.Batch().Rows())
		}

		if err := exec.Plan(session.Batch(), accounts, categories); err != nil {
			return err
		}

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			return nil
		}

		out, err := session.Import(ctx, client)
		if err != nil {
			return err
		}
		logger.Info("import done", "submitted", out.Submitted, "failed", out.Failed)
		return nil
	},
}

// applyMappingFlags fills the session mapping from a stored template, the
// column flags, or both (flags win over the template).
func applyMappingFlags(ctx context.Context, cmd *cobra.Command, session *importer.Session, tpls templateSource) error {
	m := session.Mapping()

	if name, _ := cmd.Flags().GetString("template"); name != "" {
		stored, err := tpls.ImportTemplates(ctx)
		if err != nil {
			return err
		}
		found := false
		for _, tpl := range stored {
			if strings.EqualFold(tpl.Name, name) {
				m.FromTemplate(tpl)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("template %q not found", name)
		}
	}

	roleFlags := map[importer.Role]string{
		importer.RoleAmount:        "amount-col",
		importer.RoleDate:          "date-col",
		importer.RoleDescription:   "description-col",
		importer.RoleSourceAccount: "account-col",
		importer.RoleCategory:      "category-col",
		importer.RoleOperationType: "type-col",
	}
	for role, flag := range roleFlags {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		idx, _ := cmd.Flags().GetInt(flag)
		if err := m.Assign(role, idx); err != nil {
			return err
		}
	}

	if format, _ := cmd.Flags().GetString("date-format"); format != "" {
		m.DateFormat = format
	}
	return nil
}

// applyEditFlags applies --delete-row and --edit fixes to the previewed
// batch. Edits use row=field=value with 1-based row numbers.
func applyEditFlags(cmd *cobra.Command, b *importer.Batch) error {
	deletes, _ := cmd.Flags().GetIntSlice("delete-row")
	// Delete from the end so earlier indices stay valid.
	sort.Ints(deletes)
	for i := len(deletes) - 1; i >= 0; i-- {
		if err := b.Delete(deletes[i] - 1); err != nil {
			return err
		}
	}

	edits, _ := cmd.Flags().GetStringArray("edit")
	for _, edit := range edits {
		if err := applyEdit(b, edit); err != nil {
			return fmt.Errorf("bad edit %q: %w", edit, err)
		}
	}
	return nil
}

func applyEdit(b *importer.Batch, spec string) error {
	parts := strings.SplitN(spec, "=", 3)
	if len(parts) != 3 {
		return fmt.Errorf("expected row=field=value")
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("bad row number: %w", err)
	}
	i := row - 1
	value := parts[2]

	switch importer.Field(parts[1]) {
	case importer.FieldAmount:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		return b.SetAmount(i, v)
	case importer.FieldDate:
		return b.SetDate(i, value)
	case importer.FieldDescription:
		return b.SetDescription(i, value)
	case importer.FieldType:
		return b.SetType(i, value)
	case importer.FieldAccount:
		id, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		return b.SetAccount(i, id)
	case importer.FieldCategory:
		id, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		return b.SetCategory(i, id)
	}
	return fmt.Errorf("unknown field %q", parts[1])
}

func init() {
	importCmd.Flags().String("template", "", "Stored column mapping to use")
	importCmd.Flags().Int("amount-col", importer.Unmapped, "Column index of the amount")
	importCmd.Flags().Int("date-col", importer.Unmapped, "Column index of the date")
	importCmd.Flags().Int("description-col", importer.Unmapped, "Column index of the description")
	importCmd.Flags().Int("account-col", importer.Unmapped, "Column index of the source account")
	importCmd.Flags().Int("category-col", importer.Unmapped, "Column index of the category")
	importCmd.Flags().Int("type-col", importer.Unmapped, "Column index of the operation type")
	importCmd.Flags().String("date-format", "", "Date format token (e.g. DD/MM/YYYY)")
	importCmd.Flags().StringArray("edit", nil, "Fix a cell before import, row=field=value (repeatable)")
	importCmd.Flags().IntSlice("delete-row", nil, "Drop a 1-based row before import (repeatable)")
	importCmd.Flags().Bool("dry-run", false, "Preview only, do not create operations")
	importCmd.Flags().Bool("dump", false, "Dump the resolved batch for debugging")
	importCmd.Flags().Bool("save-template", false, "Save the final mapping as a template")
	importCmd.Flags().String("template-name", "", "Name for --save-template")
}
