package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"budgetctl/pkg/api"
	"budgetctl/pkg/executors"
	"budgetctl/pkg/i18n"
	"budgetctl/pkg/importer"
	"budgetctl/pkg/models"
	"budgetctl/pkg/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Preview a YAML plan of imports (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, args[0], false)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <plan_file>",
	Short: "Import every file of a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd, args[0], true)
	},
}

func runPlan(cmd *cobra.Command, planPath string, apply bool) error {
	cfg, logger, client, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}
	// The plan may point at a different backend than the config.
	if p.Server != "" {
		client = api.New(p.Server, p.UserID, logger)
	}

	fmt.Printf("Plan preview for %s\n", planPath)
	p.Print()

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

	var stored []models.ImportTemplate
	for _, imp := range p.Imports {
		batch, err := buildPlanBatch(ctx, imp, resolver, client, &stored, logger)
		if err != nil {
			return err
		}

		fmt.Printf("\n%s:\n", imp.File)
		if err := exec.Plan(batch, accounts, categories); err != nil {
			return err
		}
		if !apply {
			continue
		}
		if _, err := exec.Apply(ctx, batch); err != nil {
			return err
		}
	}
	return nil
}

// buildPlanBatch parses one planned file and resolves it with the plan's
// mapping. Stored templates are fetched once, lazily.
func buildPlanBatch(ctx context.Context, imp plan.Import, resolver *importer.Resolver, client *api.Client, stored *[]models.ImportTemplate, logger *log.Logger) (*importer.Batch, error) {
	data, err := os.ReadFile(imp.File)
	if err != nil {
		return nil, err
	}
	doc, err := importer.ParseCSV(data, imp.File)
	if err != nil {
		return nil, err
	}

	m := importer.NewMapping()
	switch {
	case imp.Template != "":
		if *stored == nil {
			tpls, err := client.ImportTemplates(ctx)
			if err != nil {
				return nil, err
			}
			*stored = tpls
		}
		found := false
		for _, tpl := range *stored {
			if strings.EqualFold(tpl.Name, imp.Template) {
				m.FromTemplate(tpl)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("template %q not found", imp.Template)
		}
	case imp.Mapping != nil:
		m.Columns = models.RoleMapping{
			Amount:        imp.Mapping.Amount,
			Date:          imp.Mapping.Date,
			Description:   imp.Mapping.Description,
			SourceAccount: imp.Mapping.SourceAccount,
			Category:      imp.Mapping.Category,
			OperationType: imp.Mapping.OperationType,
		}
	}
	if imp.DateFormat != "" {
		m.DateFormat = imp.DateFormat
	}
	if !m.Complete() {
		return nil, fmt.Errorf("%s: amount and date columns must be mapped", imp.File)
	}

	batch := importer.NewBatch(doc, m, resolver)

	// A default account fills rows the matcher could not place.
	if imp.DefaultAccount != "" {
		id := 0
		for _, a := range resolver.Accounts {
			if strings.EqualFold(a.Name, imp.DefaultAccount) {
				id = a.ID
				break
			}
		}
		if id == 0 {
			return nil, fmt.Errorf("default account %q not found", imp.DefaultAccount)
		}
		for i, r := range batch.Rows() {
			if r.AccountID == 0 {
				if err := batch.SetAccount(i, id); err != nil {
					return nil, err
				}
			}
		}
	}

	logger.Debug("plan batch built", "file", imp.File, "rows", batch.Len())
	return batch, nil
}
