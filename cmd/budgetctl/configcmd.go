package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetctl/pkg/appstate"
	"budgetctl/pkg/i18n"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted preferences",
	RunE: func(_ *cobra.Command, _ []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}
		fmt.Printf("theme: %s\nlanguage: %s\n", st.Theme, st.Language)
		return nil
	},
}

var configThemeCmd = &cobra.Command{
	Use:   "theme <light|dark|system>",
	Short: "Set the UI theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		switch args[0] {
		case "light", "dark", "system":
		default:
			return fmt.Errorf("unsupported theme %q", args[0])
		}
		st, err := loadState()
		if err != nil {
			return err
		}
		st.Theme = args[0]
		return st.Save()
	},
}

var configLanguageCmd = &cobra.Command{
	Use:   "language <en|pl>",
	Short: "Set the UI language",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		lang := i18n.Lang(args[0])
		if !i18n.Valid(lang) {
			return fmt.Errorf("unsupported language %q", args[0])
		}
		st, err := loadState()
		if err != nil {
			return err
		}
		st.Language = lang
		return st.Save()
	},
}

func loadState() (*appstate.State, error) {
	path, err := appstate.Path()
	if err != nil {
		return nil, err
	}
	return appstate.Load(path)
}

func init() {
	configCmd.AddCommand(configThemeCmd, configLanguageCmd)
}
