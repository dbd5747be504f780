package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file and data directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// setup already created the file when it was missing
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())

		st, err := openStore(cmd.Context())
		if err != nil {
			return fmt.Errorf("error initializing store: %v", err)
		}
		if st != nil {
			defer st.Close()
			fmt.Fprintf(out, "Store (%s) ready at: %s\n", cfg.Store.Driver, cfg.Store.DSN)
		}
		fmt.Fprintln(out, "Card images are read from:", cfg.Images.Dir)
		fmt.Fprintln(out, "\nRun 'arcanum migrate cards' and 'arcanum migrate tutorials' to seed the store.")
		return nil
	},
}

var configSetLanguageCmd = &cobra.Command{
	Use:   "set-language [en|es]",
	Short: "Set the default language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetDefaultLanguage(args[0]); err != nil {
			return fmt.Errorf("error setting default language: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default language set to: %s\n", args[0])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration, environment overrides included",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configSetLanguageCmd, configShowCmd)
}
