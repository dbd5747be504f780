package cmd

import (
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/i18n"
	"github.com/arcanaland/arcanum/internal/lang"
)

// i18nCmd represents the i18n command group
var i18nCmd = &cobra.Command{
	Use:   "i18n",
	Short: "Inspect the interface strings",
}

var i18nGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a string, or a group of strings, in the selected language",
	Long: `Get looks up a dotted key such as deckPage.stats.showing. Missing strings fall
back to English, then to the key itself. Placeholders are filled from -p.

Example:
  arcanum i18n get --lang es deckPage.stats.showing -p count=3 -p total=78`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := translator()
		if err != nil {
			return err
		}
		pairs, _ := cmd.Flags().GetStringArray("param")
		params := map[string]any{}
		for _, p := range pairs {
			name, value, ok := strings.Cut(p, "=")
			if !ok {
				return fmt.Errorf("expected name=value, got %q", p)
			}
			params[name] = value
		}

		if obj := tr.Object(args[0]); len(obj) > 0 {
			return printJSON(cmd.OutOrStdout(), obj)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tr.T(args[0], params))
		return nil
	},
}

var i18nMissingCmd = &cobra.Command{
	Use:   "missing [lang]",
	Short: "List the strings a language lacks",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := lang.Supported
		if len(args) == 1 {
			l, err := lang.Parse(args[0])
			if err != nil {
				return err
			}
			codes = []lang.Code{l}
		}

		table := i18n.Default()
		out := cmd.OutOrStdout()
		for _, l := range codes {
			if l == lang.English {
				continue
			}
			missing := table.MissingKeys(l)
			if len(missing) == 0 {
				fmt.Fprintln(out, colorize.GreenString("✓ %s: all %d strings translated", l, len(table.Keys(lang.English))))
				continue
			}
			fmt.Fprintln(out, colorize.YellowString("%s: %d strings missing", l, len(missing)))
			for _, key := range missing {
				fmt.Fprintln(out, "  "+key)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(i18nCmd)
	i18nCmd.AddCommand(i18nGetCmd, i18nMissingCmd)

	i18nGetCmd.Flags().StringArrayP("param", "p", nil, "Placeholder value as name=value")
}
