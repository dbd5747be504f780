package cmd

import (
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/admin"
	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
)

// adminCmd represents the admin command group
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Edit card text",
	Long: `Commands for editing card text in one language at a time.
Edits to one card are sent to the store in a single update. There is no
conflict detection: the last save wins.`,
}

var adminListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cards with the fields missing a translation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := language()
		if err != nil {
			return err
		}
		tr, err := translator()
		if err != nil {
			return err
		}
		typeFlag, _ := cmd.Flags().GetString("type")
		search, _ := cmd.Flags().GetString("search")
		missingOnly, _ := cmd.Flags().GetBool("missing")

		filter := admin.Filter{Search: search}
		if typeFlag != "" {
			if filter.Type, err = card.ParseArcana(typeFlag); err != nil {
				return err
			}
		}

		a, err := openStoreApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		s := admin.NewSession(a.client, logger)
		if err := s.Load(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", tr.T("adminPage.error.loadFailed", nil), err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, colorize.New(colorize.Bold).Sprint(tr.PageTitle("pageTitle.admin")))
		shown := 0
		for _, row := range s.Rows(filter) {
			var missing []string
			for _, f := range card.Fields {
				if s.Missing(row.Card.NameShort, f, l) {
					missing = append(missing, string(f))
				}
			}
			if missingOnly && len(missing) == 0 {
				continue
			}
			shown++
			fmt.Fprintln(out, adminLine(row, missing, l))
		}
		if shown == 0 {
			fmt.Fprintln(out, tr.T("adminPage.emptyState.message", nil))
			return nil
		}
		stats := s.Stats(filter)
		fmt.Fprintln(out, colorize.HiBlackString("%s", tr.T("deckPage.stats.showing", map[string]any{"count": shown, "total": stats.Total})))
		return nil
	},
}

// adminLine shows a row's name in l, bracketed English when untranslated,
// followed by the fields still missing l.
func adminLine(row admin.Row, missing []string, l lang.Code) string {
	line := colorize.CyanString("%-5s", row.Card.NameShort) + " " +
		colorize.HiWhiteString("%-24s", lang.Display(row.Card.Text(card.FieldName), l))
	if len(missing) > 0 {
		line += " " + colorize.YellowString("[%s: %s]", l, strings.Join(missing, ", "))
	}
	return line
}

var adminSetCmd = &cobra.Command{
	Use:   "set [name_short] [field=value]...",
	Short: "Set card fields in the selected language",
	Long: `Set writes one or more fields of a card in the language given by --lang.
Other languages of the same fields are kept.

Fields: name, value, suit, meaning_up, meaning_rev, description.

Examples:
  arcanum admin set --lang es ar01 meaning_up="Habilidad, diplomacia"
  arcanum admin set --lang es wa02 name="Dos de Bastos" value=dos`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := language()
		if err != nil {
			return err
		}
		tr, err := translator()
		if err != nil {
			return err
		}

		key := args[0]
		type assignment struct {
			field card.Field
			value string
		}
		var assignments []assignment
		for _, arg := range args[1:] {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("expected field=value, got %q", arg)
			}
			f, err := card.ParseField(name)
			if err != nil {
				return err
			}
			assignments = append(assignments, assignment{f, value})
		}

		ctx := cmd.Context()
		a, err := openStoreApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		s := admin.NewSession(a.client, logger)
		if err := s.Load(ctx); err != nil {
			return fmt.Errorf("%s: %w", tr.T("adminPage.error.loadFailed", nil), err)
		}
		for _, as := range assignments {
			if err := s.BeginEdit(key, as.field); err != nil {
				return err
			}
			if err := s.CommitEdit(l, as.value); err != nil {
				s.CancelEdit()
				return err
			}
		}

		if err := s.SaveRow(ctx, key); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), colorize.RedString("%s", tr.T("adminPage.error.saveFailed", map[string]any{"card": key})))
			return err
		}

		row, err := s.Row(key)
		if err != nil {
			return err
		}
		for _, as := range assignments {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s.%s = %s\n", colorize.GreenString("✓"), key, as.field,
				lang.Resolve(row.Card.Text(as.field), l))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminListCmd, adminSetCmd)

	adminListCmd.Flags().String("type", "", "Only major or minor arcana")
	adminListCmd.Flags().String("search", "", "Only cards whose name or key contains this text")
	adminListCmd.Flags().Bool("missing", false, "Only cards with fields missing in the selected language")
}
