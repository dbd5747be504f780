package cmd

import (
	"fmt"
	"io"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/ansi"
	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/i18n"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// tutorialCmd represents the tutorial command group
var tutorialCmd = &cobra.Command{
	Use:   "tutorial",
	Short: "Read the tarot tutorial",
}

var tutorialListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the active tutorial sections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := language()
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		views, err := a.client.Tutorials(cmd.Context(), l)
		if err != nil {
			return fmt.Errorf("error reading tutorial: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), views)
		}
		tr, err := translator()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), colorize.New(colorize.Bold).Sprint(tr.PageTitle("pageTitle.tutorial")))
		for _, v := range views {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", colorize.CyanString("%-14s", v.Key), colorize.HiWhiteString("%s", v.Title))
		}
		return nil
	},
}

var tutorialShowCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Show a tutorial section (overview, major_arcana, minor_arcana, suits)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := language()
		if err != nil {
			return err
		}
		tr, err := translator()
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.client.Tutorial(cmd.Context(), args[0], l)
		if err != nil {
			return fmt.Errorf("error reading tutorial: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), v)
		}
		printSection(cmd.OutOrStdout(), tr, v, min(terminalWidth()-2, 80))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tutorialCmd)
	tutorialCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON")
	tutorialCmd.AddCommand(tutorialListCmd, tutorialShowCmd)
}

func printSection(w io.Writer, tr i18n.Translator, v tutorial.View, width int) {
	heading := func(s string) { fmt.Fprintln(w, "\n"+colorize.CyanString("%s", s)) }
	para := func(s string) {
		for _, line := range ansi.Wrap(s, width) {
			fmt.Fprintln(w, line)
		}
	}
	list := func(items []string, fallback string) {
		if len(items) == 0 {
			fmt.Fprintln(w, colorize.HiBlackString("%s", tr.T(fallback, nil)))
			return
		}
		for _, item := range items {
			fmt.Fprintln(w, "  • "+item)
		}
	}

	fmt.Fprintln(w, colorize.HiWhiteString("%s", v.Title))
	switch c := v.Content.(type) {
	case tutorial.OverviewContent:
		para(c.Description)
		fmt.Fprintf(w, "\n%d = %d + %d\n", c.TotalCards, c.MajorArcanaCount, c.MinorArcanaCount)
	case tutorial.MajorArcanaContent:
		fmt.Fprintln(w, colorize.HiBlackString("%s", c.Subtitle))
		para(c.Description)
		heading(tr.T("tutorialComponents.sections.characteristics", nil))
		list(c.Characteristics, "tutorialComponents.fallbacks.noCharacteristics")
		heading(tr.T("tutorialComponents.sections.numbering", nil))
		para(c.Numbering)
		heading(tr.T("tutorialComponents.sections.themes", nil))
		list(c.Themes, "tutorialComponents.fallbacks.noThemes")
	case tutorial.MinorArcanaContent:
		fmt.Fprintln(w, colorize.HiBlackString("%s", c.Subtitle))
		para(c.Description)
		heading(tr.T("tutorialComponents.sections.characteristics", nil))
		list(c.Characteristics, "tutorialComponents.fallbacks.noCharacteristics")
		heading(tr.T("tutorialComponents.sections.structure", nil))
		fmt.Fprintf(w, "%d × %d\n", c.Structure.Suits, c.Structure.CardsPerSuit)
		heading(tr.T("tutorialComponents.sections.numberCards", nil))
		para(c.Structure.NumberCards)
		heading(tr.T("tutorialComponents.sections.courtCards", nil))
		para(c.Structure.CourtCards)
	case tutorial.SuitsContent:
		para(c.Description)
		for _, s := range []struct {
			suit card.Suit
			info tutorial.SuitInfo
		}{{card.Wands, c.Wands}, {card.Cups, c.Cups}, {card.Swords, c.Swords}, {card.Pentacles, c.Pentacles}} {
			if s.info.Name == "" {
				heading(ansi.SuitSymbol(s.suit) + " " + tr.T("deckPage.filters.suit."+string(s.suit), nil))
				fmt.Fprintln(w, colorize.HiBlackString("%s", tr.T("tutorialComponents.fallbacks.noSuitInfo", nil)))
				continue
			}
			heading(fmt.Sprintf("%s %s · %s", ansi.SuitSymbol(s.suit), s.info.Name, s.info.Element))
			para(s.info.Description)
			if len(s.info.Keywords) > 0 {
				fmt.Fprintln(w, colorize.HiBlackString("%s", strings.Join(s.info.Keywords, ", ")))
			}
		}
	}
}
