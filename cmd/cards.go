package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/fetch"
	"github.com/arcanaland/arcanum/internal/lang"
)

var (
	jsonOutput   bool
	legacyOutput bool
)

// cardsCmd represents the cards command group
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Query the card catalog",
	Long: `Commands for reading the card catalog in the selected language.
Missing translations fall back to English. Use --legacy for the English-only
shape served to older clients.`,
}

type (
	viewsFunc  func(ctx context.Context, c *fetch.Client, args []string, l lang.Code) ([]card.View, error)
	legacyFunc func(ctx context.Context, c *fetch.Client, args []string) ([]card.Legacy, error)
)

// one adapts a single-card read to a listing.
func one[T any](v T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	return []T{v}, nil
}

// queryCommand builds a read command. Single card reads print the card in
// full, listings print one line per card.
func queryCommand(use, short string, args cobra.PositionalArgs, single bool, views viewsFunc, legacy legacyFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := language()
			if err != nil {
				return err
			}
			tr, err := translator()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if legacyOutput {
				cards, err := legacy(ctx, a.client, args)
				if err != nil {
					return fmt.Errorf("error reading cards: %w", err)
				}
				if jsonOutput {
					if single {
						return printJSON(out, cards[0])
					}
					return printJSON(out, cards)
				}
				printLegacy(out, cards)
				return nil
			}

			cards, err := views(ctx, a.client, args, l)
			if err != nil {
				return fmt.Errorf("error reading cards: %w", err)
			}
			switch {
			case jsonOutput && single:
				return printJSON(out, cards[0])
			case jsonOutput:
				return printJSON(out, cards)
			case single:
				for _, line := range cardInfo(tr, cards[0], min(terminalWidth()-2, 80)) {
					fmt.Fprintln(out, line)
				}
			default:
				printViews(out, tr, cards)
			}
			return nil
		},
	}
}

var cardsListCmd = queryCommand("ls", "List every card", cobra.NoArgs, false,
	func(ctx context.Context, c *fetch.Client, _ []string, l lang.Code) ([]card.View, error) {
		return c.All(ctx, l)
	},
	func(ctx context.Context, c *fetch.Client, _ []string) ([]card.Legacy, error) {
		return c.AllLegacy(ctx)
	})

var cardsGetCmd = queryCommand("get [name_short]", "Show a card by its key, e.g. ar00 or wapa", cobra.ExactArgs(1), true,
	func(ctx context.Context, c *fetch.Client, args []string, l lang.Code) ([]card.View, error) {
		return one(c.ByKey(ctx, args[0], l))
	},
	func(ctx context.Context, c *fetch.Client, args []string) ([]card.Legacy, error) {
		return one(c.ByKeyLegacy(ctx, args[0]))
	})

var cardsNameCmd = queryCommand("name [display name]", "Show a card by its name in any language", cobra.MinimumNArgs(1), true,
	func(ctx context.Context, c *fetch.Client, args []string, l lang.Code) ([]card.View, error) {
		return one(c.ByDisplayName(ctx, strings.Join(args, " "), l))
	},
	func(ctx context.Context, c *fetch.Client, args []string) ([]card.Legacy, error) {
		return one(c.ByDisplayNameLegacy(ctx, strings.Join(args, " ")))
	})

var cardsSuitCmd = queryCommand("suit [suit]", "List the cards of a suit, in any language (wands, bastos, ...)", cobra.ExactArgs(1), false,
	func(ctx context.Context, c *fetch.Client, args []string, l lang.Code) ([]card.View, error) {
		return c.BySuit(ctx, args[0], l)
	},
	func(ctx context.Context, c *fetch.Client, args []string) ([]card.Legacy, error) {
		return c.BySuitLegacy(ctx, args[0])
	})

var cardsTypeCmd = queryCommand("type [major|minor]", "List the major or minor arcana", cobra.ExactArgs(1), false,
	func(ctx context.Context, c *fetch.Client, args []string, l lang.Code) ([]card.View, error) {
		return c.ByType(ctx, args[0], l)
	},
	func(ctx context.Context, c *fetch.Client, args []string) ([]card.Legacy, error) {
		return c.ByTypeLegacy(ctx, args[0])
	})

var cardsSearchCmd = queryCommand("search [query]", "Search card names in every language and keys", cobra.ArbitraryArgs, false,
	func(ctx context.Context, c *fetch.Client, args []string, l lang.Code) ([]card.View, error) {
		return c.Search(ctx, strings.Join(args, " "), l)
	},
	func(ctx context.Context, c *fetch.Client, args []string) ([]card.Legacy, error) {
		return c.SearchLegacy(ctx, strings.Join(args, " "))
	})

// cardsRandomCmd draws one card, or n distinct cards
var cardsRandomCmd = &cobra.Command{
	Use:   "random [n]",
	Short: "Draw random cards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 1 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid number of cards: %s", args[0])
			}
		}

		if n == 1 {
			return queryCommand("random", "", nil, true,
				func(ctx context.Context, c *fetch.Client, _ []string, l lang.Code) ([]card.View, error) {
					return one(c.Random(ctx, l))
				},
				func(ctx context.Context, c *fetch.Client, _ []string) ([]card.Legacy, error) {
					return one(c.RandomLegacy(ctx))
				}).RunE(cmd, nil)
		}
		return queryCommand("random", "", nil, false,
			func(ctx context.Context, c *fetch.Client, _ []string, l lang.Code) ([]card.View, error) {
				return c.RandomN(ctx, n, l)
			},
			func(ctx context.Context, c *fetch.Client, _ []string) ([]card.Legacy, error) {
				return c.RandomNLegacy(ctx, n)
			}).RunE(cmd, nil)
	},
}

// cardsStatsCmd prints how many cards each group holds
var cardsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count cards per arcana and suit",
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
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cards, err := a.client.All(cmd.Context(), l)
		if err != nil {
			return fmt.Errorf("error reading cards: %w", err)
		}
		counts := map[string]int{}
		for _, c := range cards {
			if c.Type == card.Major {
				counts["major"]++
				continue
			}
			counts[string(suitOf(c.Suit))]++
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tr.T("deckPage.stats.showing", map[string]any{"count": len(cards), "total": 78}))
		fmt.Fprintf(out, "%s %d\n", colorize.CyanString("%-16s", tr.T("deckPage.filters.arcana.majorArcana", nil)), counts["major"])
		for _, s := range card.Suits {
			fmt.Fprintf(out, "%s %d\n", colorize.CyanString("%-16s", tr.T("deckPage.filters.suit."+string(s), nil)), counts[string(s)])
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cardsCmd)
	cardsCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON")
	cardsCmd.PersistentFlags().BoolVar(&legacyOutput, "legacy", false, "Use the English-only legacy shape")

	cardsCmd.AddCommand(cardsListCmd, cardsGetCmd, cardsNameCmd, cardsRandomCmd,
		cardsSuitCmd, cardsTypeCmd, cardsSearchCmd, cardsStatsCmd)
}
