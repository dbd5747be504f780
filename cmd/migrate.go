package cmd

import (
	"errors"
	"fmt"
	"sort"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/catalog"
	"github.com/arcanaland/arcanum/internal/config"
	"github.com/arcanaland/arcanum/internal/deck"
	"github.com/arcanaland/arcanum/internal/seed"
)

// migrateCmd represents the migrate command group
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Seed the store",
	Long:  `Commands for loading cards, tutorial sections and deck translations into the store.`,
}

var migrateCardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Replace the cards with the ones served by the tarot API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiURL, _ := cmd.Flags().GetString("api")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		ctx := cmd.Context()

		fetched, err := seed.NewClient(apiURL, logger).FetchCards(ctx)
		if err != nil {
			return err
		}
		cards, err := seed.TransformAll(fetched)
		if err != nil {
			return fmt.Errorf("error transforming cards: %v", err)
		}
		stats, err := seed.Validate(cards)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Fetched %d cards: %d major, %d minor\n", stats.Total, stats.Major, stats.Minor)
		for _, s := range card.Suits {
			fmt.Fprintf(out, "  %-10s %d\n", s, stats.BySuit[s])
		}
		if dryRun {
			return nil
		}

		a, err := openStoreApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.ReplaceCards(ctx, cards); err != nil {
			return fmt.Errorf("error storing cards: %v", err)
		}
		if err := a.client.InvalidateCards(ctx); err != nil {
			logger.Warn("card cache invalidation failed", "error", err)
		}
		fmt.Fprintln(out, colorize.GreenString("✓ Stored %d cards", len(cards)))
		return nil
	},
}

var migrateTutorialsCmd = &cobra.Command{
	Use:   "tutorials",
	Short: "Replace the tutorial sections with the bundled ones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, err := seed.Tutorials()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		a, err := openStoreApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.ReplaceSections(ctx, sections); err != nil {
			return fmt.Errorf("error storing tutorials: %v", err)
		}
		if err := a.client.InvalidateTutorials(ctx); err != nil {
			logger.Warn("tutorial cache invalidation failed", "error", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), colorize.GreenString("✓ Stored %d tutorial sections", len(sections)))
		return nil
	},
}

var migrateNamesCmd = &cobra.Command{
	Use:   "names [deck]",
	Short: "Merge card names and alt text from a deck's names/<lang>.toml",
	Long: `Names reads the names file of a deck in the selected language and merges the
names into the card name field and the alt text into the description field.
The deck is looked up in the deck library, then as a path.

Examples:
  arcanum migrate names --lang es rider-waite-smith
  arcanum migrate names --lang es ./decks/marseille`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := language()
		if err != nil {
			return err
		}
		deckPath, err := config.GetDeckPath(cfg.DeckLibrary, args[0])
		if err != nil {
			return err
		}
		names, err := deck.LoadNames(deckPath, l)
		if err != nil {
			return err
		}
		patches := names.Patches(l)

		ctx := cmd.Context()
		a, err := openStoreApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		keys := make([]string, 0, len(patches))
		for k := range patches {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		updated, skipped := 0, 0
		for _, k := range keys {
			if _, err := a.client.Update(ctx, k, patches[k]); err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					skipped++
					continue
				}
				return fmt.Errorf("error updating %s: %w", k, err)
			}
			updated++
		}
		fmt.Fprintln(cmd.OutOrStdout(), colorize.GreenString("✓ Updated %d cards (%d not in the store)", updated, skipped))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateCardsCmd, migrateTutorialsCmd, migrateNamesCmd)

	migrateCardsCmd.Flags().String("api", seed.DefaultAPIBase, "Tarot API base URL")
	migrateCardsCmd.Flags().Bool("dry-run", false, "Fetch and validate without storing")
}
