package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/i18n"
	"github.com/arcanaland/arcanum/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the stored cards, tutorials and translations",
	Long: `Validate checks that the store holds the 78 cards of the standard deck with
well-formed fields and distinct values, that the tutorial sections decode, and
reports translations that fall back to English. With --images it also checks
that every card has an image.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		withImages, _ := cmd.Flags().GetBool("images")

		ctx := cmd.Context()
		a, err := openStoreApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		cards, err := a.client.Raw(ctx)
		if err != nil {
			return fmt.Errorf("error reading cards: %w", err)
		}
		sections, err := a.store.ListSections(ctx, false)
		if err != nil {
			return fmt.Errorf("error reading tutorials: %v", err)
		}

		v := validator.NewValidator(cards)
		v.Sections = sections
		v.Strings = i18n.Default()
		if withImages {
			v.Images = imageChecker()
		}
		results, err := v.Validate(ctx)
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		// Display validation results
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintf(out, "✅ %d cards are valid.\n", len(cards))
		} else {
			fmt.Fprintf(out, "❌ Found %d validation errors:\n", len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("images", false, "Also check that every card has an image")
}
