package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/export"
)

// exportCmd represents the export command group
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the card collection",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write every card as CSV, multilingual fields as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

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

		var w io.Writer = cmd.OutOrStdout()
		if output != "" && output != "-" {
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("error creating %s: %v", output, err)
			}
			defer file.Close()
			w = file
		}
		if err := export.WriteCSV(w, cards); err != nil {
			return err
		}
		logger.Info("exported cards", "count", len(cards), "output", output)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)

	exportCSVCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
