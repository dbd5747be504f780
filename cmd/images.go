package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/imagery"
	"github.com/arcanaland/arcanum/internal/lang"
)

// imagesCmd represents the images command group
var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Prepare and check card images",
}

var imagesRenameCmd = &cobra.Command{
	Use:   "rename [dir]",
	Short: "Rename RWS1909 scans to card image names",
	Long: `Rename turns scans named like RWS1909_-_Wands_02.jpeg into two_of_wands.jpg.
A scan whose target already exists is skipped. Defaults to the configured
images directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Images.Dir
		if len(args) == 1 {
			dir = args[0]
		}

		report, err := imagery.RenameRWS(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range report.Renamed {
			target, _ := imagery.RWSName(name)
			fmt.Fprintf(out, "%s %s -> %s\n", colorize.GreenString("✓"), name, target)
		}
		for _, name := range report.Skipped {
			fmt.Fprintf(out, "%s %s (target exists)\n", colorize.YellowString("-"), name)
		}
		for name, err := range report.Failed {
			fmt.Fprintf(out, "%s %s: %v\n", colorize.RedString("✗"), name, err)
		}
		fmt.Fprintf(out, "Renamed %d, skipped %d, failed %d\n", len(report.Renamed), len(report.Skipped), len(report.Failed))
		if len(report.Failed) > 0 {
			return fmt.Errorf("%d images could not be renamed", len(report.Failed))
		}
		return nil
	},
}

var imagesOptimizeCmd = &cobra.Command{
	Use:   "optimize [src] [dst]",
	Short: "Shrink images to fit 400x600 and re-encode them as JPEG",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := imagery.Optimize(args[0], args[1])
		if err != nil {
			return err
		}

		var before, after int64
		out := cmd.OutOrStdout()
		for _, r := range results {
			before += r.OriginalSize
			after += r.OutputSize
			fmt.Fprintf(out, "%s %s (%.1f%% smaller)\n", colorize.GreenString("✓"), r.Output, r.Savings())
		}
		total := imagery.OptimizeResult{OriginalSize: before, OutputSize: after}
		fmt.Fprintf(out, "Optimized %d images, %d KB -> %d KB (%.1f%% smaller)\n",
			len(results), before/1024, after/1024, total.Savings())
		return nil
	},
}

var imagesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List cards whose image is missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		checker := imageChecker()
		missing := 0
		out := cmd.OutOrStdout()
		for _, c := range cards {
			nameEn := c.Name[lang.English]
			if checker.Exists(ctx, nameEn) {
				continue
			}
			missing++
			fmt.Fprintf(out, "%s %-5s %s\n", colorize.RedString("✗"), c.NameShort, imagery.FileName(nameEn))
		}
		if missing > 0 {
			return fmt.Errorf("%d of %d card images missing", missing, len(cards))
		}
		fmt.Fprintln(out, colorize.GreenString("✓ All %d card images found", len(cards)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(imagesCmd)
	imagesCmd.AddCommand(imagesRenameCmd, imagesOptimizeCmd, imagesCheckCmd)
}
