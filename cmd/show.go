package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/ansi"
	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/config"
	"github.com/arcanaland/arcanum/internal/imagery"
)

var showCmd = &cobra.Command{
	Use:   "show [name_short|name]",
	Short: "Display a card with ANSI art",
	Long: `Show displays a tarot card in the selected language next to ANSI terminal art
rendered from its image. The card can be given by key (ar00, wapa) or by its
name in any language.

Images are read from the configured images directory; the rendered art is
cached under $XDG_DATA_HOME/arcanum/ansi.

Examples:
  arcanum show ar00
  arcanum show --lang es "El Mago"
  arcanum show wapa --no-art`,
	Args: cobra.MinimumNArgs(1),
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

		v, err := a.client.ByKey(ctx, args[0], l)
		if err != nil {
			v, err = a.client.ByDisplayName(ctx, strings.Join(args, " "), l)
		}
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		noArt, _ := cmd.Flags().GetBool("no-art")
		art := ""
		if !noArt {
			art, err = cardArt(v)
			if err != nil {
				logger.Warn("no ANSI art for card", "name_short", v.NameShort, "error", err)
			}
		}

		infoWidth := terminalWidth() - ansi.InfoColumn(art) - 4
		if infoWidth < 20 {
			infoWidth = 20
		}
		ansi.SideBySide(cmd.OutOrStdout(), art, cardInfo(tr, v, infoWidth))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "Print the card text only")
}

// cardArt renders the card image, falling back to the card back.
func cardArt(v card.View) (string, error) {
	images := imagery.DirChecker{Dir: cfg.Images.Dir}
	path, err := images.Open(v.NameEn)
	if err != nil {
		back := filepath.Join(cfg.Images.Dir, filepath.Base(imagery.Placeholder))
		if art, berr := ansi.Cached(ansiCacheDir(), back); berr == nil {
			return art, nil
		}
		return "", err
	}
	return ansi.Cached(ansiCacheDir(), path)
}

func ansiCacheDir() string {
	return filepath.Join(config.GetXDGDataHome(), "arcanum", "ansi")
}

