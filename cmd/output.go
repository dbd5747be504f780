package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/arcanum/internal/ansi"
	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/deck"
	"github.com/arcanaland/arcanum/internal/i18n"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// terminalWidth returns the width of stdout, 80 when it is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// cardLine is the one-line listing of a card.
func cardLine(v card.View) string {
	line := colorize.CyanString("%-5s", v.NameShort) + " " + colorize.HiWhiteString("%s", v.Name)
	if v.Suit != "" {
		line += colorize.HiBlackString("  %s %s", ansi.SuitSymbol(suitOf(v.Suit)), v.Suit)
	}
	return line
}

// suitOf finds the canonical suit of a label in any language.
func suitOf(label string) card.Suit {
	for suit, labels := range deck.SuitLabels {
		for _, l := range labels {
			if strings.EqualFold(l, label) {
				return suit
			}
		}
	}
	return ""
}

func printViews(w io.Writer, tr i18n.Translator, views []card.View) {
	if len(views) == 0 {
		fmt.Fprintln(w, tr.T("deckPage.emptyState.message", nil))
		return
	}
	for _, v := range views {
		fmt.Fprintln(w, cardLine(v))
	}
}

func printLegacy(w io.Writer, cards []card.Legacy) {
	for _, c := range cards {
		line := colorize.CyanString("%-5s", c.NameShort) + " " + colorize.HiWhiteString("%s", c.Name)
		if c.Suit != "" {
			line += colorize.HiBlackString("  %s", c.Suit)
		}
		fmt.Fprintln(w, line)
	}
}

// cardInfo returns the labelled text lines of a card wrapped to width.
func cardInfo(tr i18n.Translator, v card.View, width int) []string {
	var lines []string
	lines = append(lines, colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", v.Name))
	lines = append(lines, colorize.CyanString("ID:   ")+colorize.HiWhiteString("%s", v.NameShort))

	if v.Type == card.Major {
		lines = append(lines, colorize.CyanString("Type: ")+
			colorize.HiWhiteString("%s · %s", tr.T("deckPage.filters.arcana.majorArcana", nil), ansi.ArcanaSymbol(v.Type)))
	} else {
		lines = append(lines, colorize.CyanString("Type: ")+
			colorize.HiWhiteString("%s · %s", tr.T("deckPage.filters.arcana.minorArcana", nil), ansi.ArcanaSymbol(v.Type)))
		lines = append(lines, colorize.CyanString("Suit: ")+
			colorize.HiWhiteString("%s · %s", v.Suit, ansi.SuitSymbol(suitOf(v.Suit))))
		lines = append(lines, colorize.CyanString("Rank: ")+colorize.HiWhiteString("%s", v.Value))
	}

	sections := []struct {
		key  string
		text string
	}{
		{"tarotCard.sections.uprightMeaning", v.MeaningUp},
		{"tarotCard.sections.reversedMeaning", v.MeaningRev},
		{"tarotCard.sections.description", v.Desc},
	}
	for _, s := range sections {
		if s.text == "" {
			continue
		}
		lines = append(lines, "", colorize.CyanString("%s:", tr.T(s.key, nil)))
		for _, l := range ansi.Wrap(s.text, width) {
			lines = append(lines, colorize.WhiteString("%s", l))
		}
	}
	return lines
}
