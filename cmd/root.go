package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/config"
	"github.com/arcanaland/arcanum/internal/i18n"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/logging"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	langFlag     string
	logLevelFlag string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "arcanum",
	Short: "Bilingual tarot card catalog",
	Long: `Arcanum serves a bilingual (English/Spanish) tarot card catalog and its tutorial.
It reads cards and tutorial sections from a SQLite or PostgreSQL store, caches
reads, serves them over HTTP and provides tools to seed, edit and check them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "Language for card text (en, es); defaults to the configured language")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func setup() error {
	c, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %v", err)
	}

	level := c.Log.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg = c
	logger = logging.New(os.Stderr, lvl)
	slog.SetDefault(logger)
	return nil
}

// language returns the --lang flag, or the configured default language.
func language() (lang.Code, error) {
	if langFlag == "" {
		return cfg.Language(), nil
	}
	return lang.Parse(langFlag)
}

// translator returns the interface strings for the selected language.
func translator() (i18n.Translator, error) {
	l, err := language()
	if err != nil {
		return i18n.Translator{}, err
	}
	return i18n.Default().For(l), nil
}
