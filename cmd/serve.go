package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arcanaland/arcanum/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Serve exposes cards, tutorials and interface strings as JSON under /api and
the card images under /tarot-images/. Admin routes are enabled only when
[server] admin_token is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		opts := []server.Option{
			server.WithLogger(logger),
			server.WithAdminToken(cfg.Server.AdminToken),
		}
		if cfg.Images.BaseURL != "" {
			opts = append(opts, server.WithImages(imageChecker()))
		} else {
			opts = append(opts, server.WithImageDir(cfg.Images.Dir))
		}
		if cfg.Server.AdminToken == "" {
			logger.Info("admin routes disabled, no admin token configured")
		}
		return server.New(a.client, opts...).Run(ctx, addr)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
}
