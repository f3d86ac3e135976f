// Command catimport reconciles spreadsheet product feeds against the shop
// catalog: existing products (matched by barcode) are updated, new ones are
// created together with their localized text row.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/poissondor/catimport/internal/config"
	"github.com/poissondor/catimport/internal/logging"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catimport",
		Short:        "Reconcile spreadsheet product feeds against the shop catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env if present (Overload overwrites existing env vars)
			if err := godotenv.Overload(); err == nil {
				slog.Info("loaded .env file (overwriting existing env vars)")
			}

			c, err := config.Load()
			if err != nil {
				slog.Error("failed to load configuration", "error", err)
				return err
			}
			cfg = c

			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			slog.Debug("configuration loaded", "config", cfg.String())
			return nil
		},
	}

	root.AddCommand(newImportCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitCmd())
	return root
}
