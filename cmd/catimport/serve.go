package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/poissondor/catimport/internal/catalog"
	"github.com/poissondor/catimport/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP import API",
		Long: `Serve exposes the importer over HTTP: POST /api/import accepts a
multipart .xlsx feed and runs one batch per request. Imports are sequential
by design; run a single instance against a given catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	importer := catalog.New(
		catalog.NewDB(pool),
		catalog.WithLocale(cfg.Import.LangID, cfg.Import.ShopID),
	)
	server := web.NewServer(importer, cfg)

	// Graceful shutdown on SIGINT/SIGTERM via the command context
	go func() {
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}
