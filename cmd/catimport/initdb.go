package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/poissondor/catimport/internal/catalog"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context())
		},
	}
}

func runInit(ctx context.Context) error {
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := catalog.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	slog.Info("catalog schema ensured", "tables", []string{"product", "product_lang"})
	return nil
}
