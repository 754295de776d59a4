package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/config"
	"github.com/hometech/server/database/seeders"
)

// hometech seed — populate the store with the storefront baseline.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all document-store seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := repositories.Connect(ctx)
		if err != nil {
			return err
		}
		defer store.Close(context.Background()) //nolint:errcheck

		if err := store.EnsureIndexes(ctx); err != nil {
			return err
		}

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, store)
	},
}
