package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReindexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the block index from the vault and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stats, err := a.pipeline.IndexAll(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), stats.String())
			if err != nil {
				return fmt.Errorf("reindex failed: %w", err)
			}
			return nil
		},
	}
}
