package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createCacheCommand creates the cache command group.
func createCacheCommand(env *cliEnv) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the resolution cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget every cached coordinate resolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := createAppFromCommand(cmd, env)
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			n, err := a.ClearCache(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[✓] Cleared %d cached resolutions\n", n)
			return nil
		},
	})

	return cacheCmd
}
