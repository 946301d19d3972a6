package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// createAdditionsCommand creates the additions command.
func createAdditionsCommand(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "additions",
		Short: "List the locations the loader would add",
		Long:  "Load the directive source and print the resolved locations in directive order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := createAppFromCommand(cmd, env)
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			res := a.Load(ctx)
			for _, loc := range res.Additions {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), loc.String())
			}

			for _, path := range res.Dropped {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("[!] dropped %s", path))
			}
			if res.Truncated() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(),
					color.YellowString("[!] %s was not read to the end: %v", res.Source, res.Err))
			}
			return nil
		},
	}
}
