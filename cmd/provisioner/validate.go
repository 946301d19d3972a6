package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wizzomafizzo/provisioner/internal/provisioning"
)

// createValidateCommand creates the validate command.
func createValidateCommand(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Show how each directive line is classified",
		Long:  "Classify every line of the directive source without resolving additions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ctx, err := createAppFromCommand(cmd, env)
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			directives, err := a.Validate(ctx)

			counts := map[provisioning.Kind]int{}
			for _, d := range directives {
				counts[d.Kind]++
				if d.Kind == provisioning.KindBlank {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-9s  %s\n", d.Line, d.Kind, d.Text)
			}

			if err != nil {
				return fmt.Errorf("validation error: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("[✓] %s: %d additions, %d exclusions",
				a.Source(), counts[provisioning.KindAddition], counts[provisioning.KindExclusion]))
			return nil
		},
	}
}
