package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wizzomafizzo/provisioner/internal/app"
	"github.com/wizzomafizzo/provisioner/internal/prompt"
)

// createCheckCommand creates the check command.
func createCheckCommand(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [candidate...]",
		Short: "Check whether candidate locations would be accepted",
		Long: "Load the directive source and report ACCEPT or REJECT for each candidate path or URL.\n" +
			"With --interactive, candidates are read from a prompt until end of input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive, err := cmd.Flags().GetBool("interactive")
			if err != nil {
				return fmt.Errorf("failed to get interactive flag: %w", err)
			}
			if len(args) == 0 && !interactive {
				return errors.New("at least one candidate is required unless --interactive is set")
			}

			a, ctx, err := createAppFromCommand(cmd, env)
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			verdicts, res := a.Check(ctx, args...)
			if res.Truncated() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(),
					color.YellowString("[!] %s was not read to the end: %v", res.Source, res.Err))
			}
			for _, v := range verdicts {
				printVerdict(cmd.OutOrStdout(), v)
			}

			if !interactive {
				return nil
			}

			prompter := env.newPrompter()
			defer func() { _ = prompter.Close() }()

			err = prompt.Lines(prompter, "candidate>", func(candidate string) error {
				printVerdict(cmd.OutOrStdout(), a.Judge(candidate))
				return nil
			})
			if errors.Is(err, prompt.ErrCancelled) {
				return nil
			}
			return err //nolint:wrapcheck // prompt errors are already descriptive
		},
	}

	cmd.Flags().BoolP("interactive", "i", false, "Read candidates from a prompt")
	return cmd
}

func printVerdict(w io.Writer, v app.Verdict) {
	verdict := color.GreenString("ACCEPT")
	if !v.Accepted {
		verdict = color.RedString("REJECT")
	}

	detail := v.Name
	if detail == "" {
		detail = "not local"
	}
	_, _ = fmt.Fprintf(w, "%s %s (%s)\n", verdict, v.Candidate, detail)
}
