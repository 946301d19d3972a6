package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wizzomafizzo/provisioner/internal/config"
)

// createSettingsCommand creates the settings command group.
func createSettingsCommand(env *cliEnv) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Create or show the settings file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("settings")
			if err != nil {
				return fmt.Errorf("failed to get settings flag: %w", err)
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return fmt.Errorf("failed to get force flag: %w", err)
			}

			if err := config.WriteDefault(env.fs, path, force); err != nil {
				return fmt.Errorf("failed to initialize settings: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[✓] Wrote default settings to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolP("force", "f", false, "Replace an existing settings file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := createAppFromCommand(cmd, env)
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			data, err := a.Settings().YAML()
			if err != nil {
				return err //nolint:wrapcheck // already describes the marshal
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	settingsCmd.AddCommand(initCmd, showCmd)
	return settingsCmd
}
