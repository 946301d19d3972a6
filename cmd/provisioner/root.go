package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wizzomafizzo/provisioner/internal/app"
	"github.com/wizzomafizzo/provisioner/internal/constants"
	"github.com/wizzomafizzo/provisioner/internal/project"
	"github.com/wizzomafizzo/provisioner/internal/prompt"
)

// cliEnv holds what commands need from the outside world so tests can swap it.
type cliEnv struct {
	fs          afero.Fs
	logWriter   io.Writer
	newPrompter func() prompt.Prompter
	// workDir is where settings discovery starts
	workDir string
}

func defaultEnv() *cliEnv {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}
	return &cliEnv{
		fs:      afero.NewOsFs(),
		workDir: workDir,
		newPrompter: func() prompt.Prompter {
			return prompt.NewLinerPrompter()
		},
	}
}

// createNewRootCommand creates the main root command that shows help by default.
func createNewRootCommand() *cobra.Command {
	return newRootCommand(defaultEnv())
}

func newRootCommand(env *cliEnv) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Inspect module loader provisioning directives",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when run without subcommands
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("settings", "s", constants.SettingsFilename, "Path to settings file")
	rootCmd.PersistentFlags().String("source", "", "Directive source, overrides the settings file")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Resolve without the resolution cache")

	rootCmd.AddCommand(
		createAdditionsCommand(env),
		createCheckCommand(env),
		createValidateCommand(env),
		createCacheCommand(env),
		createSettingsCommand(env),
	)

	return rootCmd
}

// createAppFromCommand reads the persistent flags and creates the app.
// The caller must Close the returned app.
func createAppFromCommand(cmd *cobra.Command, env *cliEnv) (*app.App, context.Context, error) {
	flags := cmd.Flags()

	settingsPath, err := flags.GetString("settings")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get settings flag: %w", err)
	}
	source, err := flags.GetString("source")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get source flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	// Without an explicit flag, use the nearest settings file if there is one
	explicit := flags.Changed("settings")
	if !explicit {
		if found, ok := project.FindSettings(env.fs, env.workDir); ok {
			settingsPath = found
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, ctx, err := app.NewAppWithOptions(ctx, app.AppOptions{
		Fs:              env.fs,
		LogWriter:       env.logWriter,
		SettingsPath:    settingsPath,
		Source:          source,
		NoCache:         noCache,
		RequireSettings: explicit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start: %w", err)
	}
	return a, ctx, nil
}

func closeApp(cmd *cobra.Command, a *app.App) {
	if err := a.Close(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error closing resolution cache: %v\n", err)
	}
}
