package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wizzomafizzo/provisioner/internal/config"
	"github.com/wizzomafizzo/provisioner/internal/database"
	"github.com/wizzomafizzo/provisioner/internal/logging"
	"github.com/wizzomafizzo/provisioner/internal/provisioning"
	"github.com/wizzomafizzo/provisioner/internal/resolver"
	"github.com/wizzomafizzo/provisioner/internal/storage"
)

// AppOptions contains configuration options for creating an App
type AppOptions struct {
	// Fs defaults to the OS filesystem
	Fs afero.Fs
	// LogWriter replaces the rotated log file, mainly for tests
	LogWriter io.Writer
	// SettingsPath is the settings file to read
	SettingsPath string
	// Source overrides the directive source named in the settings
	Source string
	// NoCache skips the resolution cache whatever the settings say
	NoCache bool
	// RequireSettings makes a missing settings file an error instead of
	// falling back to defaults
	RequireSettings bool
}

// NewAppWithOptions loads settings, sets up logging and wires the resolver
// chain. The returned context carries the configured logger.
func NewAppWithOptions(ctx context.Context, opts AppOptions) (*App, context.Context, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	settings, err := loadSettings(opts)
	if err != nil {
		return nil, ctx, err
	}
	if opts.Source != "" {
		settings.Source = config.ExpandHome(opts.Source)
	}

	level, err := logging.ParseLevel(settings.Logging.Level)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to set up logging: %w", err)
	}
	ctx, err = logging.New(ctx, opts.Fs, logging.Config{
		Writer: opts.LogWriter,
		Path:   settings.Logging.Path,
		Level:  level,
	})
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to set up logging: %w", err)
	}

	mode, err := settings.ExclusionMode()
	if err != nil {
		return nil, ctx, err //nolint:wrapcheck // already names the setting
	}

	roots := settings.Repositories
	if len(roots) == 0 {
		roots = []string{storage.DefaultRepository()}
	}
	repo, err := resolver.NewRepository(opts.Fs, roots...)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to create repository resolver: %w", err)
	}

	a := &App{
		fs:         opts.Fs,
		settings:   settings,
		repository: repo,
	}

	var chain resolver.Resolver = repo
	if settings.Cache.Enabled && !opts.NoCache {
		// Resolution works without the cache, only slower
		dbManager, err := openCache(ctx, settings.Cache.Path)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("resolution cache unavailable")
		} else {
			a.dbManager = dbManager
			a.cache = resolver.NewCached(dbManager.DB(), opts.Fs, repo, roots...)
			chain = a.cache
		}
	}

	a.configurer = provisioning.New(provisioning.Options{
		Fs:       opts.Fs,
		Resolver: chain,
		Mode:     mode,
	})

	return a, ctx, nil
}

func loadSettings(opts AppOptions) (*config.Settings, error) {
	settings, err := config.Load(opts.Fs, opts.SettingsPath)
	if err == nil {
		return settings, nil
	}
	if !opts.RequireSettings && errors.Is(err, fs.ErrNotExist) {
		return config.DefaultSettings(), nil
	}
	return nil, err //nolint:wrapcheck // config errors name the file
}

// openCache opens the resolution cache. sqlite always works on the OS
// filesystem, so the directory is created there whatever Fs the app uses.
func openCache(ctx context.Context, path string) (*database.Manager, error) {
	osFs := afero.NewOsFs()
	if path == "" {
		var err error
		path, err = storage.New(osFs).GetCachePath()
		if err != nil {
			return nil, fmt.Errorf("failed to get cache path: %w", err)
		}
	} else if err := osFs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbManager, err := database.NewManager(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resolution cache %s: %w", path, err)
	}
	return dbManager, nil
}
