// Package app wires settings, logging, the resolver chain and the
// provisioning configurer together for the provisioner command.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/wizzomafizzo/provisioner/internal/config"
	"github.com/wizzomafizzo/provisioner/internal/database"
	"github.com/wizzomafizzo/provisioner/internal/provisioning"
	"github.com/wizzomafizzo/provisioner/internal/resolver"
)

// ErrCacheDisabled is returned by cache operations when no cache is open.
var ErrCacheDisabled = errors.New("resolution cache is disabled")

type App struct {
	fs         afero.Fs
	settings   *config.Settings
	configurer *provisioning.Configurer
	repository *resolver.Repository
	cache      *resolver.Cached
	dbManager  *database.Manager
}

// Verdict is the outcome of checking one candidate location.
type Verdict struct {
	Candidate string
	// Name is the file name the filter matched against; empty when the
	// candidate is not local
	Name     string
	Accepted bool
}

// Settings returns the effective settings.
func (a *App) Settings() *config.Settings {
	return a.settings
}

// Source is the directive source the app loads.
func (a *App) Source() string {
	return a.settings.Source
}

// Repositories lists the repository roots in search order.
func (a *App) Repositories() []string {
	return a.repository.Roots()
}

// CacheEnabled reports whether resolutions go through the sqlite cache.
func (a *App) CacheEnabled() bool {
	return a.cache != nil
}

// Load reads the directive source and publishes the result.
func (a *App) Load(ctx context.Context) provisioning.Result {
	return a.configurer.Load(ctx, a.settings.Source)
}

// Check loads the source and judges every candidate against it.
func (a *App) Check(ctx context.Context, candidates ...string) ([]Verdict, provisioning.Result) {
	res := a.Load(ctx)
	verdicts := make([]Verdict, 0, len(candidates))
	for _, c := range candidates {
		verdicts = append(verdicts, a.Judge(c))
	}
	return verdicts, res
}

// Judge checks one candidate against the last loaded result.
func (a *App) Judge(candidate string) Verdict {
	// A candidate without a local name is reported with an empty Name
	name, _ := provisioning.NameOf(candidate)
	return Verdict{
		Candidate: candidate,
		Name:      name,
		Accepted:  a.configurer.ShouldAccept(candidate),
	}
}

// Validate classifies every line of the source without resolving anything.
func (a *App) Validate(_ context.Context) ([]provisioning.Directive, error) {
	f, err := a.fs.Open(a.settings.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provisioning.ErrSourceRead, err)
	}
	defer func() { _ = f.Close() }()

	directives, err := provisioning.ParseDirectives(f)
	if err != nil {
		return directives, fmt.Errorf("failed to parse %s: %w", a.settings.Source, err)
	}
	return directives, nil
}

// ClearCache drops every cached resolution.
func (a *App) ClearCache(ctx context.Context) (int64, error) {
	if a.cache == nil {
		return 0, ErrCacheDisabled
	}
	n, err := a.cache.Forget(ctx)
	if err != nil {
		return 0, err //nolint:wrapcheck // already describes the cache operation
	}
	return n, nil
}

// Close releases the cache database.
func (a *App) Close() error {
	if a.dbManager == nil {
		return nil
	}
	return a.dbManager.Close() //nolint:wrapcheck // manager wraps its own errors
}
