package resolver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wizzomafizzo/provisioner/internal/constants"
)

// Cached remembers coordinate resolutions in the resolutions table so that
// repeated loads skip the repository search. A cached path is only trusted
// while the file still exists and only for the same ordered repository
// roots it was found with. Literal and remote targets go straight to next.
type Cached struct {
	next  Resolver
	db    *sql.DB
	fs    afero.Fs
	roots string
}

// NewCached wraps next with a cache stored in db. roots are the repository
// roots next searches, in order; rows recorded under other roots are misses.
func NewCached(db *sql.DB, fs afero.Fs, next Resolver, roots ...string) *Cached {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Cached{next: next, db: db, fs: fs, roots: strings.Join(roots, "\n")}
}

// Resolve implements Resolver.
func (c *Cached) Resolve(ctx context.Context, target string) (string, error) {
	if IsRemote(target) {
		return c.next.Resolve(ctx, target)
	}
	coord, err := ParseCoordinate(target)
	if err != nil {
		return c.next.Resolve(ctx, target)
	}

	logger := zerolog.Ctx(ctx)
	key := coord.String()

	path, ok, err := c.lookup(ctx, key)
	if err != nil {
		// A broken cache must not block resolution.
		logger.Warn().Err(err).Str(constants.FieldCoordinate, key).Msg("resolution cache lookup failed")
	}
	if ok {
		exists, statErr := afero.Exists(c.fs, path)
		if statErr == nil && exists {
			logger.Debug().Str(constants.FieldCoordinate, key).Str(constants.FieldPath, path).Msg("resolution cache hit")
			return path, nil
		}
		logger.Debug().Str(constants.FieldCoordinate, key).Str(constants.FieldPath, path).Msg("stale resolution")
	}

	path, err = c.next.Resolve(ctx, target)
	if err != nil {
		return "", err
	}

	if err := c.store(ctx, key, path); err != nil {
		logger.Warn().Err(err).Str(constants.FieldCoordinate, key).Msg("resolution cache store failed")
	}
	return path, nil
}

// Forget removes every cached resolution and returns how many were dropped.
func (c *Cached) Forget(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM resolutions")
	if err != nil {
		return 0, fmt.Errorf("failed to clear resolution cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared resolutions: %w", err)
	}
	return n, nil
}

func (c *Cached) lookup(ctx context.Context, key string) (string, bool, error) {
	var path string
	err := c.db.QueryRowContext(ctx,
		"SELECT path FROM resolutions WHERE coordinate = ? AND roots = ?", key, c.roots).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read resolution for %q: %w", key, err)
	}
	return path, true, nil
}

func (c *Cached) store(ctx context.Context, key, path string) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO resolutions (coordinate, path, roots, resolved_at) VALUES (?, ?, ?, unixepoch())",
		key, path, c.roots)
	if err != nil {
		return fmt.Errorf("failed to store resolution for %q: %w", key, err)
	}
	return nil
}
