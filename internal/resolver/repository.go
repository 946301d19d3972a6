package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wizzomafizzo/provisioner/internal/constants"
)

// Repository resolves coordinates against local repository roots, searched
// in order. Literal path targets are returned unchanged.
type Repository struct {
	fs    afero.Fs
	roots []string
}

// NewRepository creates a resolver over roots. At least one root is required.
func NewRepository(fs afero.Fs, roots ...string) (*Repository, error) {
	if len(roots) == 0 {
		return nil, ErrNoRepositories
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Repository{fs: fs, roots: slices.Clone(roots)}, nil
}

// Roots returns the configured repository roots in search order.
func (r *Repository) Roots() []string {
	return slices.Clone(r.roots)
}

// Resolve implements Resolver.
func (r *Repository) Resolve(ctx context.Context, target string) (string, error) {
	if IsRemote(target) {
		return "", fmt.Errorf("%w: %q", ErrRemoteTarget, target)
	}

	coord, err := ParseCoordinate(target)
	if errors.Is(err, ErrNotCoordinate) {
		return target, nil
	}
	if err != nil {
		return "", err
	}

	return r.Locate(ctx, coord)
}

// Locate returns the path of coord in the first root that holds it.
func (r *Repository) Locate(ctx context.Context, coord Coordinate) (string, error) {
	rel := filepath.FromSlash(coord.RelativePath())
	for _, root := range r.roots {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("failed to locate %s: %w", coord, err)
		}

		candidate := filepath.Join(root, rel)
		ok, err := afero.Exists(r.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if ok {
			zerolog.Ctx(ctx).Debug().
				Str(constants.FieldCoordinate, coord.String()).
				Str(constants.FieldPath, candidate).
				Msg("artifact located")
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s in %d repositories", ErrArtifactNotFound, coord, len(r.roots))
}
