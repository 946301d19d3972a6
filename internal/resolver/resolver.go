// Package resolver turns addition targets into local filesystem paths.
//
// A target is either a literal path, returned unchanged, or an artifact
// coordinate looked up in local repositories laid out like a Maven
// repository. Nothing is ever downloaded.
package resolver

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotCoordinate reports a target that is not an artifact coordinate.
	ErrNotCoordinate = errors.New("not an artifact coordinate")
	// ErrInvalidCoordinate reports a coordinate with missing or malformed parts.
	ErrInvalidCoordinate = errors.New("invalid artifact coordinate")
	// ErrArtifactNotFound reports a coordinate absent from every repository.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrRemoteTarget reports a target that would require a download.
	ErrRemoteTarget = errors.New("remote targets are not supported")
	// ErrNoRepositories reports a repository resolver without roots.
	ErrNoRepositories = errors.New("no repositories configured")
)

// Resolver resolves one addition target to a local path.
type Resolver interface {
	Resolve(ctx context.Context, target string) (string, error)
}

// Func adapts a function to Resolver.
type Func func(ctx context.Context, target string) (string, error)

// Resolve implements Resolver.
func (f Func) Resolve(ctx context.Context, target string) (string, error) {
	return f(ctx, target)
}

var remoteSchemes = []string{"http:", "https:", "ftp:"}

// IsRemote reports whether target names a location that would need downloading.
func IsRemote(target string) bool {
	lower := strings.ToLower(target)
	for _, s := range remoteSchemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return false
}
