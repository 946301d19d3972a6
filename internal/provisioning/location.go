package provisioning

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	schemeFile = "file"
	schemeJar  = "jar"

	jarEntrySeparator = "!/"
)

// ToLocation converts a resolved filesystem path into an absolute file URL.
func ToLocation(path string) (*url.URL, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidLocation)
	}
	if strings.ContainsRune(path, 0) {
		return nil, fmt.Errorf("%w: NUL byte in %q", ErrInvalidLocation, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Windows volume paths become file:///C:/...
		p = "/" + p
	}

	return &url.URL{Scheme: schemeFile, Path: p}, nil
}

// NameOf derives the local file name a candidate location points at.
//
// Plain paths, file URLs and jar:file:...!/ URLs are understood. Every other
// scheme, and anything without a final path element, yields ErrNotLocal.
func NameOf(candidate string) (string, error) {
	s := strings.TrimSpace(candidate)
	if s == "" {
		return "", fmt.Errorf("%w: empty candidate", ErrNotLocal)
	}

	scheme, rest, ok := splitScheme(s)
	if !ok {
		return baseName(s)
	}

	switch strings.ToLower(scheme) {
	case schemeFile:
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNotLocal, err)
		}
		p := u.Path
		if p == "" && u.Opaque != "" {
			p, err = url.PathUnescape(u.Opaque)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrNotLocal, err)
			}
		}
		return baseName(p)

	case schemeJar:
		archive, _, _ := strings.Cut(rest, jarEntrySeparator)
		inner, _, ok := splitScheme(archive)
		if !ok || !strings.EqualFold(inner, schemeFile) {
			return "", fmt.Errorf("%w: %q", ErrNotLocal, candidate)
		}
		return NameOf(archive)

	default:
		return "", fmt.Errorf("%w: scheme %q", ErrNotLocal, scheme)
	}
}

// splitScheme splits "scheme:rest". Single letter schemes are treated as
// Windows drive letters and rejected.
func splitScheme(s string) (scheme, rest string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 2 {
		return "", "", false
	}

	for j := range i {
		c := s[j]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case j > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return "", "", false
		}
	}

	return s[:i], s[i+1:], true
}

// baseName returns the last element of a slash or backslash separated path.
func baseName(p string) (string, error) {
	p = strings.TrimRight(p, `/\`)
	name := p[strings.LastIndexAny(p, `/\`)+1:]
	if name == "" {
		return "", fmt.Errorf("%w: no file name", ErrNotLocal)
	}
	return name, nil
}
