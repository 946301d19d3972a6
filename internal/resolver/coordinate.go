package resolver

import (
	"fmt"
	"path"
	"strings"
)

const (
	mvnPrefix   = "mvn:"
	defaultType = "jar"
)

// Coordinate identifies one artifact file in a repository.
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Type       string
	Classifier string
}

// ParseCoordinate parses either form:
//
//	group:artifact[:type[:classifier]]:version
//	mvn:group/artifact/version[/type[/classifier]]
//
// Targets that look like paths or URLs return ErrNotCoordinate.
func ParseCoordinate(target string) (Coordinate, error) {
	if rest, ok := strings.CutPrefix(target, mvnPrefix); ok {
		return parsePax(target, rest)
	}

	if strings.ContainsAny(target, `/\ `) || strings.Count(target, ":") < 2 {
		return Coordinate{}, ErrNotCoordinate
	}

	parts := strings.Split(target, ":")
	var c Coordinate
	switch len(parts) {
	case 3:
		c = Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	case 4:
		c = Coordinate{Group: parts[0], Artifact: parts[1], Type: parts[2], Version: parts[3]}
	case 5:
		c = Coordinate{Group: parts[0], Artifact: parts[1], Type: parts[2], Classifier: parts[3], Version: parts[4]}
	default:
		return Coordinate{}, fmt.Errorf("%w: %q has %d parts", ErrInvalidCoordinate, target, len(parts))
	}

	return c.normalize(target)
}

func parsePax(target, rest string) (Coordinate, error) {
	parts := strings.Split(rest, "/")
	if len(parts) < 3 || len(parts) > 5 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, target)
	}

	c := Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	if len(parts) > 3 {
		c.Type = parts[3]
	}
	if len(parts) > 4 {
		c.Classifier = parts[4]
	}

	return c.normalize(target)
}

func (c Coordinate) normalize(target string) (Coordinate, error) {
	if c.Group == "" || c.Artifact == "" || c.Version == "" {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, target)
	}
	if c.Type == "" {
		c.Type = defaultType
	}
	return c, nil
}

// String renders the coordinate in group:artifact[:type[:classifier]]:version form.
func (c Coordinate) String() string {
	parts := []string{c.Group, c.Artifact}
	if c.Type != defaultType || c.Classifier != "" {
		parts = append(parts, c.Type)
	}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	parts = append(parts, c.Version)
	return strings.Join(parts, ":")
}

// FileName is the artifact file name, e.g. widget-1.0-tests.jar.
func (c Coordinate) FileName() string {
	name := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + c.Type
}

// RelativePath is the slash separated path of the artifact inside a repository.
func (c Coordinate) RelativePath() string {
	return path.Join(strings.ReplaceAll(c.Group, ".", "/"), c.Artifact, c.Version, c.FileName())
}
