// Package config loads the provisioner settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wizzomafizzo/provisioner/internal/logging"
	"github.com/wizzomafizzo/provisioner/internal/provisioning"
)

var (
	ErrEmptySource     = errors.New("source must not be empty")
	ErrEmptyRepository = errors.New("repository root must not be empty")
	ErrInvalidSettings = errors.New("invalid settings")
)

type Settings struct {
	Source       string            `yaml:"source"`
	Exclusions   ExclusionSettings `yaml:"exclusions"`
	Repositories []string          `yaml:"repositories,omitempty"`
	Cache        CacheSettings     `yaml:"cache"`
	Logging      LoggingSettings   `yaml:"logging"`
}

type ExclusionSettings struct {
	Mode string `yaml:"mode"`
}

type CacheSettings struct {
	// Path is always on the OS filesystem and defaults to the data directory when empty
	Path    string `yaml:"path,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

type LoggingSettings struct {
	Level string `yaml:"level"`
	// Path defaults to the data directory when empty
	Path string `yaml:"path,omitempty"`
}

// Load reads settings from path in fs. Fields missing from the file keep
// their default values. Relative paths are taken relative to the file.
func Load(fs afero.Fs, path string) (*Settings, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings, err := LoadFromYAML(data)
	if err != nil {
		return nil, err
	}

	settings.Rebase(filepath.Dir(path))
	return settings, nil
}

// LoadFromYAML decodes and validates settings from YAML bytes.
func LoadFromYAML(data []byte) (*Settings, error) {
	settings := DefaultSettings()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return settings, nil
}

// Validate checks that every field holds a usable value.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Source) == "" {
		return ErrEmptySource
	}

	if _, err := provisioning.ParseExclusionMode(s.Exclusions.Mode); err != nil {
		return fmt.Errorf("%w: exclusions.mode: %w", ErrInvalidSettings, err)
	}

	for i, root := range s.Repositories {
		if strings.TrimSpace(root) == "" {
			return fmt.Errorf("%w: repositories[%d]", ErrEmptyRepository, i)
		}
	}

	if _, err := logging.ParseLevel(s.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalidSettings, err)
	}

	return nil
}

// ExclusionMode returns the parsed exclusion mode. Settings are validated on
// load so the error is only possible for hand built values.
func (s *Settings) ExclusionMode() (provisioning.ExclusionMode, error) {
	mode, err := provisioning.ParseExclusionMode(s.Exclusions.Mode)
	if err != nil {
		return mode, fmt.Errorf("%w: exclusions.mode: %w", ErrInvalidSettings, err)
	}
	return mode, nil
}

// Rebase expands "~" and makes every relative path absolute against dir.
func (s *Settings) Rebase(dir string) {
	s.Source = rebase(dir, s.Source)
	for i, root := range s.Repositories {
		s.Repositories[i] = rebase(dir, root)
	}
	if s.Cache.Path != "" {
		s.Cache.Path = rebase(dir, s.Cache.Path)
	}
	if s.Logging.Path != "" {
		s.Logging.Path = rebase(dir, s.Logging.Path)
	}
}

func rebase(dir, path string) string {
	path = ExpandHome(path)
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	switch {
	case path == "~":
		return xdg.Home
	case strings.HasPrefix(path, "~/"), strings.HasPrefix(path, `~\`):
		return filepath.Join(xdg.Home, path[2:])
	default:
		return path
	}
}
