package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wizzomafizzo/provisioner/internal/constants"
)

// DefaultSettings returns the settings used when no settings file exists
func DefaultSettings() *Settings {
	return &Settings{
		Source: constants.SourceFilename,
		Exclusions: ExclusionSettings{
			Mode: "stripped",
		},
		Cache: CacheSettings{
			Enabled: true,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// DefaultSettingsYAML returns the default settings as YAML bytes
func DefaultSettingsYAML() ([]byte, error) {
	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default settings to YAML: %w", err)
	}
	return data, nil
}

// ErrSettingsExist is returned by WriteDefault when the file is already there
var ErrSettingsExist = errors.New("settings file already exists")

// WriteDefault writes the default settings to path, refusing to replace an
// existing file unless force is set
func WriteDefault(fs afero.Fs, path string, force bool) error {
	if !force {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return fmt.Errorf("failed to check settings file: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrSettingsExist, path)
		}
	}

	data, err := DefaultSettingsYAML()
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// YAML renders the settings as they would appear in a settings file
func (s *Settings) YAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}
	return data, nil
}
