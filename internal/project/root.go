// Package project locates the provisioner settings file for a working directory.
package project

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wizzomafizzo/provisioner/internal/constants"
)

// FindSettings finds the settings file that applies to startDir.
//
// PROVISIONER_SETTINGS wins when it names an existing file. Otherwise
// startDir and then each parent is searched for provisioner.yml.
func FindSettings(fs afero.Fs, startDir string) (string, bool) {
	if path, found := checkSettingsEnv(fs); found {
		return path, true
	}
	return FindSettingsFrom(fs, startDir)
}

// FindSettingsFrom searches startDir and its parents only, ignoring the environment.
func FindSettingsFrom(fs afero.Fs, startDir string) (string, bool) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(currentDir, constants.SettingsFilename)
		if isFile(fs, candidate) {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)

		// Stop if we've reached the filesystem root
		if parentDir == currentDir {
			break
		}

		currentDir = parentDir
	}

	return "", false
}

// checkSettingsEnv checks if PROVISIONER_SETTINGS is set and names a file
func checkSettingsEnv(fs afero.Fs) (string, bool) {
	path := os.Getenv(constants.SettingsEnv)
	if path == "" {
		return "", false
	}

	abs, err := filepath.Abs(path)
	if err != nil || !isFile(fs, abs) {
		return "", false
	}

	return abs, true
}

func isFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}
