// Package constants contains names shared across provisioner packages.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "provisioner"

	// LogFilename is the default log file name for provisioner.
	LogFilename = "provisioner.log"

	// CacheFilename is the default resolution cache database file name.
	CacheFilename = "resolutions.db"

	// SettingsFilename is the default settings file read by the CLI.
	SettingsFilename = "provisioner.yml"

	// SourceFilename is the default directive source next to the settings file.
	SourceFilename = "provisioning.txt"

	// MavenRepositoryDir is the default local repository below the home directory.
	MavenRepositoryDir = ".m2/repository"

	// SettingsEnv names an explicit settings file, checked before searching parent directories.
	SettingsEnv = "PROVISIONER_SETTINGS"
)
