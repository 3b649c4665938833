// ABOUTME: Standard filesystem paths for parity configuration and custom skills
// ABOUTME: Resolves ~/.parity/ for global and .parity/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".parity"
	projectDirName = ".parity"
)

// GlobalDir returns the user-global config directory (~/.parity/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.parity/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.json")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.json")
}

// SkillsDirs returns the skill directories in resolution order
// (extra dirs from settings first, then project-local, then global).
func SkillsDirs(projectRoot string, extra ...string) []string {
	dirs := append([]string(nil), extra...)
	return append(dirs,
		filepath.Join(ProjectDir(projectRoot), "skills"),
		filepath.Join(GlobalDir(), "skills"),
	)
}

// CredentialsFile returns the path of the stored API credentials.
func CredentialsFile() string {
	return filepath.Join(GlobalDir(), "credentials.json")
}
