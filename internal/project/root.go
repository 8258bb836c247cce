// Package project provides project discovery and loading functionality.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirName is the name of the deployctl configuration directory.
const ConfigDirName = ".deployctl"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.json"

// RunsDirName is the name of the directory holding recorded run state.
const RunsDirName = "runs"

// ErrNoProjectRoot is returned when .deployctl/config.json is not found.
var ErrNoProjectRoot = errors.New(".deployctl/config.json not found: not a deployctl project (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds .deployctl/config.json.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds .deployctl/config.json.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigDirName, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
