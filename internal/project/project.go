package project

import (
	"path/filepath"

	"github.com/deployctl/deployctl/internal/config"
	"github.com/deployctl/deployctl/internal/errors"
)

// Project represents a loaded deployctl project.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
}

// LoadProject finds and loads a project from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads a project from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	configPath := filepath.Join(root, ConfigDirName, ConfigFileName)

	cfg, warnings, err := config.LoadAndValidate(configPath)
	if err != nil {
		return nil, errors.ConfigWrap(err, "failed to load configuration")
	}

	return &Project{
		Root:     root,
		Config:   cfg,
		Warnings: warnings,
	}, nil
}

// ConfigPath returns the full path to the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigDirName, ConfigFileName)
}

// RunsDir returns the directory where run state is recorded.
func (p *Project) RunsDir() string {
	return filepath.Join(p.Root, ConfigDirName, RunsDirName)
}
