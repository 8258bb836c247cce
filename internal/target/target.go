// Package target defines deployment targets and resolves their execution
// order from the dependency graph.
package target

import (
	"github.com/deployctl/deployctl/internal/config"
)

// Target is a named deployment action with its dependencies resolved against
// the project configuration.
type Target struct {
	Name        string
	Description string
	Steps       []string // Shell commands, run in order
	DependsOn   []string
	Services    []string // Services that must be running before the steps
	Cwd         string   // Working directory relative to the project root
	Env         map[string]string
	Vars        map[string]string
}

// FromConfig builds a Target from its configuration entry.
func FromConfig(name string, cfg config.TargetConfig) *Target {
	return &Target{
		Name:        name,
		Description: cfg.Description,
		Steps:       cfg.Steps(),
		DependsOn:   cfg.DependsOn,
		Services:    cfg.Services,
		Cwd:         cfg.Cwd,
		Env:         cfg.Env,
		Vars:        cfg.Vars,
	}
}
