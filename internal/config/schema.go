// Package config provides configuration loading and validation for config.json.
package config

// Config represents the complete config.json configuration.
type Config struct {
	Project  ProjectConfig            `json:"project"`
	Params   map[string]string        `json:"params,omitempty"`
	Services map[string]ServiceConfig `json:"services,omitempty"`
	Targets  map[string]TargetConfig  `json:"targets,omitempty"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ServiceConfig defines a managed local service (a container the
// orchestrator starts and stops on behalf of targets).
type ServiceConfig struct {
	Image   string            `json:"image"`
	Ports   []string          `json:"ports,omitempty"` // "host:container" mappings
	Env     map[string]string `json:"env,omitempty"`
	Volumes []string          `json:"volumes,omitempty"` // "host:container" mounts
	Command string            `json:"command,omitempty"` // Override container command
}

// TargetConfig defines a deployment target.
//
// Run holds the command definition: either a single shell command (string)
// or an ordered list of shell commands ([]interface{} after JSON parsing).
type TargetConfig struct {
	Description string            `json:"description,omitempty"`
	Run         interface{}       `json:"run"`
	DependsOn   []string          `json:"depends_on,omitempty"`
	Services    []string          `json:"services,omitempty"`
	Cwd         string            `json:"cwd,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Vars        map[string]string `json:"vars,omitempty"`
}
