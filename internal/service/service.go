// Package service provides idempotent lifecycle management for the local
// containerized services that deployment targets depend on.
package service

import (
	"sort"

	"github.com/deployctl/deployctl/internal/config"
)

// Status represents the observed state of a managed service's container.
type Status string

const (
	// StatusRunning means the container exists and is running.
	StatusRunning Status = "running"
	// StatusStopped means the container exists but is not running.
	StatusStopped Status = "stopped"
	// StatusAbsent means no container exists for the service.
	StatusAbsent Status = "absent"
)

// Service is a managed local service (e.g., a containerized database or
// broker). Lifecycle transitions are driven by the Manager only.
type Service struct {
	Name    string
	Image   string
	Ports   []string // "host:container" mappings
	Env     map[string]string
	Volumes []string // "host:container" mounts
	Command string   // Optional container command override
}

// FromConfig builds a Service from its configuration entry.
func FromConfig(name string, cfg config.ServiceConfig) Service {
	return Service{
		Name:    name,
		Image:   cfg.Image,
		Ports:   cfg.Ports,
		Env:     cfg.Env,
		Volumes: cfg.Volumes,
		Command: cfg.Command,
	}
}

// All builds the sorted list of services from configuration.
func All(cfgs map[string]config.ServiceConfig) []Service {
	names := make([]string, 0, len(cfgs))
	for name := range cfgs {
		names = append(names, name)
	}
	sort.Strings(names)

	services := make([]Service, 0, len(names))
	for _, name := range names {
		services = append(services, FromConfig(name, cfgs[name]))
	}
	return services
}

// sortedEnvKeys returns the service's env var names in stable order.
func (s Service) sortedEnvKeys() []string {
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
