package target

import (
	"sort"

	"github.com/deployctl/deployctl/internal/config"
	"github.com/deployctl/deployctl/internal/errors"
	"github.com/deployctl/deployctl/internal/topsort"
)

// Registry holds all targets declared in a project's configuration.
type Registry struct {
	targets map[string]*Target
	graph   topsort.Graph
}

// NewRegistry builds a registry from configuration and validates the
// dependency graph up front, so resolution errors surface before any
// target runs.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	r := &Registry{
		targets: make(map[string]*Target, len(cfg.Targets)),
		graph:   make(topsort.Graph, len(cfg.Targets)),
	}

	for name, targetCfg := range cfg.Targets {
		r.targets[name] = FromConfig(name, targetCfg)
		r.graph[name] = targetCfg.DependsOn
	}

	if err := topsort.Validate(r.graph); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns a target by name.
func (r *Registry) Get(name string) (*Target, error) {
	t, ok := r.targets[name]
	if !ok {
		return nil, errors.UnknownTarget(name)
	}
	return t, nil
}

// Has reports whether a target is declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.targets[name]
	return ok
}

// Names returns all target names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all targets in name order.
func (r *Registry) All() []*Target {
	targets := make([]*Target, 0, len(r.targets))
	for _, name := range r.Names() {
		targets = append(targets, r.targets[name])
	}
	return targets
}

// Resolve returns the execution plan for a target: its transitive
// dependencies in topological order, ending with the target itself.
// Each target appears exactly once.
func (r *Registry) Resolve(name string) ([]*Target, error) {
	if !r.Has(name) {
		return nil, errors.UnknownTarget(name)
	}

	order, err := topsort.Sort(r.graph, []string{name})
	if err != nil {
		return nil, err
	}

	plan := make([]*Target, 0, len(order))
	for _, n := range order {
		plan = append(plan, r.targets[n])
	}
	return plan, nil
}

// ServicesFor collects the distinct services required by a plan, in first-use
// order.
func ServicesFor(plan []*Target) []string {
	seen := make(map[string]bool)
	var services []string
	for _, t := range plan {
		for _, svc := range t.Services {
			if !seen[svc] {
				seen[svc] = true
				services = append(services, svc)
			}
		}
	}
	return services
}
