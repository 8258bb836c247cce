// Package integration contains integration tests for deployctl.
package integration

import (
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/deployctl/deployctl/internal/project"
	"github.com/deployctl/deployctl/internal/target"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
// The result is cached since runtime.Caller is relatively expensive.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

func TestMinimalProject(t *testing.T) {
	t.Parallel()
	fixtureDir := filepath.Join(fixturesDir(), "minimal")

	proj, err := project.LoadProjectFrom(fixtureDir)
	if err != nil {
		t.Fatalf("failed to load minimal project: %v", err)
	}

	if proj.Config.Project.Name != "minimal-project" {
		t.Errorf("expected project name %q, got %q", "minimal-project", proj.Config.Project.Name)
	}

	if len(proj.Config.Targets) != 1 {
		t.Errorf("expected 1 target, got %d", len(proj.Config.Targets))
	}

	if len(proj.Config.Services) != 0 {
		t.Errorf("expected 0 services, got %d", len(proj.Config.Services))
	}
}

func TestWebshopProject(t *testing.T) {
	t.Parallel()
	fixtureDir := filepath.Join(fixturesDir(), "webshop")

	proj, err := project.LoadProjectFrom(fixtureDir)
	if err != nil {
		t.Fatalf("failed to load webshop project: %v", err)
	}

	if proj.Config.Project.Name != "webshop" {
		t.Errorf("expected project name %q, got %q", "webshop", proj.Config.Project.Name)
	}

	if len(proj.Config.Targets) != 3 {
		t.Errorf("expected 3 targets, got %d", len(proj.Config.Targets))
	}

	migrate, ok := proj.Config.Targets["migrate"]
	if !ok {
		t.Fatal("expected 'migrate' target to exist")
	}
	if len(migrate.DependsOn) != 1 || migrate.DependsOn[0] != "build" {
		t.Errorf("migrate depends_on = %v, want [build]", migrate.DependsOn)
	}
	if len(migrate.Services) != 1 || migrate.Services[0] != "db" {
		t.Errorf("migrate services = %v, want [db]", migrate.Services)
	}

	db, ok := proj.Config.Services["db"]
	if !ok {
		t.Fatal("expected 'db' service to exist")
	}
	if db.Image != "postgres:16" {
		t.Errorf("db image = %q, want %q", db.Image, "postgres:16")
	}
}

func TestWebshopResolution(t *testing.T) {
	t.Parallel()
	fixtureDir := filepath.Join(fixturesDir(), "webshop")

	proj, err := project.LoadProjectFrom(fixtureDir)
	if err != nil {
		t.Fatalf("failed to load webshop project: %v", err)
	}

	reg, err := target.NewRegistry(proj.Config)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	plan, err := reg.Resolve("deploy")
	if err != nil {
		t.Fatalf("failed to resolve deploy: %v", err)
	}

	want := []string{"build", "migrate", "deploy"}
	if len(plan) != len(want) {
		t.Fatalf("plan has %d targets, want %d", len(plan), len(want))
	}
	for i, name := range want {
		if plan[i].Name != name {
			t.Errorf("plan[%d] = %q, want %q", i, plan[i].Name, name)
		}
	}

	services := target.ServicesFor(plan)
	if len(services) != 2 {
		t.Errorf("plan services = %v, want [db cache]", services)
	}

	deploy := plan[len(plan)-1]
	if len(deploy.Steps) != 2 {
		t.Errorf("deploy has %d steps, want 2", len(deploy.Steps))
	}
}
