package topsort

import (
	"reflect"
	"testing"

	"github.com/deployctl/deployctl/internal/errors"
)

func indexOf(result []string, s string) int {
	for i, v := range result {
		if v == s {
			return i
		}
	}
	return -1
}

func TestSort_Empty(t *testing.T) {
	g := Graph{}
	result, err := Sort(g, nil)
	if err != nil {
		t.Errorf("Sort() error = %v, want nil", err)
	}
	if len(result) != 0 {
		t.Errorf("Sort() = %v, want empty", result)
	}
}

func TestSort_SingleNode(t *testing.T) {
	g := Graph{"build": nil}
	result, err := Sort(g, nil)
	if err != nil {
		t.Errorf("Sort() error = %v, want nil", err)
	}
	if !reflect.DeepEqual(result, []string{"build"}) {
		t.Errorf("Sort() = %v, want [build]", result)
	}
}

func TestSort_LinearChain(t *testing.T) {
	// deploy depends on package, package depends on build
	g := Graph{
		"build":   nil,
		"package": {"build"},
		"deploy":  {"package"},
	}
	result, err := Sort(g, nil)
	if err != nil {
		t.Errorf("Sort() error = %v, want nil", err)
	}

	if indexOf(result, "build") >= indexOf(result, "package") {
		t.Errorf("Sort() build should come before package: %v", result)
	}
	if indexOf(result, "package") >= indexOf(result, "deploy") {
		t.Errorf("Sort() package should come before deploy: %v", result)
	}
}

func TestSort_Diamond(t *testing.T) {
	// verify depends on deploy-api and deploy-web, both depend on build
	g := Graph{
		"build":      nil,
		"deploy-api": {"build"},
		"deploy-web": {"build"},
		"verify":     {"deploy-api", "deploy-web"},
	}
	result, err := Sort(g, nil)
	if err != nil {
		t.Errorf("Sort() error = %v, want nil", err)
	}

	if indexOf(result, "build") >= indexOf(result, "deploy-api") || indexOf(result, "build") >= indexOf(result, "deploy-web") {
		t.Errorf("Sort() build should come first: %v", result)
	}
	if indexOf(result, "deploy-api") >= indexOf(result, "verify") || indexOf(result, "deploy-web") >= indexOf(result, "verify")  {
		t.Errorf("Sort() deploys should come before verify: %v", result)
	}
}

func TestSort_SubsetOnly(t *testing.T) {
	// Sorting for one node includes only its transitive dependencies.
	g := Graph{
		"build":   nil,
		"package": {"build"},
		"deploy":  {"package"},
		"teardown": nil,
	}
	result, err := Sort(g, []string{"package"})
	if err != nil {
		t.Errorf("Sort() error = %v, want nil", err)
	}
	if !reflect.DeepEqual(result, []string{"build", "package"}) {
		t.Errorf("Sort() = %v, want [build package]", result)
	}
}

func TestSort_Deterministic(t *testing.T) {
	g := Graph{
		"all": {"c", "a", "b"},
		"a":   nil,
		"b":   nil,
		"c":   nil,
	}
	first, err := Sort(g, nil)
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Sort(g, nil)
		if err != nil {
			t.Fatalf("Sort() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Sort() not deterministic: %v vs %v", first, again)
		}
	}
}

func TestSort_Cycle(t *testing.T) {
	g := Graph{
		"a": {"b"},
		"b": {"a"},
	}
	result, err := Sort(g, nil)
	if err == nil {
		t.Fatal("Sort() error = nil, want cycle error")
	}
	if !errors.IsCycle(err) {
		t.Errorf("Sort() error = %v, want cycle kind", err)
	}
	if result != nil {
		t.Errorf("Sort() = %v, want nil result on cycle (no partial order)", result)
	}
}

func TestSort_LongerCycle(t *testing.T) {
	g := Graph{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}
	result, err := Sort(g, []string{"a"})
	if !errors.IsCycle(err) {
		t.Errorf("Sort() error = %v, want cycle kind", err)
	}
	if result != nil {
		t.Errorf("Sort() = %v, want nil result on cycle", result)
	}
}

func TestSort_UndefinedDependency(t *testing.T) {
	g := Graph{
		"deploy": {"missing"},
	}
	_, err := Sort(g, nil)
	if err == nil {
		t.Fatal("Sort() error = nil, want unknown target error")
	}
	if !errors.IsUnknownTarget(err) {
		t.Errorf("Sort() error = %v, want unknown-target kind", err)
	}
}

func TestSort_UnknownRequestedNode(t *testing.T) {
	g := Graph{"build": nil}
	_, err := Sort(g, []string{"nope"})
	if !errors.IsUnknownTarget(err) {
		t.Errorf("Sort() error = %v, want unknown-target kind", err)
	}
}

func TestValidate_SelfDependency(t *testing.T) {
	g := Graph{"a": {"a"}}
	err := Validate(g)
	if !errors.IsCycle(err) {
		t.Errorf("Validate() error = %v, want cycle kind", err)
	}
}

func TestValidate_UndefinedDependency(t *testing.T) {
	g := Graph{"a": {"ghost"}}
	if err := Validate(g); err == nil {
		t.Error("Validate() error = nil, want undefined dependency error")
	}
}

func TestValidate_Valid(t *testing.T) {
	g := Graph{
		"build":  nil,
		"deploy": {"build"},
	}
	if err := Validate(g); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
