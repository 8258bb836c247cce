package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/deployctl/deployctl/internal/config"
	"github.com/deployctl/deployctl/internal/errors"
	"github.com/deployctl/deployctl/internal/project"
)

// cmdInit initializes a new deployctl project in the current directory.
// The command is idempotent: it only creates files that don't exist.
func cmdInit(args []string) int {
	if wantsHelp(args) {
		printInitUsage()
		return 0
	}
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			out.ErrorPrefix("init: unknown option %q", arg)
			return errors.ExitConfigError
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	configDir := filepath.Join(cwd, project.ConfigDirName)
	configPath := filepath.Join(configDir, project.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		out.Println("%s already exists", filepath.Join(project.ConfigDirName, project.ConfigFileName))
		return 0
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	cfg := starterConfig(sanitizeProjectName(filepath.Base(cwd)))
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}
	data = append(data, '\n')

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	out.Success("created %s", filepath.Join(project.ConfigDirName, project.ConfigFileName))
	out.Println("edit it to define your services and targets, then run 'deployctl targets'")
	return 0
}

// starterConfig returns the initial configuration written by init.
func starterConfig(name string) *config.Config {
	return &config.Config{
		Project: config.ProjectConfig{Name: name},
		Targets: map[string]config.TargetConfig{
			"build": {
				Description: "Build the application",
				Run:         "echo building",
			},
			"deploy": {
				Description: "Deploy the application",
				Run:         "echo deploying",
				DependsOn:   []string{"build"},
			},
		},
	}
}

// invalidNameChars matches characters not allowed in project names.
var invalidNameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// sanitizeProjectName converts a directory name into a valid project name.
func sanitizeProjectName(dir string) string {
	name := strings.ToLower(dir)
	name = invalidNameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "project-" + name
		name = strings.TrimSuffix(name, "-")
	}
	return name
}
