package service

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/deployctl/deployctl/internal/config"
)

// ComposeConfig represents a docker-compose.yml file structure.
type ComposeConfig struct {
	Services map[string]ComposeService `yaml:"services"`
}

// ComposeService represents a service in docker-compose.yml.
type ComposeService struct {
	Image       string            `yaml:"image"`
	Ports       []string          `yaml:"ports,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Volumes     []string          `yaml:"volumes,omitempty"`
	Command     string            `yaml:"command,omitempty"`
}

// GenerateComposeFile renders the project's services as docker-compose YAML.
func GenerateComposeFile(cfg *config.Config) (string, error) {
	compose := &ComposeConfig{
		Services: make(map[string]ComposeService),
	}

	for name, svcCfg := range cfg.Services {
		compose.Services[name] = ComposeService{
			Image:       svcCfg.Image,
			Ports:       svcCfg.Ports,
			Environment: svcCfg.Env,
			Volumes:     svcCfg.Volumes,
			Command:     svcCfg.Command,
		}
	}

	data, err := yaml.Marshal(compose)
	if err != nil {
		return "", fmt.Errorf("failed to generate compose file: %w", err)
	}

	return string(data), nil
}

// WriteComposeFile generates and writes docker-compose.yml at the project root.
func WriteComposeFile(projectRoot string, cfg *config.Config) (string, error) {
	content, err := GenerateComposeFile(cfg)
	if err != nil {
		return "", err
	}

	path := filepath.Join(projectRoot, "docker-compose.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write compose file: %w", err)
	}

	return path, nil
}
