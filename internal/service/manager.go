package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deployctl/deployctl/internal/errors"
	"github.com/deployctl/deployctl/internal/invoker"
)

// CommandRunner executes external commands with captured output.
// Satisfied by *invoker.Invoker; tests substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, inv invoker.Invocation) (*invoker.Result, error)
}

// Manager drives idempotent run-or-start/stop/remove for managed services
// through the docker CLI. State transitions always start from an explicit
// status query followed by a deterministic branch; failures from docker are
// never used as control flow.
type Manager struct {
	docker  CommandRunner
	project string // Container name prefix
}

// NewManager creates a Manager that names containers "<project>-<service>".
func NewManager(docker CommandRunner, project string) *Manager {
	return &Manager{
		docker:  docker,
		project: project,
	}
}

// ContainerName returns the container name used for a service.
func (m *Manager) ContainerName(service string) string {
	return fmt.Sprintf("%s-%s", m.project, service)
}

// CheckDockerAvailable returns an error if the docker daemon is not reachable.
// The error maps to exit code 3.
func (m *Manager) CheckDockerAvailable(ctx context.Context) error {
	res, err := m.docker.Run(ctx, invoker.Invocation{Name: "docker", Args: []string{"info"}})
	if err != nil {
		return errors.Environmentf("docker is not available: %v", err)
	}
	if res.ExitCode != 0 {
		return errors.Environment("docker is not available or not running")
	}
	return nil
}

// Status reports the observed container state for a service.
// An empty `docker ps` listing means the container is not running.
func (m *Manager) Status(ctx context.Context, service string) (Status, error) {
	name := m.ContainerName(service)

	running, err := m.psQuiet(ctx, name, false)
	if err != nil {
		return "", err
	}
	if running {
		return StatusRunning, nil
	}

	exists, err := m.psQuiet(ctx, name, true)
	if err != nil {
		return "", err
	}
	if exists {
		return StatusStopped, nil
	}

	return StatusAbsent, nil
}

// psQuiet runs `docker ps --quiet` filtered to the exact container name and
// reports whether any container matched. With all=true, stopped containers
// are included.
func (m *Manager) psQuiet(ctx context.Context, name string, all bool) (bool, error) {
	args := []string{"ps", "--quiet", "--filter", "name=^/" + name + "$"}
	if all {
		args = append(args, "--all")
	}

	res, err := m.docker.Run(ctx, invoker.Invocation{Name: "docker", Args: args})
	if err != nil {
		return false, errors.Wrap(err, "docker ps failed")
	}
	if res.ExitCode != 0 {
		return false, errors.Lifecycle(name, dockerFailure("docker ps", res))
	}

	return strings.TrimSpace(res.Stdout) != "", nil
}

// RunOrStart brings a service to the running state:
// absent -> docker run -d, stopped -> docker start, running -> no-op.
// Calling it twice in succession results in exactly one running instance.
func (m *Manager) RunOrStart(ctx context.Context, svc Service) (Status, error) {
	status, err := m.Status(ctx, svc.Name)
	if err != nil {
		return "", err
	}

	name := m.ContainerName(svc.Name)

	switch status {
	case StatusRunning:
		return StatusRunning, nil

	case StatusStopped:
		res, err := m.docker.Run(ctx, invoker.Invocation{Name: "docker", Args: []string{"start", name}})
		if err != nil {
			return "", errors.Wrap(err, "docker start failed")
		}
		if res.ExitCode != 0 {
			return "", errors.Lifecycle(svc.Name, dockerFailure("docker start", res))
		}
		return StatusRunning, nil

	default: // StatusAbsent
		res, err := m.docker.Run(ctx, invoker.Invocation{Name: "docker", Args: m.buildRunArgs(svc)})
		if err != nil {
			return "", errors.Wrap(err, "docker run failed")
		}
		if res.ExitCode != 0 {
			return "", errors.Lifecycle(svc.Name, dockerFailure("docker run", res))
		}
		return StatusRunning, nil
	}
}

// Stop stops a running service. Stopping an already-stopped or absent
// service is a no-op reported as success.
func (m *Manager) Stop(ctx context.Context, service string) (Status, error) {
	status, err := m.Status(ctx, service)
	if err != nil {
		return "", err
	}

	if status != StatusRunning {
		return status, nil
	}

	name := m.ContainerName(service)
	res, err := m.docker.Run(ctx, invoker.Invocation{Name: "docker", Args: []string{"stop", name}})
	if err != nil {
		return "", errors.Wrap(err, "docker stop failed")
	}
	if res.ExitCode != 0 {
		return "", errors.Lifecycle(service, dockerFailure("docker stop", res))
	}

	return StatusStopped, nil
}

// Remove removes a service's container, stopping it first when running.
// Removing an absent service is a no-op reported as success.
func (m *Manager) Remove(ctx context.Context, service string) error {
	status, err := m.Status(ctx, service)
	if err != nil {
		return err
	}

	if status == StatusAbsent {
		return nil
	}

	name := m.ContainerName(service)
	res, err := m.docker.Run(ctx, invoker.Invocation{Name: "docker", Args: []string{"rm", "--force", name}})
	if err != nil {
		return errors.Wrap(err, "docker rm failed")
	}
	if res.ExitCode != 0 {
		return errors.Lifecycle(service, dockerFailure("docker rm", res))
	}

	return nil
}

// buildRunArgs constructs the `docker run` arguments for a service.
// Env vars are emitted in sorted order so the command line is deterministic.
func (m *Manager) buildRunArgs(svc Service) []string {
	args := []string{"run", "--detach", "--name", m.ContainerName(svc.Name)}

	for _, p := range svc.Ports {
		args = append(args, "--publish", p)
	}
	for _, k := range svc.sortedEnvKeys() {
		args = append(args, "--env", k+"="+svc.Env[k])
	}
	for _, v := range svc.Volumes {
		args = append(args, "--volume", v)
	}

	args = append(args, svc.Image)
	if svc.Command != "" {
		args = append(args, strings.Fields(svc.Command)...)
	}

	return args
}

// dockerFailure formats a docker CLI failure for a lifecycle error message.
func dockerFailure(what string, res *invoker.Result) string {
	msg := fmt.Sprintf("%s exited with code %d", what, res.ExitCode)
	if detail := strings.TrimSpace(res.Stderr); detail != "" {
		msg += ": " + detail
	}
	return msg
}
