package cli

import (
	"context"
	"sort"

	"github.com/deployctl/deployctl/internal/errors"
	"github.com/deployctl/deployctl/internal/invoker"
	"github.com/deployctl/deployctl/internal/project"
	"github.com/deployctl/deployctl/internal/service"
)

// serviceManager builds the lifecycle manager for a loaded project.
func serviceManager(proj *project.Project) *service.Manager {
	return service.NewManager(invoker.New(), proj.Config.Project.Name)
}

// selectServices resolves the service names a lifecycle command operates on:
// the names given as arguments, or every configured service when none are.
func selectServices(proj *project.Project, args []string) ([]string, error) {
	if len(args) == 0 {
		names := make([]string, 0, len(proj.Config.Services))
		for name := range proj.Config.Services {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	for _, name := range args {
		if _, ok := proj.Config.Services[name]; !ok {
			return nil, errors.Configf("service %q is not defined", name)
		}
	}
	return args, nil
}

// cmdServices lists configured services with their observed status.
func cmdServices(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printServicesUsage()
		return 0
	}

	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	if len(proj.Config.Services) == 0 {
		out.Println("no services configured")
		return 0
	}

	ctx, stop := signalContext()
	defer stop()

	mgr := serviceManager(proj)
	if err := mgr.CheckDockerAvailable(ctx); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	names, _ := selectServices(proj, nil)
	for _, name := range names {
		status, err := mgr.Status(ctx, name)
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
		out.ServiceInfo(name, proj.Config.Services[name].Image, string(status))
	}
	return 0
}

// cmdUp starts services (all, or the ones named).
func cmdUp(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printUpUsage()
		return 0
	}
	return serviceLifecycle(args, opts, "up", func(ctx context.Context, mgr *service.Manager, proj *project.Project, name string) error {
		svc := service.FromConfig(name, proj.Config.Services[name])
		status, err := mgr.RunOrStart(ctx, svc)
		if err != nil {
			return err
		}
		out.ServiceInfo(name, svc.Image, string(status))
		return nil
	})
}

// cmdStop stops running services without removing their containers.
func cmdStop(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printStopUsage()
		return 0
	}
	return serviceLifecycle(args, opts, "stop", func(ctx context.Context, mgr *service.Manager, proj *project.Project, name string) error {
		status, err := mgr.Stop(ctx, name)
		if err != nil {
			return err
		}
		out.ServiceInfo(name, proj.Config.Services[name].Image, string(status))
		return nil
	})
}

// cmdDown removes service containers, stopping them first when needed.
func cmdDown(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printDownUsage()
		return 0
	}
	return serviceLifecycle(args, opts, "down", func(ctx context.Context, mgr *service.Manager, proj *project.Project, name string) error {
		if err := mgr.Remove(ctx, name); err != nil {
			return err
		}
		out.ServiceInfo(name, proj.Config.Services[name].Image, string(service.StatusAbsent))
		return nil
	})
}

// serviceLifecycle runs an operation over the selected services, stopping at
// the first failure.
func serviceLifecycle(args []string, opts *GlobalOptions, verb string, op func(context.Context, *service.Manager, *project.Project, string) error) int {
	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}

	names, err := selectServices(proj, args)
	if err != nil {
		out.ErrorPrefix("%s: %v", verb, err)
		return errors.GetExitCode(err)
	}
	if len(names) == 0 {
		out.Println("no services configured")
		return 0
	}

	ctx, stop := signalContext()
	defer stop()

	mgr := serviceManager(proj)
	if err := mgr.CheckDockerAvailable(ctx); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	for _, name := range names {
		if err := op(ctx, mgr, proj, name); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
	}
	return 0
}

// cmdCompose exports the configured services as a docker-compose.yml.
func cmdCompose(args []string, opts *GlobalOptions) int {
	toStdout := false
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			printComposeUsage()
			return 0
		case "--stdout":
			toStdout = true
		default:
			out.ErrorPrefix("compose: unknown argument %q", arg)
			return errors.ExitConfigError
		}
	}

	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	if len(proj.Config.Services) == 0 {
		out.ErrorPrefix("compose: no services configured")
		return errors.ExitConfigError
	}

	if toStdout {
		content, err := service.GenerateComposeFile(proj.Config)
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
		out.Print("%s", content)
		return 0
	}

	path, err := service.WriteComposeFile(proj.Root, proj.Config)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}
	out.Success("wrote %s", path)
	return 0
}
